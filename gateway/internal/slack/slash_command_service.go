package slack

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	libOS "github.com/brigadecore/brigade-foundations/os"
	"github.com/pkg/errors"

	libSlack "github.com/bugzooka/slack-summary-gateway/internal/slack"
)

// AckFn delivers the synchronous acknowledgment payload for a slash command.
// Slack only waits a short time for this acknowledgment.
type AckFn func(payload []byte) error

// SlashCommandService is an interface for components that can handle slash
// commands from Slack. Implementations of this interface are
// transport-agnostic.
type SlashCommandService interface {
	// Handle handles a slash command from Slack, acknowledging it via the
	// provided AckFn before any background work begins.
	Handle(context.Context, SlashCommand, AckFn) error
}

// summaryTask captures, by value, everything one background summary run needs.
type summaryTask struct {
	channelID       string
	product         string
	ci              string
	productConfig   libSlack.ProductConfig
	lookbackSeconds int
	verbose         bool
	respond         RespondFn
}

// summaryDelivery describes the outcome of one background summary run: the
// result of the summary itself and, when the summary failed, the result of
// notifying the user about that failure.
type summaryDelivery struct {
	summaryErr error
	notifyErr  error
}

type slashCommandService struct {
	defaultLookbackSeconds int
	productConfigs         libSlack.ProductConfigStore
	executor               Executor
	// All of these internal functions are overridable for testing purposes
	getEnvFn       func(string) (string, error)
	newFetcherFn   FetcherFactory
	newResponderFn ResponderFactory
	runSummaryFn   func(context.Context, summaryTask) summaryDelivery
	errFn          func(...interface{})
	// Templates for the synchronous ack and the asynchronous failure response
	ackMsgTemplate     *template.Template
	failureMsgTemplate *template.Template
}

// NewSlashCommandService returns an implementation of the SlashCommandService
// interface that summarizes recent channel traffic in the background.
func NewSlashCommandService(
	productConfigs libSlack.ProductConfigStore,
	newFetcherFn FetcherFactory,
	executor Executor,
	defaultLookbackSeconds int,
) (SlashCommandService, error) {
	ackMsgTemplate, err := template.New(
		"template",
	).Funcs(sprig.TxtFuncMap()).Parse(ackMsgTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing ack template")
	}
	failureMsgTemplate, err := template.New(
		"template",
	).Funcs(sprig.TxtFuncMap()).Parse(failureMsgTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing failure template")
	}
	s := &slashCommandService{
		defaultLookbackSeconds: defaultLookbackSeconds,
		productConfigs:         productConfigs,
		executor:               executor,
		newFetcherFn:           newFetcherFn,
		ackMsgTemplate:         ackMsgTemplate,
		failureMsgTemplate:     failureMsgTemplate,
	}
	s.getEnvFn = libOS.GetRequiredEnvVar
	s.newResponderFn = NewResponder
	s.runSummaryFn = s.runSummary
	s.errFn = log.Println
	return s, nil
}

func (s *slashCommandService) Handle(
	ctx context.Context,
	command SlashCommand,
	ack AckFn,
) error {
	lookbackSeconds, verbose :=
		parseWindow(command.Text, s.defaultLookbackSeconds)

	window := "default window"
	if trimmed := strings.TrimSpace(command.Text); trimmed != "" {
		window = fmt.Sprintf("last %s", trimmed)
	}
	buffer := &bytes.Buffer{}
	if err := s.ackMsgTemplate.Execute(
		buffer,
		struct{ Window string }{Window: window},
	); err != nil {
		return errors.Wrap(err, "error rendering ack message")
	}
	// The ack has to go out before anything potentially slow
	if err := ack(buffer.Bytes()); err != nil {
		return errors.Wrap(err, "error acknowledging command")
	}

	product, err := s.getEnvFn("PRODUCT")
	if err != nil {
		return err
	}
	product = strings.ToUpper(product)
	ci, err := s.getEnvFn("CI")
	if err != nil {
		return err
	}
	ci = strings.ToUpper(ci)
	productConfig, err := s.productConfigs.Get(product)
	if err != nil {
		return errors.Wrapf(
			err,
			"error resolving configuration for product %q",
			product,
		)
	}

	task := summaryTask{
		channelID:       command.ChannelID,
		product:         product,
		ci:              ci,
		productConfig:   productConfig,
		lookbackSeconds: lookbackSeconds,
		verbose:         verbose,
		respond:         s.newResponderFn(command.ResponseURL),
	}
	s.executor.Submit(func() {
		delivery := s.runSummaryFn(context.Background(), task)
		if delivery.notifyErr != nil {
			s.errFn(
				errors.Wrap(
					delivery.notifyErr,
					"error delivering failure notification",
				),
			)
		}
	})
	return nil
}

// runSummary executes one background summary run. Failures never propagate
// past this function: the summary's own result and the result of notifying the
// user about a failed summary are both captured in the returned
// summaryDelivery.
func (s *slashCommandService) runSummary(
	ctx context.Context,
	task summaryTask,
) summaryDelivery {
	delivery := summaryDelivery{}
	fetcher, err := s.newFetcherFn(task.channelID)
	if err == nil {
		err = fetcher.PostTimeSummary(
			ctx,
			task.product,
			task.ci,
			task.productConfig,
			task.lookbackSeconds,
			task.verbose,
		)
	}
	if err == nil {
		return delivery
	}
	delivery.summaryErr = err
	s.errFn(errors.Wrap(err, "error posting time summary"))
	buffer := &bytes.Buffer{}
	if delivery.notifyErr = s.failureMsgTemplate.Execute(
		buffer,
		struct{ Error string }{Error: err.Error()},
	); delivery.notifyErr != nil {
		return delivery
	}
	delivery.notifyErr = task.respond(buffer.Bytes())
	return delivery
}

var ackMsgTemplate = `{
  "response_type": "ephemeral",
  "text": {{ printf "Starting summary for %s. I'll post results here shortly." .Window | quote }}
}`

var failureMsgTemplate = `{
  "response_type": "ephemeral",
  "text": {{ printf "Summary failed: %s" .Error | quote }}
}`
