package slack

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"
	slackAPI "github.com/slack-go/slack"

	libSlack "github.com/bugzooka/slack-summary-gateway/internal/slack"
)

// historyPageSize is the number of messages requested per page of channel
// history.
const historyPageSize = 200

// maxFailureLines caps how many individual failure messages a verbose summary
// will enumerate.
const maxFailureLines = 10

// MessageFetcher is an interface for components that can fetch messages from a
// Slack channel over a lookback window and post a summary of them back to the
// channel.
type MessageFetcher interface {
	// PostTimeSummary fetches all channel messages newer than the lookback
	// window, summarizes them using the provided product configuration, and
	// posts the summary to the channel.
	PostTimeSummary(
		ctx context.Context,
		product string,
		ci string,
		productConfig libSlack.ProductConfig,
		lookbackSeconds int,
		verbose bool,
	) error
}

// FetcherFactory returns a MessageFetcher bound to the provided channel.
type FetcherFactory func(channelID string) (MessageFetcher, error)

// SlackAPIClient is the subset of the Slack Web API consumed by the
// MessageFetcher. *slack.Client is an implementation of this interface.
//
// nolint: lll
type SlackAPIClient interface {
	GetConversationHistoryContext(ctx context.Context, params *slackAPI.GetConversationHistoryParameters) (*slackAPI.GetConversationHistoryResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slackAPI.MsgOption) (string, string, error)
}

// messageFetcher is the default MessageFetcher implementation. It is bound to
// a single channel for its lifetime.
type messageFetcher struct {
	channelID string
	apiClient SlackAPIClient
	logger    *log.Logger
	// All of these internal functions are overridable for testing purposes
	fetchMessagesFn func(
		ctx context.Context,
		oldest time.Time,
	) ([]slackAPI.Message, error)
	postMessageFn func(
		ctx context.Context,
		channelID string,
		options ...slackAPI.MsgOption,
	) (string, string, error)
	nowFn              func() time.Time
	summaryMsgTemplate *template.Template
}

// NewMessageFetcher returns a MessageFetcher bound to the provided channel.
func NewMessageFetcher(
	channelID string,
	apiClient SlackAPIClient,
	logger *log.Logger,
) (MessageFetcher, error) {
	summaryMsgTemplate, err := template.New(
		"template",
	).Funcs(sprig.TxtFuncMap()).Parse(summaryMsgTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing summary template")
	}
	f := &messageFetcher{
		channelID:          channelID,
		apiClient:          apiClient,
		logger:             logger,
		summaryMsgTemplate: summaryMsgTemplate,
	}
	f.fetchMessagesFn = f.fetchMessages
	f.postMessageFn = apiClient.PostMessageContext
	f.nowFn = time.Now
	return f, nil
}

func (f *messageFetcher) PostTimeSummary(
	ctx context.Context,
	product string,
	ci string,
	productConfig libSlack.ProductConfig,
	lookbackSeconds int,
	verbose bool,
) error {
	window := time.Duration(lookbackSeconds) * time.Second
	oldest := f.nowFn().Add(-window)
	messages, err := f.fetchMessagesFn(ctx, oldest)
	if err != nil {
		return err
	}
	failures := classifyFailures(messages, productConfig)
	f.logger.Printf(
		"summarizing %d messages (%d failures) from channel %s over the last %s",
		len(messages),
		len(failures),
		f.channelID,
		window,
	)
	summary := struct {
		Product      string
		CI           string
		Window       string
		MessageCount int
		FailureCount int
		Failures     []string
		Truncated    bool
		JobLinks     []string
	}{
		Product:      product,
		CI:           ci,
		Window:       fmt.Sprintf("last %s", window),
		MessageCount: len(messages),
		FailureCount: len(failures),
	}
	if verbose {
		summary.Truncated = len(failures) > maxFailureLines
		if summary.Truncated {
			failures = failures[:maxFailureLines]
		}
		summary.Failures = failures
		summary.JobLinks = extractJobLinks(messages, productConfig.JobURLPrefix)
	}
	buffer := &bytes.Buffer{}
	if err = f.summaryMsgTemplate.Execute(buffer, summary); err != nil {
		return errors.Wrap(err, "error rendering summary message")
	}
	if _, _, err = f.postMessageFn(
		ctx,
		f.channelID,
		slackAPI.MsgOptionText(buffer.String(), false),
	); err != nil {
		return errors.Wrapf(
			err,
			"error posting summary to channel %q",
			f.channelID,
		)
	}
	return nil
}

// fetchMessages pages through channel history, accumulating all messages newer
// than the oldest timestamp.
func (f *messageFetcher) fetchMessages(
	ctx context.Context,
	oldest time.Time,
) ([]slackAPI.Message, error) {
	params := &slackAPI.GetConversationHistoryParameters{
		ChannelID: f.channelID,
		Oldest:    fmt.Sprintf("%d.000000", oldest.Unix()),
		Limit:     historyPageSize,
	}
	messages := []slackAPI.Message{}
	for {
		resp, err := f.apiClient.GetConversationHistoryContext(ctx, params)
		if err != nil {
			return nil, errors.Wrapf(
				err,
				"error listing messages for channel %q",
				f.channelID,
			)
		}
		messages = append(messages, resp.Messages...)
		if resp.HasMore && resp.ResponseMetaData.NextCursor != "" {
			params.Cursor = resp.ResponseMetaData.NextCursor
		} else {
			break
		}
	}
	return messages, nil
}

// classifyFailures returns the text of every message matching any of the
// product's error patterns. Matching is case-insensitive.
func classifyFailures(
	messages []slackAPI.Message,
	productConfig libSlack.ProductConfig,
) []string {
	failures := []string{}
	for _, message := range messages {
		text := strings.ToLower(message.Text)
		for _, pattern := range productConfig.ErrorPatterns {
			if strings.Contains(text, strings.ToLower(pattern)) {
				failures = append(failures, message.Text)
				break
			}
		}
	}
	return failures
}

// extractJobLinks returns every whitespace-delimited token beginning with the
// provided job URL prefix, capped at maxFailureLines.
func extractJobLinks(messages []slackAPI.Message, jobURLPrefix string) []string {
	links := []string{}
	if jobURLPrefix == "" {
		return links
	}
	for _, message := range messages {
		for _, token := range strings.Fields(message.Text) {
			// Slack wraps bare URLs in angle brackets
			token = strings.Trim(token, "<>")
			if strings.HasPrefix(token, jobURLPrefix) {
				links = append(links, token)
				if len(links) == maxFailureLines {
					return links
				}
			}
		}
	}
	return links
}

var summaryMsgTemplate = `*{{ .Product }} CI summary* ({{ .CI }})
Window: {{ .Window }}
Messages: {{ .MessageCount }}
Failures: {{ .FailureCount }}
{{- range .Failures }}
• {{ trunc 200 . }}
{{- end }}
{{- if .Truncated }}
… and {{ sub .FailureCount (len .Failures) }} more
{{- end }}
{{- range .JobLinks }}
:link: {{ . }}
{{- end }}`
