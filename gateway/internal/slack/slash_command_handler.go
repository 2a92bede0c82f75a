package slack

import (
	"context"
	"encoding/json"
	"log"

	slackAPI "github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// SlashCommandHandler is an interface for components that can receive slash
// commands from Slack's Socket Mode event stream and route them to a
// transport-agnostic SlashCommandService.
type SlashCommandHandler interface {
	// Run connects to Slack and blocks, routing incoming slash commands, until
	// the provided context is canceled or the connection fails unrecoverably.
	Run(context.Context) error
}

type slashCommandHandler struct {
	service SlashCommandService
	// All of these internal functions are overridable for testing purposes
	eventsCh <-chan socketmode.Event
	ackFn    func(req socketmode.Request, payload ...interface{})
	runFn    func(context.Context) error
	errFn    func(...interface{})
}

// NewSlashCommandHandler returns an implementation of the SlashCommandHandler
// interface that receives slash commands over Socket Mode and delegates them
// to the provided SlashCommandService.
func NewSlashCommandHandler(
	service SlashCommandService,
	socketModeClient *socketmode.Client,
) SlashCommandHandler {
	return &slashCommandHandler{
		service:  service,
		eventsCh: socketModeClient.Events,
		ackFn:    socketModeClient.Ack,
		runFn:    socketModeClient.RunContext,
		errFn:    log.Println,
	}
}

func (s *slashCommandHandler) Run(ctx context.Context) error {
	go s.handleEvents(ctx)
	return s.runFn(ctx)
}

func (s *slashCommandHandler) handleEvents(ctx context.Context) {
	for {
		select {
		case event := <-s.eventsCh:
			if event.Type != socketmode.EventTypeSlashCommand {
				continue
			}
			command, ok := event.Data.(slackAPI.SlashCommand)
			if !ok || event.Request == nil {
				continue
			}
			request := *event.Request
			ack := func(payload []byte) error {
				s.ackFn(request, json.RawMessage(payload))
				return nil
			}
			if err := s.service.Handle(
				ctx,
				SlashCommand{
					TeamID:      command.TeamID,
					ChannelID:   command.ChannelID,
					ChannelName: command.ChannelName,
					UserID:      command.UserID,
					Command:     command.Command,
					Text:        command.Text,
					ResponseURL: command.ResponseURL,
					TriggerID:   command.TriggerID,
				},
				ack,
			); err != nil {
				// The ack may already be out by the time a dispatch error
				// surfaces, so there is nothing to send back here. Log it.
				s.errFn(err)
			}
		case <-ctx.Done():
			return
		}
	}
}
