package main

import (
	"context"
	"sync"
	"time"

	libHTTP "github.com/brigadecore/brigade-foundations/http"
	"github.com/pkg/errors"

	"github.com/bugzooka/slack-summary-gateway/gateway/internal/slack"
)

// gateway coordinates the long-lived loops that make up this process: the
// Socket Mode listener that receives slash commands and the health endpoint
// server.
type gateway struct {
	// All of the gateway's goroutines will send fatal errors here
	errCh chan error
	// All of these internal functions are overridable for testing purposes
	runHandlerFn func(context.Context) error
	runServerFn  func(context.Context) error
}

// newGateway initializes and returns a gateway.
func newGateway(
	handler slack.SlashCommandHandler,
	server libHTTP.Server,
) *gateway {
	return &gateway{
		errCh:        make(chan error),
		runHandlerFn: handler.Run,
		runServerFn:  server.ListenAndServe,
	}
}

// run coordinates the goroutines involved in different aspects of the gateway.
// If any one of them encounters an unrecoverable error, everything shuts down.
func (g *gateway) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg := sync.WaitGroup{}

	// Receive and dispatch slash commands
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := g.runHandlerFn(ctx); err != nil {
			select {
			case g.errCh <- errors.Wrap(
				err,
				"error running slash command handler",
			):
			case <-ctx.Done():
			}
		}
	}()

	// Serve health checks
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := g.runServerFn(ctx); err != nil {
			select {
			case g.errCh <- errors.Wrap(err, "error running health server"):
			case <-ctx.Done():
			}
		}
	}()

	// Wait for an error or a completed context
	var err error
	select {
	case err = <-g.errCh:
		cancel() // Shut it all down
	case <-ctx.Done():
		err = ctx.Err()
	}

	// Adapt wg to a channel that can be used in a select
	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		wg.Wait()
	}()

	select {
	case <-doneCh:
	case <-time.After(3 * time.Second):
		// Probably doesn't matter that this is hardcoded. Relatively speaking, 3
		// seconds is a lot of time for things to wrap up.
	}

	return err
}
