package slack

import (
	"bytes"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// RespondFn sends a follow-up JSON payload to the user that invoked a slash
// command.
type RespondFn func(payload []byte) error

// ResponderFactory returns a RespondFn bound to the provided response URL.
type ResponderFactory func(responseURL string) RespondFn

type responder struct {
	responseURL string
	httpSendFn  func(*http.Request) (*http.Response, error)
}

// NewResponder returns a RespondFn that posts payloads to the provided
// response URL, retrying transient failures.
func NewResponder(responseURL string) RespondFn {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(ioutil.Discard, "", log.LstdFlags)
	r := &responder{
		responseURL: responseURL,
		httpSendFn:  retryClient.StandardClient().Do,
	}
	return r.respond
}

func (r *responder) respond(payload []byte) error {
	req, err := http.NewRequest(
		http.MethodPost,
		r.responseURL,
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return errors.Wrap(err, "error preparing follow-up response request")
	}
	req.Header.Add("Content-Type", "application/json")
	resp, err := r.httpSendFn(req)
	if err != nil {
		return errors.Wrap(err, "error sending follow-up response")
	}
	defer func() {
		if resp.Body != nil {
			resp.Body.Close()
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf(
			"error sending follow-up response: received status code %d",
			resp.StatusCode,
		)
	}
	return nil
}
