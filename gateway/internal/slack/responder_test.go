package slack

import (
	"errors"
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResponder(t *testing.T) {
	respond := NewResponder("https://hooks.slack.com/commands/1234/5678")
	require.NotNil(t, respond)
}

func TestResponderRespond(t *testing.T) {
	testCases := []struct {
		name       string
		responder  *responder
		assertions func(error)
	}{
		{
			name: "error sending response",
			responder: &responder{
				responseURL: "https://hooks.slack.com/commands/1234/5678",
				httpSendFn: func(*http.Request) (*http.Response, error) {
					return nil, errors.New("something went wrong")
				},
			},
			assertions: func(err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "something went wrong")
				require.Contains(t, err.Error(), "error sending follow-up response")
			},
		},
		{
			name: "non-200 response",
			responder: &responder{
				responseURL: "https://hooks.slack.com/commands/1234/5678",
				httpSendFn: func(*http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: http.StatusNotFound,
					}, nil
				},
			},
			assertions: func(err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "error sending follow-up response")
				require.Contains(t, err.Error(), "received status code")
			},
		},
		{
			name: "success",
			responder: &responder{
				responseURL: "https://hooks.slack.com/commands/1234/5678",
				httpSendFn: func(req *http.Request) (*http.Response, error) {
					require.Equal(t, http.MethodPost, req.Method)
					require.Equal(
						t,
						"application/json",
						req.Header.Get("Content-Type"),
					)
					body, err := ioutil.ReadAll(req.Body)
					require.NoError(t, err)
					require.Equal(t, "this is a payload", string(body))
					return &http.Response{
						StatusCode: http.StatusOK,
					}, nil
				},
			},
			assertions: func(err error) {
				require.NoError(t, err)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.assertions(
				testCase.responder.respond([]byte("this is a payload")),
			)
		})
	}
}
