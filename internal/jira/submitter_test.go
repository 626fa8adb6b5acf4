package jira

import (
	"bytes"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiraupdate-go/internal/apiclient"
)

type updateResponse struct {
	ID int `json:"id"`
}

// failingPayload marshals to an error that is neither an unsupported-type
// nor an unsupported-value error.
type failingPayload struct{}

func (failingPayload) MarshalJSON() ([]byte, error) {
	return nil, errors.New("encoder broke")
}

func newTestSubmitter(t *testing.T, handler http.Handler) *UpdateSubmitter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewUpdateSubmitter(apiclient.NewRestyAdapter(), srv.URL+"/sites/%s/update")
}

func TestPostUpdateSuccess(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte
	s := newTestSubmitter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":42}`))
	}))

	result := PostUpdate[updateResponse](s, "abc", "token-1", "https://example.atlassian.net",
		map[string]string{"hello": "world"})

	require.True(t, result.IsSuccess(), "Must be a success result: %s", result.ErrorMessage())
	assert.Equal(t, updateResponse{ID: 42}, result.Value())
	assert.Empty(t, result.ErrorMessage())

	assert.Equal(t, "/sites/abc/update", gotPath, "Must substitute the cloud id into the endpoint template")
	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.Equal(t, "application/json; charset=utf-8", gotContentType)
	assert.JSONEq(t, `{"hello":"world"}`, string(gotBody))
}

func TestPostUpdateErrorStatus(t *testing.T) {
	tests := []struct {
		code    int
		message string
	}{
		{code: 400, message: "Error response code 400 when submitting update to Jira"},
		{code: 403, message: "Error response code 403 when submitting update to Jira"},
		{code: 500, message: "Error response code 500 when submitting update to Jira"},
		{code: 503, message: "Error response code 503 when submitting update to Jira"},
	}
	for _, tc := range tests {
		t.Run(tc.message, func(t *testing.T) {
			s := newTestSubmitter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				w.Write([]byte(`{"err":"boom"}`))
			}))

			result := PostUpdate[updateResponse](s, "abc", "token-1", "site", struct{}{})

			require.False(t, result.IsSuccess())
			assert.Equal(t, tc.message, result.ErrorMessage())
			assert.NotContains(t, result.ErrorMessage(), "boom",
				"The raw response body must not leak into the returned message")
		})
	}
}

func TestPostUpdateErrorBodyIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	s := newTestSubmitter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"err":"boom"}`))
	}))

	result := PostUpdate[updateResponse](s, "abc", "token-1", "https://example.atlassian.net", struct{}{})

	require.False(t, result.IsSuccess())
	assert.Equal(t, "Error response code 500 when submitting update to Jira", result.ErrorMessage())
	assert.Contains(t, buf.String(), "boom", "The response body must be logged for troubleshooting")
	assert.Contains(t, buf.String(), "https://example.atlassian.net")
	assert.NotContains(t, result.ErrorMessage(), "boom")
}

func TestPostUpdateEmptyResponseBody(t *testing.T) {
	s := newTestSubmitter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	result := PostUpdate[updateResponse](s, "abc", "token-1", "site", struct{}{})

	require.False(t, result.IsSuccess())
	assert.Equal(t, "Empty response body when submitting update to Jira", result.ErrorMessage())
}

func TestPostUpdatePayloadNotSerializable(t *testing.T) {
	// The payload never leaves the process, so no server is needed.
	s := NewUpdateSubmitter(apiclient.NewRestyAdapter(), "http://127.0.0.1:0/sites/%s/update")

	tests := []struct {
		scenario string
		payload  any
	}{
		{scenario: "unsupported type", payload: map[string]any{"ch": make(chan int)}},
		{scenario: "unsupported value", payload: map[string]any{"nan": math.NaN()}},
	}
	for _, tc := range tests {
		t.Run(tc.scenario, func(t *testing.T) {
			result := PostUpdate[updateResponse](s, "abc", "token-1", "site", tc.payload)

			require.False(t, result.IsSuccess())
			assert.Regexp(t, `^Invalid JSON payload: `, result.ErrorMessage())
		})
	}
}

func TestPostUpdatePayloadEncodingError(t *testing.T) {
	s := NewUpdateSubmitter(apiclient.NewRestyAdapter(), "http://127.0.0.1:0/sites/%s/update")

	result := PostUpdate[updateResponse](s, "abc", "token-1", "site", failingPayload{})

	require.False(t, result.IsSuccess())
	assert.Regexp(t, `^Unable to create the request payload: `, result.ErrorMessage())
}

func TestPostUpdateTransportError(t *testing.T) {
	// Port 1 is reserved and closed, so the connection is refused.
	s := NewUpdateSubmitter(apiclient.NewRestyAdapter(), "http://127.0.0.1:1/sites/%s/update")

	result := PostUpdate[updateResponse](s, "abc", "token-1", "site", struct{}{})

	require.False(t, result.IsSuccess())
	assert.Regexp(t, `^Server exception when submitting update to Jira: `, result.ErrorMessage())
}

func TestPostUpdateUndecodableResponse(t *testing.T) {
	s := newTestSubmitter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("this is not json"))
	}))

	result := PostUpdate[updateResponse](s, "abc", "token-1", "site", struct{}{})

	require.False(t, result.IsSuccess())
	assert.Regexp(t, `^Unexpected error when submitting update to Jira: `, result.ErrorMessage())
}

func TestPostUpdateSequentialCallsEquivalent(t *testing.T) {
	s := newTestSubmitter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":7}`))
	}))

	first := PostUpdate[updateResponse](s, "abc", "token-1", "site", map[string]string{"a": "b"})
	second := PostUpdate[updateResponse](s, "abc", "token-1", "site", map[string]string{"a": "b"})

	assert.Equal(t, first.IsSuccess(), second.IsSuccess())
	assert.Equal(t, first.Value(), second.Value())
	assert.Equal(t, first.ErrorMessage(), second.ErrorMessage())
}

func TestPostUpdateResultArms(t *testing.T) {
	success := Success(updateResponse{ID: 1})
	require.True(t, success.IsSuccess())
	assert.Equal(t, updateResponse{ID: 1}, success.Value())
	assert.Empty(t, success.ErrorMessage())

	failure := Failure[updateResponse]("went wrong")
	require.False(t, failure.IsSuccess())
	assert.Equal(t, updateResponse{}, failure.Value(), "Failed results carry the zero value")
	assert.Equal(t, "went wrong", failure.ErrorMessage())
}
