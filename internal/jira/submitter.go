package jira

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"jiraupdate-go/internal/apiclient"
)

const contentTypeJSON = "application/json; charset=utf-8"

// PostUpdateResult is the outcome of a single update submission. Exactly one
// of the success value or the error message is populated; callers branch on
// IsSuccess instead of handling errors.
type PostUpdateResult[T any] struct {
	value  *T
	errMsg string
}

// Success wraps a decoded API response as a successful result.
func Success[T any](value T) PostUpdateResult[T] {
	return PostUpdateResult[T]{value: &value}
}

// Failure wraps a human-readable message as a failed result.
func Failure[T any](message string) PostUpdateResult[T] {
	return PostUpdateResult[T]{errMsg: message}
}

// IsSuccess reports whether the result carries a decoded response.
func (r PostUpdateResult[T]) IsSuccess() bool {
	return r.value != nil
}

// Value returns the decoded response, or the zero value for failed results.
func (r PostUpdateResult[T]) Value() T {
	if r.value == nil {
		var zero T
		return zero
	}
	return *r.value
}

// ErrorMessage returns the failure message, or "" for successful results.
func (r PostUpdateResult[T]) ErrorMessage() string {
	return r.errMsg
}

// UpdateSubmitter posts JSON updates to a Jira Cloud API endpoint. The
// endpoint template contains a single %s placeholder that is resolved with
// the cloud id of the tenant being addressed.
//
// An UpdateSubmitter holds no per-call state, so it is safe for concurrent
// use as long as the underlying HTTPClient is.
type UpdateSubmitter struct {
	client      apiclient.HTTPClient
	apiEndpoint string
}

// NewUpdateSubmitter creates an UpdateSubmitter for the given endpoint
// template. The template is fixed for the lifetime of the submitter.
func NewUpdateSubmitter(client apiclient.HTTPClient, apiEndpoint string) *UpdateSubmitter {
	return &UpdateSubmitter{
		client:      client,
		apiEndpoint: apiEndpoint,
	}
}

// PostUpdate submits an update to the Jira Builds or Deployments API and
// returns the response decoded as T. It never returns an error: every
// failure mode (payload encoding, transport, error status, empty or
// undecodable body) is converted into the failure arm of the result.
//
// siteURL does not affect the request; it is carried as a log field so
// diagnostics can be traced back to the Jira site being updated.
//
// It is a function rather than a method because Go methods cannot introduce
// type parameters.
func PostUpdate[T any](
	s *UpdateSubmitter,
	cloudID string,
	accessToken string,
	siteURL string,
	payload any,
) PostUpdateResult[T] {
	requestPayload, err := json.Marshal(payload)
	if err != nil {
		var typeErr *json.UnsupportedTypeError
		var valueErr *json.UnsupportedValueError
		if errors.As(err, &typeErr) || errors.As(err, &valueErr) {
			// The payload itself is not representable as JSON, which points
			// at a defect in the caller's payload assembly.
			return Failure[T](fmt.Sprintf("Invalid JSON payload: %s", err))
		}
		return Failure[T](fmt.Sprintf("Unable to create the request payload: %s", err))
	}

	opts := &apiclient.RequestOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
			"Content-Type":  contentTypeJSON,
		},
		Body: requestPayload,
	}

	response, err := s.client.Post(fmt.Sprintf(s.apiEndpoint, cloudID), opts)
	if err != nil {
		return Failure[T](fmt.Sprintf("Server exception when submitting update to Jira: %s", err))
	}

	if !response.IsSuccess() {
		// The raw body stays in the logs; the returned message only names
		// the status code.
		if len(response.Body) > 0 {
			log.Error().
				Str("site", siteURL).
				Msgf("Error response body when submitting update to Jira: %s", response.Body)
		}
		return Failure[T](fmt.Sprintf("Error response code %d when submitting update to Jira", response.StatusCode))
	}

	if len(response.Body) == 0 {
		return Failure[T]("Empty response body when submitting update to Jira")
	}

	var responseEntity T
	if err := json.Unmarshal(response.Body, &responseEntity); err != nil {
		return Failure[T](fmt.Sprintf("Unexpected error when submitting update to Jira: %s", err))
	}

	return Success(responseEntity)
}
