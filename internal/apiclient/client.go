package apiclient

import (
	"net/http"
)

// RequestOptions holds options for an HTTP request.
type RequestOptions struct {
	Headers     map[string]string
	QueryParams map[string]string
	Body        any // []byte and string are sent as-is, anything else is JSON marshaled by the adapter
}

// Response represents a general HTTP response. The body has been fully read
// and the underlying connection released by the time a Response is returned.
type Response struct {
	StatusCode int
	Body       []byte      // Raw response body
	Headers    http.Header // Standard http.Header
	RequestURL string      // The URL that was requested
}

// IsSuccess checks if the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPClient defines the interface for a generic HTTP client.
// Implementations of this interface will handle the actual HTTP communication.
type HTTPClient interface {
	// Get performs an HTTP GET request.
	Get(url string, opts *RequestOptions) (*Response, error)

	// Post performs an HTTP POST request.
	// opts.Body is sent raw when it is already encoded, otherwise marshaled to JSON.
	Post(url string, opts *RequestOptions) (*Response, error)
}
