package apiclient

import (
	"fmt"
	"time"

	"resty.dev/v3"

	"jiraupdate-go/internal/cstmerr"
)

// RestyAdapter implements the HTTPClient interface using the resty library.
type RestyAdapter struct {
	client *resty.Client
}

// NewRestyAdapter creates a new RestyAdapter with default transport settings.
func NewRestyAdapter() *RestyAdapter {
	transportSettings := &resty.TransportSettings{
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 60 * time.Second,
	}
	client := resty.NewWithTransportSettings(transportSettings)
	return &RestyAdapter{
		client: client,
	}
}

// NewRestyAdapterWithClient creates a new RestyAdapter using a pre-configured
// *resty.Client, for callers that need customized client settings.
func NewRestyAdapterWithClient(client *resty.Client) *RestyAdapter {
	if client == nil {
		return NewRestyAdapter()
	}
	return &RestyAdapter{client: client}
}

// buildRequest is a helper to configure a resty request from RequestOptions.
func (ra *RestyAdapter) buildRequest(baseRequest *resty.Request, opts *RequestOptions) *resty.Request {
	req := baseRequest
	if opts != nil {
		if opts.Headers != nil {
			req.SetHeaders(opts.Headers)
		}
		if opts.QueryParams != nil {
			req.SetQueryParams(opts.QueryParams)
		}
		if opts.Body != nil {
			req.SetBody(opts.Body)
		}
	}
	return req
}

// Get implements the HTTPClient interface Get method.
func (ra *RestyAdapter) Get(url string, opts *RequestOptions) (*Response, error) {
	restyReq := ra.buildRequest(ra.client.R(), opts)
	restyResp, err := restyReq.Get(url)

	if err != nil { // Network errors, client-side timeouts before response, etc.
		return nil, cstmerr.NewAPIClientError(fmt.Errorf("HTTP GET request to %s failed: %w", url, err))
	}

	return &Response{
		StatusCode: restyResp.StatusCode(),
		Body:       restyResp.Bytes(),
		Headers:    restyResp.Header(),
		RequestURL: restyResp.Request.URL,
	}, nil
}

// Post implements the HTTPClient interface Post method.
func (ra *RestyAdapter) Post(url string, opts *RequestOptions) (*Response, error) {
	restyReq := ra.buildRequest(ra.client.R(), opts)
	restyResp, err := restyReq.Post(url)

	if err != nil {
		return nil, cstmerr.NewAPIClientError(fmt.Errorf("HTTP POST request to %s failed: %w", url, err))
	}

	return &Response{
		StatusCode: restyResp.StatusCode(),
		Body:       restyResp.Bytes(),
		Headers:    restyResp.Header(),
		RequestURL: restyResp.Request.URL,
	}, nil
}
