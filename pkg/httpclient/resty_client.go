package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// Option customizes the underlying resty client.
type Option func(*resty.Client)

// WithLogger routes resty's internal warnings through the given logger.
func WithLogger(l resty.Logger) Option {
	return func(c *resty.Client) {
		if l != nil {
			c.SetLogger(l)
		}
	}
}

// WithBaseURL makes relative request URLs resolve against baseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *resty.Client) {
		if baseURL != "" {
			c.SetBaseURL(baseURL)
		}
	}
}

// NewRestyClient creates a new RestyClient with the specified timeout.
// A zero timeout leaves requests unbounded.
func NewRestyClient(timeout time.Duration, opts ...Option) *RestyClient {
	c := newRestyBaseClient(timeout)
	for _, opt := range opts {
		opt(c)
	}
	return &RestyClient{client: c}
}

// newRestyBaseClient creates a new resty.Client with the specified timeout and no retries.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetRetryCount(0)
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.Do(ctx, &Request{Method: http.MethodGet, URL: url, Headers: headers})
}

// Do executes req and returns the raw response. Non-2xx statuses are not errors.
func (r *RestyClient) Do(ctx context.Context, req *Request) (Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		rr.SetQueryParams(req.Query)
	}

	switch {
	case req.IsMultipart():
		if len(req.Multipart) > 0 {
			rr.SetMultipartFormData(req.Multipart)
		}
		for _, f := range req.Files {
			rr.SetMultipartField(f.Param, f.FileName, f.ContentType, f.Reader)
		}
	case len(req.Form) > 0:
		rr.SetFormData(req.Form)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := rr.Execute(method, req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
