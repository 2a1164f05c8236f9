package httpclient

import (
	"context"
	"io"
	"net/http"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	Do(ctx context.Context, req *Request) (Response, error)
}

// Request describes a single HTTP call. Form and Multipart are mutually exclusive;
// Multipart wins when both are set. Files imply a multipart body.
type Request struct {
	Method    string
	URL       string
	Headers   map[string]string
	Query     map[string]string
	Form      map[string]string
	Multipart map[string]string
	Files     []File
}

// File is one file part of a multipart body.
type File struct {
	Param       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// IsMultipart reports whether the request body is sent as multipart/form-data.
func (r *Request) IsMultipart() bool {
	return len(r.Multipart) > 0 || len(r.Files) > 0
}
