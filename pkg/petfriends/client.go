// Package petfriends is a thin client for the PetFriends REST API.
//
// Every operation issues exactly one HTTP request and returns a Result holding
// the status code and body. HTTP error statuses are not Go errors: the caller
// asserts on Result.Status. A non-nil error means the request never completed
// (transport failure, cancelled context, unreadable photo file). The client
// does no retries, no caching and no validation of pet fields.
package petfriends

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/httpclient"
)

const (
	headerEmail    = "email"
	headerPassword = "password"
	headerAuthKey  = "auth_key"
)

// Client translates method calls into PetFriends API requests.
type Client struct {
	baseURL   string
	http      httpclient.Client
	endpoints *Endpoints
	log       Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(log Logger) Option {
	return func(c *Client) { c.log = ensureLogger(log) }
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		endpoints: NewEndpoints(),
		log:       noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(0)
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// GetAPIKey exchanges credentials for an auth key. On success the body has a
// "key" field; bad credentials yield 403 without it.
func (c *Client) GetAPIKey(ctx context.Context, email, password string) (*Result, error) {
	return c.do(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    c.endpoints.APIKey(),
		Headers: map[string]string{
			headerEmail:    email,
			headerPassword: password,
		},
	})
}

// ListPets lists all pets or only the caller's, depending on filter.
func (c *Client) ListPets(ctx context.Context, authKey string, filter Filter) (*Result, error) {
	return c.do(ctx, &httpclient.Request{
		Method:  http.MethodGet,
		URL:     c.endpoints.ListPets(),
		Headers: authHeaders(authKey),
		Query:   map[string]string{"filter": string(filter)},
	})
}

// AddNewPet creates a pet with a photo in one multipart request.
func (c *Client) AddNewPet(ctx context.Context, authKey, name, animalType, age string, photo *Photo) (*Result, error) {
	req := &httpclient.Request{
		Method:    http.MethodPost,
		URL:       c.endpoints.AddNewPet(),
		Headers:   authHeaders(authKey),
		Multipart: petFields(name, animalType, age),
	}
	if photo != nil {
		req.Files = []httpclient.File{photo.file()}
	}
	return c.do(ctx, req)
}

// AddNewPetFromFile loads the photo at path and calls AddNewPet.
func (c *Client) AddNewPetFromFile(ctx context.Context, authKey, name, animalType, age, path string) (*Result, error) {
	photo, err := LoadPhoto(path)
	if err != nil {
		return nil, err
	}
	return c.AddNewPet(ctx, authKey, name, animalType, age, photo)
}

// CreatePetSimple creates a pet without a photo.
func (c *Client) CreatePetSimple(ctx context.Context, authKey, name, animalType, age string) (*Result, error) {
	return c.do(ctx, &httpclient.Request{
		Method:    http.MethodPost,
		URL:       c.endpoints.CreatePetSimple(),
		Headers:   authHeaders(authKey),
		Multipart: petFields(name, animalType, age),
	})
}

// UpdatePetInfo replaces name, type and age of a pet owned by the caller.
func (c *Client) UpdatePetInfo(ctx context.Context, authKey, petID, name, animalType, age string) (*Result, error) {
	return c.do(ctx, &httpclient.Request{
		Method:  http.MethodPut,
		URL:     c.endpoints.UpdatePet(petID),
		Headers: authHeaders(authKey),
		Form:    petFields(name, animalType, age),
	})
}

// SetPhoto sets or replaces the photo of an existing pet.
func (c *Client) SetPhoto(ctx context.Context, authKey, petID string, photo *Photo) (*Result, error) {
	if photo == nil {
		return nil, ErrEmptyPhoto
	}
	return c.do(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.endpoints.SetPhoto(petID),
		Headers: authHeaders(authKey),
		Files:   []httpclient.File{photo.file()},
	})
}

// SetPhotoFromFile loads the photo at path and calls SetPhoto.
func (c *Client) SetPhotoFromFile(ctx context.Context, authKey, petID, path string) (*Result, error) {
	photo, err := LoadPhoto(path)
	if err != nil {
		return nil, err
	}
	return c.SetPhoto(ctx, authKey, petID, photo)
}

// DeletePet removes a pet. Deleting an id that no longer exists is answered
// with 400; a second delete of the same id is expected to fail.
func (c *Client) DeletePet(ctx context.Context, authKey, petID string) (*Result, error) {
	return c.do(ctx, &httpclient.Request{
		Method:  http.MethodDelete,
		URL:     c.endpoints.DeletePet(petID),
		Headers: authHeaders(authKey),
	})
}

func (c *Client) do(ctx context.Context, req *httpclient.Request) (*Result, error) {
	path := req.URL
	req.URL = c.baseURL + path

	traceParent := createTraceParent()
	if req.Headers == nil {
		req.Headers = make(map[string]string, 2)
	}
	req.Headers["Traceparent"] = traceParent
	req.Headers["Accept"] = "application/json"

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	duration := time.Since(start)

	if err != nil {
		c.log.ErrorObj("petfriends request failed", "request_error", map[string]any{
			"method":      req.Method,
			"path":        path,
			"duration_ms": duration.Milliseconds(),
			"trace_id":    extractTraceID(traceParent),
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("%s %s: %w", req.Method, path, err)
	}

	var contentType string
	if h := resp.Header(); h != nil {
		contentType = h.Get("Content-Type")
	}
	result := newResult(resp.StatusCode(), resp.Body(), contentType)

	c.log.DebugObj("petfriends request", "request_meta", map[string]any{
		"method":      req.Method,
		"path":        path,
		"status":      result.Status,
		"duration_ms": duration.Milliseconds(),
		"trace_id":    extractTraceID(traceParent),
	})

	return result, nil
}

func authHeaders(authKey string) map[string]string {
	return map[string]string{headerAuthKey: authKey}
}

func petFields(name, animalType, age string) map[string]string {
	return map[string]string{
		"name":        name,
		"animal_type": animalType,
		"age":         age,
	}
}
