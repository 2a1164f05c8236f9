package petfriends

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

const maxMessageLen = 512

// Result is the (status, body) pair every operation returns. Data holds the
// decoded body when it is a JSON object and is nil otherwise; Raw always holds
// the bytes as received.
type Result struct {
	Status      int
	Raw         []byte
	Data        map[string]any
	ContentType string
}

func newResult(status int, body []byte, contentType string) *Result {
	r := &Result{Status: status, Raw: body, ContentType: contentType}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err == nil {
		r.Data = data
	}
	return r
}

// OK reports a 200 status.
func (r *Result) OK() bool { return r.Status == http.StatusOK }

// IsJSON reports whether the body decoded as a JSON object.
func (r *Result) IsJSON() bool { return r.Data != nil }

// Text returns the body as a string.
func (r *Result) Text() string { return string(r.Raw) }

// Has reports whether the JSON body carries a top-level field.
func (r *Result) Has(field string) bool {
	if r.Data == nil {
		return false
	}
	_, ok := r.Data[field]
	return ok
}

// Get looks up a gjson path in the body, e.g. "pets.#" or "pets.0.id".
func (r *Result) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Raw, path)
}

// Decode unmarshals the JSON body into v.
func (r *Result) Decode(v any) error {
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("decode status %d body: %w", r.Status, err)
	}
	return nil
}

// Key returns the auth key of a GetAPIKey result, or "" when absent.
func (r *Result) Key() string {
	if r.Data == nil {
		return ""
	}
	return r.Get("key").String()
}

// Pet decodes a single pet record.
func (r *Result) Pet() (*Pet, error) {
	var p Pet
	if err := r.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Pets decodes the pets of a list result.
func (r *Result) Pets() ([]Pet, error) {
	var list PetList
	if err := r.Decode(&list); err != nil {
		return nil, err
	}
	return list.Pets, nil
}

// Message returns a short human readable description of the body. Error pages
// served as HTML are reduced to their title and first paragraph.
func (r *Result) Message() string {
	if r.Data != nil {
		for _, field := range []string{"message", "error", "detail"} {
			if v := r.Get(field); v.Exists() {
				return v.String()
			}
		}
	}
	if looksLikeHTML(r.ContentType, r.Raw) {
		if msg := htmlMessage(r.Raw); msg != "" {
			return msg
		}
	}
	return snippet(r.Raw)
}

func (r *Result) String() string {
	return fmt.Sprintf("status=%d body=%s", r.Status, snippet(r.Raw))
}

func looksLikeHTML(contentType string, body []byte) bool {
	if strings.HasPrefix(contentType, "text/html") {
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(body))
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

func htmlMessage(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	para := strings.Join(strings.Fields(doc.Find("p").First().Text()), " ")
	switch {
	case title != "" && para != "":
		return title + ": " + para
	case title != "":
		return title
	default:
		return para
	}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxMessageLen {
		return s
	}
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
