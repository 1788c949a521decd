package restharness

import (
	"net/http"
	"strings"
)

// ContentType is the default body type a RequestSpec declares.
type ContentType int

const (
	ContentTypeNone ContentType = iota
	ContentTypeJSON
	ContentTypeText
	ContentTypeForm
)

func (c ContentType) String() string {
	switch c {
	case ContentTypeJSON:
		return "application/json"
	case ContentTypeText:
		return "text/plain"
	case ContentTypeForm:
		return "application/x-www-form-urlencoded"
	default:
		return ""
	}
}

// ParseContentType accepts either a short name ("json", "text", "form") or a MIME type.
func ParseContentType(s string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ContentTypeNone, true
	case "json", "application/json":
		return ContentTypeJSON, true
	case "text", "text/plain":
		return ContentTypeText, true
	case "form", "application/x-www-form-urlencoded":
		return ContentTypeForm, true
	}
	return ContentTypeNone, false
}

// RequestSpec holds the default properties shared by every request in a test run. It cannot
// be modified after NewSpec returns, so one instance can be shared by all tests.
type RequestSpec struct {
	baseURI     string
	contentType ContentType
	headers     map[string]string
}

// SpecOption configures a RequestSpec.
type SpecOption func(*RequestSpec)

// WithContentType sets the default content type. It is sent as the Content-Type header on
// any request that has a body.
func WithContentType(c ContentType) SpecOption {
	return func(s *RequestSpec) { s.contentType = c }
}

// WithHeader adds a header that is sent on every request.
func WithHeader(name, value string) SpecOption {
	return func(s *RequestSpec) { s.headers[http.CanonicalHeaderKey(name)] = value }
}

// WithHeaders adds several headers that are sent on every request.
func WithHeaders(headers map[string]string) SpecOption {
	return func(s *RequestSpec) {
		for k, v := range headers {
			s.headers[http.CanonicalHeaderKey(k)] = v
		}
	}
}

// NewSpec creates a RequestSpec. Any trailing slash on baseURI is ignored.
func NewSpec(baseURI string, opts ...SpecOption) RequestSpec {
	s := RequestSpec{
		baseURI: strings.TrimRight(baseURI, "/"),
		headers: make(map[string]string),
	}
	for _, o := range opts {
		o(&s)
	}
	return s
}

func (s RequestSpec) BaseURI() string { return s.baseURI }

func (s RequestSpec) ContentType() ContentType { return s.contentType }

// Headers returns a copy of the default headers.
func (s RequestSpec) Headers() map[string]string {
	return copyHeaders(s.headers)
}

func copyHeaders(h map[string]string) map[string]string {
	ret := make(map[string]string, len(h))
	for k, v := range h {
		ret[k] = v
	}
	return ret
}
