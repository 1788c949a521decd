package restharness

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrMissingPath is returned by Build if no override set a path.
var ErrMissingPath = errors.New("request path is required")

// RequestDescriptor is a concrete request, produced by Build from a RequestSpec plus
// per-call overrides. It belongs to the test that built it.
type RequestDescriptor struct {
	Method  string
	BaseURI string
	Path    string
	Query   url.Values
	Body    *string
	Headers map[string]string
}

// Override changes one property of a request being built.
type Override func(*RequestDescriptor) error

// Method sets the HTTP method. The default is GET.
func Method(method string) Override {
	return func(d *RequestDescriptor) error {
		d.Method = strings.ToUpper(method)
		return nil
	}
}

// Path sets the request path relative to the spec's base URI.
func Path(path string) Override {
	return func(d *RequestDescriptor) error {
		d.Path = path
		return nil
	}
}

// Get sets the method to GET and the path.
func Get(path string) Override { return combine(Method(http.MethodGet), Path(path)) }

// Post sets the method to POST and the path.
func Post(path string) Override { return combine(Method(http.MethodPost), Path(path)) }

// Param appends a query parameter. The same name may be given more than once.
func Param(name, value string) Override {
	return func(d *RequestDescriptor) error {
		d.Query.Add(name, value)
		return nil
	}
}

// Header sets a request header, replacing any default with the same name.
func Header(name, value string) Override {
	return func(d *RequestDescriptor) error {
		d.Headers[http.CanonicalHeaderKey(name)] = value
		return nil
	}
}

// Body attaches a raw request body.
func Body(raw string) Override {
	return func(d *RequestDescriptor) error {
		d.Body = &raw
		return nil
	}
}

// JSONBody marshals v and attaches it as the request body.
func JSONBody(v interface{}) Override {
	return func(d *RequestDescriptor) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("cannot encode request body: %w", err)
		}
		raw := string(data)
		d.Body = &raw
		return nil
	}
}

func combine(overrides ...Override) Override {
	return func(d *RequestDescriptor) error {
		for _, o := range overrides {
			if err := o(d); err != nil {
				return err
			}
		}
		return nil
	}
}

// Build composes the spec's defaults with the overrides. Anything the overrides do not set
// is inherited from the spec. The spec itself is not modified.
func Build(spec RequestSpec, overrides ...Override) (RequestDescriptor, error) {
	d := RequestDescriptor{
		Method:  http.MethodGet,
		BaseURI: spec.baseURI,
		Query:   make(url.Values),
		Headers: spec.Headers(),
	}
	for _, o := range overrides {
		if err := o(&d); err != nil {
			return RequestDescriptor{}, err
		}
	}
	if d.Path == "" {
		return RequestDescriptor{}, ErrMissingPath
	}
	if d.Body != nil && spec.contentType != ContentTypeNone {
		if _, ok := d.Headers["Content-Type"]; !ok {
			d.Headers["Content-Type"] = spec.contentType.String()
		}
	}
	return d, nil
}

// URL returns the absolute request URL with the query string encoded.
func (d RequestDescriptor) URL() (*url.URL, error) {
	u, err := url.Parse(d.BaseURI + "/" + strings.TrimLeft(d.Path, "/"))
	if err != nil {
		return nil, err
	}
	if len(d.Query) > 0 {
		q := u.Query()
		for k, vs := range d.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

// String returns the method and the path with its query, such as "GET /users?id=5".
func (d RequestDescriptor) String() string {
	s := d.Method + " /" + strings.TrimLeft(d.Path, "/")
	if len(d.Query) > 0 {
		s += "?" + d.Query.Encode()
	}
	return s
}
