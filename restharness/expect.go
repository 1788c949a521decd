package restharness

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/rest-contract-tests/jsonpath"
)

// Mode decides what happens after a failed check.
type Mode int

const (
	// HardAssert stops the test at the first failed check, as the require package does.
	HardAssert Mode = iota
	// SoftAssert records every failed check and lets the test continue, as the assert
	// package does. The test still fails at the end.
	SoftAssert
)

func (m Mode) String() string {
	if m == SoftAssert {
		return "soft"
	}
	return "hard"
}

const maxBodyInMessage = 300

// Expectation makes checks against one response. Failure messages name the request, the
// expected and actual values, and the path expression that produced the actual value.
type Expectation struct {
	t       require.TestingT
	resp    ResponseRecord
	request string
	mode    Mode
	doc     *jsonpath.Document
	docErr  error
	parsed  bool
}

// ExpectOption configures an Expectation.
type ExpectOption func(*Expectation)

// Described adds the request's method and path to every failure message.
func Described(desc RequestDescriptor) ExpectOption {
	return func(x *Expectation) { x.request = desc.String() }
}

// WithMode chooses between HardAssert (the default) and SoftAssert.
func WithMode(m Mode) ExpectOption {
	return func(x *Expectation) { x.mode = m }
}

// Soft is shorthand for WithMode(SoftAssert).
func Soft() ExpectOption { return WithMode(SoftAssert) }

// Expect starts a set of checks on a response. The TestingT can be a *testing.T or a
// *framework.Context.
func Expect(t require.TestingT, resp ResponseRecord, opts ...ExpectOption) *Expectation {
	x := &Expectation{t: t, resp: resp}
	for _, o := range opts {
		o(x)
	}
	return x
}

// Status checks the HTTP status code.
func (x *Expectation) Status(expected int) *Expectation {
	if x.resp.StatusCode != expected {
		x.fail("expected status %d, got %d; body: %s", expected, x.resp.StatusCode, truncate(x.resp.Body))
	}
	return x
}

// Field checks that the path resolves to a scalar whose string form equals expected. A
// null value never matches, not even an empty expected string; check Extract(p).IsNull()
// to expect one.
func (x *Expectation) Field(p jsonpath.Path, expected string) *Expectation {
	s, ok := x.resolve(p)
	switch {
	case !ok:
	case s.IsNull():
		x.fail("field %q: expected %q, got null", p, expected)
	case s.String() != expected:
		x.fail("field %q: expected %q, got %q", p, expected, s.String())
	}
	return x
}

// FieldNonEmpty checks that the path resolves to a non-empty scalar.
func (x *Expectation) FieldNonEmpty(p jsonpath.Path) *Expectation {
	if s, ok := x.resolve(p); ok && s.String() == "" {
		x.fail("field %q: expected a non-empty value, got %s", p, s.Value().JSONString())
	}
	return x
}

// FieldContains checks that the path resolves to a scalar containing needle.
func (x *Expectation) FieldContains(p jsonpath.Path, needle string) *Expectation {
	if s, ok := x.resolve(p); ok && !strings.Contains(s.String(), needle) {
		x.fail("field %q: expected a value containing %q, got %q", p, needle, s.String())
	}
	return x
}

// FieldsOrdered checks that the path resolves to a list of scalars, such as "id" against a
// list of records, in non-decreasing order.
func (x *Expectation) FieldsOrdered(p jsonpath.Path) *Expectation {
	values, ok := x.resolveAll(p)
	if !ok {
		return x
	}
	i, err := jsonpath.FirstUnordered(values)
	switch {
	case err != nil:
		x.fail("field %q: cannot check ordering %s", p, err)
	case i >= 0:
		x.fail("field %q: expected values in ascending order, but position %d (%s) comes after %s",
			p, i, values[i].Value().JSONString(), values[i-1].Value().JSONString())
	}
	return x
}

// Equals compares any two values, labeling the failure with what was being compared.
func (x *Expectation) Equals(expected, actual interface{}, label string) *Expectation {
	msg := label
	if x.request != "" {
		msg = x.request + ": " + label
	}
	if x.mode == HardAssert {
		require.Equal(x.t, expected, actual, msg)
	} else {
		assert.Equal(x.t, expected, actual, msg)
	}
	return x
}

// Extract resolves a scalar for the caller's own use. If resolution fails, that is recorded
// as a failed check and the zero Scalar is returned.
func (x *Expectation) Extract(p jsonpath.Path) jsonpath.Scalar {
	s, _ := x.resolve(p)
	return s
}

// Document returns the parsed response body, or nil after recording a failed check if the
// body is not JSON.
func (x *Expectation) Document() *jsonpath.Document {
	doc, _ := x.document()
	return doc
}

func (x *Expectation) document() (*jsonpath.Document, bool) {
	if !x.parsed {
		x.doc, x.docErr = jsonpath.ParseDocument([]byte(x.resp.Body))
		x.parsed = true
	}
	if x.docErr != nil {
		x.fail("response body is not valid JSON (%s): %s", x.docErr, truncate(x.resp.Body))
		return nil, false
	}
	return x.doc, true
}

func (x *Expectation) resolve(p jsonpath.Path) (jsonpath.Scalar, bool) {
	doc, ok := x.document()
	if !ok {
		return jsonpath.Scalar{}, false
	}
	s, err := doc.Resolve(p)
	if err != nil {
		x.fail("cannot extract %q: %s", p, err)
		return jsonpath.Scalar{}, false
	}
	return s, true
}

func (x *Expectation) resolveAll(p jsonpath.Path) ([]jsonpath.Scalar, bool) {
	doc, ok := x.document()
	if !ok {
		return nil, false
	}
	values, err := doc.ResolveAll(p)
	if err != nil {
		x.fail("cannot extract %q: %s", p, err)
		return nil, false
	}
	return values, true
}

func (x *Expectation) fail(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if x.request != "" {
		msg = x.request + ": " + msg
	}
	if x.mode == HardAssert {
		require.Fail(x.t, msg)
	} else {
		assert.Fail(x.t, msg)
	}
}

func truncate(body string) string {
	if len(body) <= maxBodyInMessage {
		return body
	}
	cut := maxBodyInMessage
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "..."
}
