package restharness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
)

// NetworkError means a request was sent, or a connection attempt was made, but the
// exchange did not complete: a timeout, a reset connection, or a truncated body.
type NetworkError struct {
	Request string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: timed out: %s", e.Request, e.Err)
	}
	return fmt.Sprintf("%s: network error: %s", e.Request, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsTimeout returns true if the request exceeded its deadline.
func (e *NetworkError) IsTimeout() bool { return e.Timeout }

// TransportError means the remote service could not be reached at all: the host name did
// not resolve, the connection was refused, or the URL was unusable.
type TransportError struct {
	Request string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: service unreachable: %s", e.Request, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func classifyError(request string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &NetworkError{Request: request, Timeout: true, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &NetworkError{Request: request, Timeout: true, Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &TransportError{Request: request, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &TransportError{Request: request, Err: err}
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return &TransportError{Request: request, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && !isNetError(urlErr.Err) {
		return &TransportError{Request: request, Err: err}
	}
	return &NetworkError{Request: request, Err: err}
}

func isNetError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, context.Canceled)
}
