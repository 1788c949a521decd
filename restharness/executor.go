package restharness

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/tcnksm/go-httpstat"

	"github.com/launchdarkly/rest-contract-tests/framework"
)

// DefaultTimeout is used if NewExecutor is not given WithTimeout.
const DefaultTimeout = time.Second * 30

// ResponseRecord is the outcome of one request. Any status code, including 4xx and 5xx, is
// a normal result; only a failed exchange is an error.
type ResponseRecord struct {
	StatusCode int
	Body       string
	// Headers has canonical header names. Repeated headers are joined with ", ".
	Headers map[string]string
	Elapsed time.Duration
	Timing  Timing
}

// Timing breaks down where the time of a request went.
type Timing struct {
	DNSLookup        time.Duration
	TCPConnection    time.Duration
	TLSHandshake     time.Duration
	ServerProcessing time.Duration
	ContentTransfer  time.Duration
}

// Header returns the value of a response header, looked up case-insensitively.
func (r ResponseRecord) Header(name string) string {
	return r.Headers[http.CanonicalHeaderKey(name)]
}

// Executor sends requests. It never retries: each call to Execute is exactly one round trip,
// so tests control their own call count and timing.
type Executor struct {
	client  *http.Client
	timeout time.Duration
	logger  framework.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithTimeout sets the per-request timeout. A request that exceeds it fails with a
// NetworkError whose IsTimeout method returns true.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = d }
}

// WithHTTPClient replaces the default http.Client, for instance to use a custom transport.
func WithHTTPClient(c *http.Client) ExecutorOption {
	return func(e *Executor) { e.client = c }
}

// WithLogger sets where the Executor describes each request and response.
func WithLogger(l framework.Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		logger:  framework.NullLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Timeout returns the per-request timeout.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// WithLogger returns a copy of the Executor that logs to a different Logger, typically the
// debug logger of the current test. The copy shares the same http.Client.
func (e *Executor) WithLogger(l framework.Logger) *Executor {
	e1 := *e
	e1.logger = l
	return &e1
}

// Execute sends the request and reads the whole response body.
func (e *Executor) Execute(ctx context.Context, desc RequestDescriptor) (ResponseRecord, error) {
	u, err := desc.URL()
	if err != nil {
		return ResponseRecord{}, &TransportError{Request: desc.String(), Err: err}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	var stat httpstat.Result
	ctx = httpstat.WithHTTPStat(ctx, &stat)

	var body io.Reader
	if desc.Body != nil {
		body = strings.NewReader(*desc.Body)
	}
	req, err := http.NewRequestWithContext(ctx, desc.Method, u.String(), body)
	if err != nil {
		return ResponseRecord{}, &TransportError{Request: desc.String(), Err: err}
	}
	for k, v := range desc.Headers {
		req.Header.Set(k, v)
	}

	e.logger.Printf(">> %s", desc)
	e.logger.Printf("   %s", CurlCommand(desc))

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		classified := classifyError(desc.String(), err)
		e.logger.Printf("<< %s", classified)
		return ResponseRecord{}, classified
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	end := time.Now()
	if err != nil {
		classified := classifyError(desc.String(), err)
		e.logger.Printf("<< %s", classified)
		return ResponseRecord{}, classified
	}
	stat.End(end)

	record := ResponseRecord{
		StatusCode: resp.StatusCode,
		Body:       string(data),
		Headers:    flattenHeaders(resp.Header),
		Elapsed:    end.Sub(start),
		Timing: Timing{
			DNSLookup:        stat.DNSLookup,
			TCPConnection:    stat.TCPConnection,
			TLSHandshake:     stat.TLSHandshake,
			ServerProcessing: stat.ServerProcessing,
			ContentTransfer:  stat.ContentTransfer(end),
		},
	}
	e.logger.Printf("<< %d %s (%d bytes in %s; dns %s, connect %s, tls %s, server %s)",
		record.StatusCode, http.StatusText(record.StatusCode), len(data), record.Elapsed,
		stat.DNSLookup, stat.TCPConnection, stat.TLSHandshake, stat.ServerProcessing)
	e.logResponse(record)
	return record, nil
}

// logResponse logs the response headers in name order, then the body.
func (e *Executor) logResponse(record ResponseRecord) {
	names := make([]string, 0, len(record.Headers))
	for k := range record.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		e.logger.Printf("   %s: %s", k, record.Headers[k])
	}
	if body := strings.TrimRight(record.Body, "\r\n"); body != "" {
		e.logger.Printf("   body: %s", truncate(body))
	}
}

func flattenHeaders(h http.Header) map[string]string {
	ret := make(map[string]string, len(h))
	for k, vs := range h {
		ret[http.CanonicalHeaderKey(k)] = strings.Join(vs, ", ")
	}
	return ret
}
