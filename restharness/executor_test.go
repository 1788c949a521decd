package restharness

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/rest-contract-tests/framework"
)

func buildFor(t *testing.T, server *httptest.Server, overrides ...Override) RequestDescriptor {
	d, err := Build(NewSpec(server.URL, WithContentType(ContentTypeJSON)), overrides...)
	require.NoError(t, err)
	return d
}

func TestExecuteReturnsResponse(t *testing.T) {
	headers := make(http.Header)
	headers.Add("X-Thing", "a")
	headers.Add("X-Thing", "b")
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, headers, []byte(`{"id":1}`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		d := buildFor(t, server, Get("/posts/1"), Param("userId", "10"))
		resp, err := NewExecutor().Execute(context.Background(), d)
		require.NoError(t, err)

		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, `{"id":1}`, resp.Body)
		assert.Equal(t, "a, b", resp.Header("x-thing"))
		assert.True(t, resp.Elapsed > 0)

		r := <-requestsCh
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, "/posts/1", r.Request.URL.Path)
		assert.Equal(t, "10", r.Request.URL.Query().Get("userId"))
		assert.Empty(t, r.Request.Header.Get("Content-Type"))
	})
}

func TestExecuteSendsBodyAndHeaders(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(201))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		d := buildFor(t, server, Post("/posts"), Body(`{"title":"AlexExample"}`), Header("X-Trace", "abc"))
		resp, err := NewExecutor().Execute(context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, "abc", r.Request.Header.Get("X-Trace"))
		assert.Equal(t, `{"title":"AlexExample"}`, string(r.Body))
	})
}

func TestErrorStatusIsNotAnError(t *testing.T) {
	for _, status := range []int{400, 404, 500, 503} {
		httphelpers.WithServer(httphelpers.HandlerWithStatus(status), func(server *httptest.Server) {
			resp, err := NewExecutor().Execute(context.Background(), buildFor(t, server, Get("/posts/150")))
			require.NoError(t, err)
			assert.Equal(t, status, resp.StatusCode)
		})
	}
}

func TestExecuteDoesNotRetry(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(503))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		_, err := NewExecutor().Execute(context.Background(), buildFor(t, server, Get("/posts")))
		require.NoError(t, err)
		assert.Len(t, requestsCh, 1)
	})
}

func TestTimeoutIsNetworkError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second * 5):
		}
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		executor := NewExecutor(WithTimeout(time.Millisecond * 50))
		_, err := executor.Execute(context.Background(), buildFor(t, server, Get("/slow")))
		require.Error(t, err)
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr), "expected NetworkError, got %T: %s", err, err)
		assert.True(t, netErr.IsTimeout())
		assert.Contains(t, err.Error(), "GET /slow")
	})
}

func TestDroppedConnectionIsNetworkError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			_ = conn.Close()
		}
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		_, err := NewExecutor().Execute(context.Background(), buildFor(t, server, Get("/posts")))
		require.Error(t, err)
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr), "expected NetworkError, got %T: %s", err, err)
		assert.False(t, netErr.IsTimeout())
	})
}

func TestRefusedConnectionIsTransportError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	d, err := Build(NewSpec("http://"+addr), Get("/posts"))
	require.NoError(t, err)
	_, err = NewExecutor().Execute(context.Background(), d)
	require.Error(t, err)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "expected TransportError, got %T: %s", err, err)
	assert.Contains(t, err.Error(), "GET /posts")
}

func TestUnsupportedSchemeIsTransportError(t *testing.T) {
	d, err := Build(NewSpec("ftp://example.com"), Get("/posts"))
	require.NoError(t, err)
	_, err = NewExecutor().Execute(context.Background(), d)
	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr), "expected TransportError, got %T: %s", err, err)
}

func TestExecutorLogsRequestAndResponse(t *testing.T) {
	headers := make(http.Header)
	headers.Set("X-Thing", "a")
	handler := httphelpers.HandlerWithResponse(404, headers, []byte(`{"error":"not found"}`))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var logger framework.CapturingLogger
		executor := NewExecutor().WithLogger(&logger)
		_, err := executor.Execute(context.Background(), buildFor(t, server, Get("/posts/150")))
		require.NoError(t, err)

		output := logger.Output()
		require.True(t, len(output) > 4)
		assert.Equal(t, ">> GET /posts/150", output[0].Message)
		assert.Contains(t, output[1].Message, "curl -i "+server.URL+"/posts/150")
		assert.Contains(t, output[2].Message, "<< 404 Not Found")
		var messages []string
		for _, m := range output[3:] {
			messages = append(messages, m.Message)
		}
		assert.Contains(t, messages, "   X-Thing: a")
		assert.Equal(t, `   body: {"error":"not found"}`, output[len(output)-1].Message)
	})
}

func TestExecutorLogsTruncatedBody(t *testing.T) {
	body := strings.Repeat("é", maxBodyInMessage)
	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, nil, []byte(body)), func(server *httptest.Server) {
		var logger framework.CapturingLogger
		_, err := NewExecutor().WithLogger(&logger).Execute(context.Background(), buildFor(t, server, Get("/posts")))
		require.NoError(t, err)

		output := logger.Output()
		last := output[len(output)-1].Message
		assert.True(t, strings.HasPrefix(last, "   body: é"))
		assert.True(t, strings.HasSuffix(last, "..."))
		assert.True(t, utf8.ValidString(last))
	})
}

func TestWithLoggerDoesNotChangeOriginal(t *testing.T) {
	original := NewExecutor(WithTimeout(time.Second))
	var logger framework.CapturingLogger
	copied := original.WithLogger(&logger)
	assert.Equal(t, time.Second, copied.Timeout())
	assert.NotSame(t, original, copied)
	assert.Equal(t, framework.NullLogger(), original.logger)
}
