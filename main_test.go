package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/rest-contract-tests/config"
	"github.com/launchdarkly/rest-contract-tests/fakeservice"
	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/restharness"
)

func init() {
	color.NoColor = true
}

func readParams(t *testing.T, args ...string) (commandParams, error) {
	var p commandParams
	var errOut bytes.Buffer
	err := p.Read(append([]string{"rest-contract-tests"}, args...), &errOut)
	return p, err
}

func TestRunPassesAgainstFakeService(t *testing.T) {
	handler, err := fakeservice.New()
	require.NoError(t, err)
	server := httptest.NewServer(handler)
	defer server.Close()

	var out, errOut bytes.Buffer
	status := run([]string{"rest-contract-tests", "-url", server.URL, "-soft"}, &out, &errOut)
	assert.Equal(t, 0, status, out.String())
	assert.Contains(t, out.String(), "Command line: rest-contract-tests -url "+server.URL+" -soft")
	assert.Contains(t, out.String(), "[posts/list is ordered by id]")
	assert.Contains(t, out.String(), "All tests passed")
}

func TestRunFailsAgainstBrokenService(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(503), func(server *httptest.Server) {
		var out, errOut bytes.Buffer
		status := run([]string{"rest-contract-tests", "-url", server.URL, "-run", "users", "-debug"}, &out, &errOut)
		assert.Equal(t, 1, status)
		assert.Contains(t, out.String(), "skip any not matching \"users\"")
		assert.Contains(t, out.String(), "FAILED: users/list contains fixture user")
		assert.Contains(t, out.String(), "DEBUG")
		assert.Contains(t, out.String(), "FAILED TESTS (0 passed, 4 failed, 0 skipped)")
		assert.Contains(t, out.String(), "  * users/filter by id returns fixture user")
	})
}

func TestRunRejectsBadParameters(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 1, run([]string{"rest-contract-tests", "-nope"}, &out, &errOut))
	assert.Contains(t, errOut.String(), "flag provided but not defined: -nope")

	assert.Equal(t, 1, run([]string{"rest-contract-tests", "-log-level", "loud"}, &out, &errOut))
	assert.Contains(t, errOut.String(), `unknown log level "loud"`)

	assert.Equal(t, 1, run([]string{"rest-contract-tests", "-url", "not a url"}, &out, &errOut))
	assert.NotContains(t, out.String(), "Command line")
}

func TestParamsDefaults(t *testing.T) {
	p, err := readParams(t)
	require.NoError(t, err)
	cfg, err := p.Config()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.False(t, p.filters.MustMatch.IsDefined())
}

func TestParamsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
baseUri: http://localhost:3000
timeout: 5s
headers:
  X-Env: staging
`), 0o644))

	p, err := readParams(t, "-config", path, "-timeout", "1s", "-soft", "-header", "X-Trace: abc")
	require.NoError(t, err)
	cfg, err := p.Config()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURI)
	assert.Equal(t, config.Duration(time.Second), cfg.Timeout)
	assert.Equal(t, restharness.SoftAssert, cfg.Mode())
	assert.Equal(t, map[string]string{"X-Env": "staging", "X-Trace": "abc"}, cfg.Headers)
}

func TestParamsRejectInvalidValues(t *testing.T) {
	_, err := readParams(t, "-header", "no-colon")
	assert.Error(t, err)

	_, err = readParams(t, "extra")
	assert.Error(t, err)

	p, err := readParams(t, "-content-type", "xml")
	require.NoError(t, err)
	_, err = p.Config()
	assert.Error(t, err)
}

func TestConsoleTestLogger(t *testing.T) {
	var out bytes.Buffer
	l := &ConsoleTestLogger{Out: &out, DebugOutputOnFailure: true}
	id := framework.TestID{}.Plus("posts").Plus("list is ordered by id")

	l.TestStarted(id)
	l.TestError(id, assert.AnError)
	l.TestFinished(id, true, framework.CapturedOutput{{Message: ">> GET /posts"}})
	l.TestSkipped(id, "excluded by filter parameters")

	assert.Contains(t, out.String(), "[posts/list is ordered by id]\n")
	assert.Contains(t, out.String(), "  "+assert.AnError.Error()+"\n")
	assert.Contains(t, out.String(), "  FAILED: posts/list is ordered by id\n")
	assert.Contains(t, out.String(), "    DEBUG [")
	assert.Contains(t, out.String(), "] >> GET /posts\n")
	assert.Contains(t, out.String(), "  SKIPPED: posts/list is ordered by id (excluded by filter parameters)\n")
}

func TestPrintResults(t *testing.T) {
	var out bytes.Buffer
	PrintResults(&out, framework.Results{
		Tests: []framework.TestResult{{TestID: framework.TestID{Path: []string{"a"}}}},
	})
	assert.Equal(t, "\nAll tests passed (1 passed, 0 skipped)\n", out.String())
}
