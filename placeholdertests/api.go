package placeholdertests

import (
	"context"

	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/restharness"
)

// Environment is the configuration shared by every test in a run.
type Environment struct {
	// Spec supplies the base URI, content type and headers of every request.
	Spec restharness.RequestSpec
	// Executor sends the requests. If nil, an Executor with default settings is used.
	Executor *restharness.Executor
	// Mode decides whether a test stops at its first failed check.
	Mode restharness.Mode
	// Logger, if set, receives the request log of every test as well as the test's own
	// debug output.
	Logger framework.Logger
}

// T represents a test or subtest in the contract test suite.
//
// It implements the same basic functionality as Go's testing.T, so it can be passed to the
// assert and require packages, but it runs outside of the Go test runner. It also knows how
// to send requests to the service under test, logging each one to the test's debug output.
type T struct {
	context *framework.Context
	env     *Environment
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Failed returns true if any failure has been recorded for this test.
func (t *T) Failed() bool {
	return t.context.Failed()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Defer schedules a function to run when the test exits, after any failure has been
// recorded.
func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

// Send builds a request from the environment's RequestSpec and the overrides, and executes
// it. A request that cannot be built or completed fails the test immediately, whatever the
// assertion mode.
func (t *T) Send(overrides ...restharness.Override) (restharness.ResponseRecord, restharness.RequestDescriptor) {
	desc, err := restharness.Build(t.env.Spec, overrides...)
	require.NoError(t, err, "invalid request")

	logger := framework.TeeLogger(t.context.DebugLogger(), t.env.Logger)
	resp, err := t.env.Executor.WithLogger(logger).Execute(context.Background(), desc)
	require.NoError(t, err, "request %s could not be completed", desc)
	return resp, desc
}

// Expect starts checks on a response, in the environment's assertion mode.
func (t *T) Expect(resp restharness.ResponseRecord, desc restharness.RequestDescriptor) *restharness.Expectation {
	return restharness.Expect(t, resp, restharness.Described(desc), restharness.WithMode(t.env.Mode))
}
