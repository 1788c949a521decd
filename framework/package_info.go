// Package framework contains the low-level test infrastructure that is not specific to
// any particular remote API.
//
// There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. A Context can be passed to the assert and require packages:
// assert records a failure and lets the test continue, require stops the test at the
// first failure.
//
// The domain-specific code that knows what is being tested builds on top of this, in the
// restharness and placeholdertests packages.
package framework
