// Package placeholdertests contains the contract tests for the placeholder JSON API.
//
// The tests are data: each Scenario names a request and the checks to make against its
// response. RunTestSuite runs every Scenario as a subtest of its group, using the framework
// package for test state, results and filtering.
package placeholdertests
