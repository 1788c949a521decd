package framework

import (
	"errors"
	"fmt"
	"strings"
)

// Results is the accumulated outcome of a test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of a single test.
type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

// OK returns true if no test failed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests that ran and passed, failed, or were skipped.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		if t.Skipped {
			skipped++
		}
	}
	failed = len(r.Failures)
	passed = len(r.Tests) - failed - skipped
	return
}

// TestID identifies a test by the names of its parent tests and its own name.
type TestID struct {
	Path []string
}

// Plus returns the ID of a subtest of this test.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// reformatError strips the leading blank line, the stack trace and the tab alignment that
// testify puts in its failure messages, which are meant for the go test runner's output.
func reformatError(err error) error {
	lines := strings.Split(strings.TrimLeft(err.Error(), "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimPrefix(line, "\t")
		if strings.HasPrefix(line, "Error Trace:") {
			continue
		}
		text := strings.Join(strings.Fields(line), " ")
		if strings.HasPrefix(line, " ") && text != "" {
			text = "  " + text
		}
		out = append(out, text)
	}
	return errors.New(strings.Join(out, "\n"))
}
