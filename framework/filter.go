package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests the way "go test -run" and "go test -skip" do: each pattern is
// split on "/" and every element is matched against the test name at the same depth.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter can be passed to Run as a Filter.
func (r RegexFilters) AsFilter(id TestID) bool {
	if r.MustMatch.IsDefined() && !r.MustMatch.anyMatchPartial(id.Path) {
		return false
	}
	return !r.MustNotMatch.anyMatchFull(id.Path)
}

// RegexList is a set of slash-separated regex patterns. It implements flag.Value, so it can
// be given multiple times on the command line.
type RegexList struct {
	patterns [][]*regexp.Regexp
	sources  []string
}

func (r RegexList) String() string {
	var ss []string
	for _, s := range r.sources {
		ss = append(ss, `"`+s+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	var levels []*regexp.Regexp
	for _, element := range strings.Split(value, "/") {
		rx, err := regexp.Compile(element)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		levels = append(levels, rx)
	}
	r.patterns = append(r.patterns, levels)
	r.sources = append(r.sources, value)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// anyMatchPartial is true if some pattern matches every path element it has a level for.
// A parent test therefore passes as long as its own name fits the pattern's first levels.
func (r RegexList) anyMatchPartial(path []string) bool {
	for _, levels := range r.patterns {
		if matchLevels(levels, path) {
			return true
		}
	}
	return false
}

// anyMatchFull is true if some pattern matches the path and the path is at least as deep as
// the pattern, so that skipping "users/by id" does not skip all of "users".
func (r RegexList) anyMatchFull(path []string) bool {
	for _, levels := range r.patterns {
		if len(path) >= len(levels) && matchLevels(levels, path) {
			return true
		}
	}
	return false
}

func matchLevels(levels []*regexp.Regexp, path []string) bool {
	for i, name := range path {
		if i >= len(levels) {
			break
		}
		if !levels[i].MatchString(name) {
			return false
		}
	}
	return true
}

// PrintFilterDescription explains to the user which tests the filters will leave out.
func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
