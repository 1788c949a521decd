package restharness

import (
	"net/http"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand returns a shell command line that repeats the request with curl, for pasting
// into a terminal when a test fails.
func CurlCommand(desc RequestDescriptor) string {
	var b commandBuilder
	b.add("curl", "-i")
	if desc.Method != http.MethodGet || desc.Body != nil {
		b.add("-X", desc.Method)
	}
	names := make([]string, 0, len(desc.Headers))
	for k := range desc.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		b.add("-H", k+": "+desc.Headers[k])
	}
	if desc.Body != nil {
		b.add("--data-raw", *desc.Body)
	}
	if u, err := desc.URL(); err == nil {
		b.add(u.String())
	} else {
		b.add(desc.BaseURI + desc.Path)
	}
	return b.String()
}
