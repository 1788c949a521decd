package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/launchdarkly/rest-contract-tests/config"
	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/logging"
)

type commandParams struct {
	configPath  string
	baseURI     string
	contentType string
	timeout     time.Duration
	soft        bool
	headers     headerList
	filters     framework.RegexFilters
	debug       bool
	debugAll    bool
	logLevel    string
	set         map[string]bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.configPath, "config", "", "YAML file describing the service under test")
	fs.StringVar(&c.baseURI, "url", config.DefaultBaseURI, "base URI of the service under test")
	fs.StringVar(&c.contentType, "content-type", "json", "content type of request bodies (json, text, form, none)")
	fs.DurationVar(&c.timeout, "timeout", 0, "per-request timeout (default 30s)")
	fs.BoolVar(&c.soft, "soft", false, "keep checking after a failed assertion, and report every failure")
	fs.Var(&c.headers, "header", `header to send with every request, as "Name: value" (can be repeated)`)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.logLevel, "log-level", "info", fmt.Sprintf("process log level (%s)", strings.Join(logging.Levels, ", ")))

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		err := fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(errOut, err)
		fs.Usage()
		return err
	}
	c.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })
	return nil
}

// Config loads the configuration file, if any, and applies the parameters that were given
// explicitly on top of it.
func (c *commandParams) Config() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.set["url"] {
		cfg.BaseURI = c.baseURI
	}
	if c.set["content-type"] {
		cfg.ContentType = c.contentType
	}
	if c.set["timeout"] {
		cfg.Timeout = config.Duration(c.timeout)
	}
	if c.set["soft"] {
		cfg.SoftAssert = c.soft
	}
	if len(c.headers) != 0 {
		if cfg.Headers == nil {
			cfg.Headers = map[string]string{}
		}
		for _, h := range c.headers {
			cfg.Headers[h.name] = h.value
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type header struct {
	name, value string
}

type headerList []header

func (h headerList) String() string {
	var ss []string
	for _, x := range h {
		ss = append(ss, x.name+": "+x.value)
	}
	return strings.Join(ss, ", ")
}

func (h *headerList) Set(value string) error {
	name, v, ok := strings.Cut(value, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf(`header must be in the form "Name: value", got %q`, value)
	}
	*h = append(*h, header{name: name, value: strings.TrimSpace(v)})
	return nil
}
