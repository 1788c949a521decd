package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/logging"
	"github.com/launchdarkly/rest-contract-tests/placeholdertests"
	"github.com/launchdarkly/rest-contract-tests/restharness"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	var params commandParams
	if err := params.Read(args, errOut); err != nil {
		return 1
	}

	logger, err := logging.New(params.logLevel)
	if err != nil {
		fmt.Fprintf(errOut, "Invalid parameters: %s\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := params.Config()
	if err != nil {
		logger.Errorf("Invalid configuration: %s", err)
		return 1
	}

	fmt.Fprintf(out, "Command line: %s\n", quoteCommand(args))
	logger.Infow("Running test suite",
		"baseUri", cfg.BaseURI,
		"mode", cfg.Mode(),
		"timeout", time.Duration(cfg.Timeout),
	)
	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	env := placeholdertests.Environment{
		Spec:     cfg.RequestSpec(),
		Executor: restharness.NewExecutor(restharness.WithTimeout(time.Duration(cfg.Timeout))),
		Mode:     cfg.Mode(),
		Logger:   logging.AsPrintf(logger),
	}
	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := placeholdertests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	PrintResults(out, results)
	if !results.OK() {
		return 1
	}
	return 0
}

func quoteCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellescape.Quote(a)
	}
	return strings.Join(quoted, " ")
}
