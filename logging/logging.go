// Package logging sets up the process-level logger. Per-test output does not go through
// here; it is captured by the framework package and shown by the console test logger.
package logging

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/launchdarkly/rest-contract-tests/framework"
)

// Levels lists the accepted values of the -log-level parameter.
var Levels = []string{
	zap.DebugLevel.String(),
	zap.InfoLevel.String(),
	zap.WarnLevel.String(),
	zap.ErrorLevel.String(),
}

func validLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// New builds a console logger writing to stderr at the given level.
func New(level string) (*zap.SugaredLogger, error) {
	if level == "" {
		level = zap.InfoLevel.String()
	}
	if !validLevel(level) {
		return nil, fmt.Errorf("unknown log level %q (must be one of %v)", level, Levels)
	}
	rawJSON := []byte(fmt.Sprintf(`{
	  "level": "%s",
	  "encoding": "console",
	  "outputPaths": ["stderr"],
	  "errorOutputPaths": ["stderr"],
	  "encoderConfig": {
	    "messageKey": "message",
	    "levelKey": "level",
	    "timeKey": "time",
	    "levelEncoder": "lowercase",
	    "timeEncoder": "iso8601"
	  }
	}`, level))

	var cfg zap.Config
	if err := json.Unmarshal(rawJSON, &cfg); err != nil {
		return nil, err
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}

// AsPrintf adapts a zap logger to framework.Logger. Messages are logged at debug level, so
// they only appear with -log-level debug.
func AsPrintf(l *zap.SugaredLogger) framework.Logger {
	if l == nil || !l.Desugar().Core().Enabled(zapcore.DebugLevel) {
		return framework.NullLogger()
	}
	return framework.LoggerFunc(l.Debugf)
}
