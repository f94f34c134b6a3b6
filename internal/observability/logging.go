// Package observability wires process-wide logging for the CLI.
//
// Library packages never log through globals; they accept a *zap.Logger and
// default to a no-op. Only command handlers use CLILogger.
package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is the console-encoded logger used by command handlers.
var CLILogger = NewCLILogger(false)

// Init reconfigures the CLI logger, typically after flags are parsed.
func Init(verbose bool) {
	CLILogger = NewCLILogger(verbose)
}

// NewCLILogger builds a console logger writing to stderr. Verbose enables
// debug level; otherwise info and above.
func NewCLILogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
