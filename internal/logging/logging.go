// Package logging builds the zap logger used by the dfmt command.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"gopkg.in/dfmt.v0/internal/config"
)

// New builds a logger from cfg. Verbose forces the debug level. Logs go to
// stderr so they never mix with rendered output. The auto format writes
// console lines to a terminal and JSON otherwise.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if Encoding(cfg.Format, term.IsTerminal(int(os.Stderr.Fd()))) == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = !verbose

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Encoding resolves a configured log format to a zap encoding.
func Encoding(format string, tty bool) string {
	switch {
	case format == "console", format == "auto" && tty:
		return "console"
	}
	return "json"
}
