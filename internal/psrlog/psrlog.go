// Public domain.

// Package psrlog holds the program logger.
//
// Library packages of psrcat do not log.  They return errors and
// diagnostics and the command decides what to report.
package psrlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger.  It discards everything until Initialize
// is called.
var Logger = zap.NewNop().Sugar()

// Initialize replaces Logger.  With json true, output is zap's production
// JSON on stderr.  Otherwise a compact console encoding goes to stderr.
// Verbose lowers the level from info to debug.
func Initialize(json, verbose bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	if json {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		l, err := config.Build()
		if err != nil {
			return err
		}
		Logger = l.Sugar()
		return nil
	}
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = ""
	ec.CallerKey = ""
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	Logger = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(ec),
		zapcore.Lock(os.Stderr),
		level,
	)).Sugar()
	return nil
}

// Use replaces Logger with l, returning a function that restores the
// previous logger.  Tests use it with zaptest/observer.
func Use(l *zap.Logger) (restore func()) {
	prev := Logger
	Logger = l.Sugar()
	return func() { Logger = prev }
}

// Sync flushes Logger.  Errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
