// Package logging builds the application's zap logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the logger's level and destinations.
type Options struct {
	Debug bool

	// Console receives human-readable output. Defaults to stderr.
	Console io.Writer

	// File, when set, additionally receives JSON lines through a rotating
	// writer. Sizes are in megabytes, ages in days.
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// New creates a logger. Debug mode logs everything to the console; otherwise
// only warnings and errors are shown. The file core, if any, always records
// at info level or above (debug level in debug mode).
func New(opts Options) (*zap.Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := zapcore.WarnLevel
	fileLevel := zapcore.InfoLevel
	if opts.Debug {
		consoleLevel = zapcore.DebugLevel
		fileLevel = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	if opts.Debug {
		encCfg.TimeKey = "T"
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(console), consoleLevel),
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		writer := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   opts.Compress,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(writer),
			fileLevel,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if opts.Debug {
		logger = logger.WithOptions(zap.AddCaller())
	}
	return logger.Named("showflix"), nil
}
