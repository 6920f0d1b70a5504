// Package logging builds the zap loggers used by the CLI and the TUI.
//
// The TUI owns the terminal, so its logs go to a file; headless commands log
// to stderr only when asked to.
package logging

import (
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sadopc/consulteja/internal/config"
)

// File returns a JSON logger appending to cfg.File, or to
// ~/.local/share/consulteja/consulteja.log when unset.
func File(cfg config.LogConfig) (*zap.Logger, error) {
	path := cfg.File
	if path == "" {
		path = filepath.Join(config.DataDir(), "consulteja.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log dir")
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lg, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return lg, nil
}

// Console returns a human-readable stderr logger when verbose is set and a
// no-op logger otherwise.
func Console(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.DisableStacktrace = true
	lg, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return lg
}

// ParseLevel maps a config string to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Wrapf(err, "parse log level %q", s)
	}
	return lvl, nil
}
