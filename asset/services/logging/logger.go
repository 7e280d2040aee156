/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	rootLoggerName      = "asset-sdk"
	loggerNameSeparator = "."
)

// Logger provides logging API
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	IsEnabledFor(level zapcore.Level) bool
	Named(name string) Logger
}

var (
	mu    sync.Mutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	root  *zap.Logger
)

func base() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		cfg := zap.NewProductionConfig()
		cfg.Level = level
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		l, err := cfg.Build()
		if err != nil {
			panic(errors.Wrap(err, "failed to build root logger"))
		}
		root = l.Named(rootLoggerName)
	}
	return root
}

// MustGetLogger returns a logger named after the passed parts
func MustGetLogger(parts ...string) Logger {
	l := base()
	if name := loggerName(parts...); len(name) != 0 {
		l = l.Named(name)
	}
	return &zapLogger{SugaredLogger: l.Sugar(), core: l}
}

// SetLevel changes the level of every logger
func SetLevel(name string) error {
	if len(name) == 0 {
		return nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return errors.Wrapf(err, "invalid logging level [%s]", name)
	}
	level.SetLevel(lvl)
	return nil
}

// Replace swaps the root logger, tests use it with zaptest/observer
func Replace(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	root = l.Named(rootLoggerName)
}

type zapLogger struct {
	*zap.SugaredLogger
	core *zap.Logger
}

func (l *zapLogger) IsEnabledFor(lvl zapcore.Level) bool {
	return l.core.Core().Enabled(lvl)
}

func (l *zapLogger) Named(name string) Logger {
	n := l.core.Named(name)
	return &zapLogger{SugaredLogger: n.Sugar(), core: n}
}

func isEmptyString(s string) bool { return len(s) == 0 }

func loggerName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if !isEmptyString(p) {
			out = append(out, p)
		}
	}
	return strings.Join(out, loggerNameSeparator)
}
