// Package zaplog adapts a zap logger to the gradeauth Logger interface.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/gradekeep/go-gradeauth"
)

type Logger struct {
	sugar *zap.SugaredLogger
}

var _ gradeauth.Logger = (*Logger)(nil)

// New wraps a zap.Logger
func New(l *zap.Logger) *Logger {
	return &Logger{sugar: l.Sugar()}
}

func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}
