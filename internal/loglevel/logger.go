package loglevel

import "github.com/oklahomer/go-kasumi/logger"

// filteringLogger forwards calls to the wrapped logger only when their level is enabled.
type filteringLogger struct {
	next logger.Logger
}

var _ logger.Logger = (*filteringLogger)(nil)

// NewLogger wraps the given logger so that it honors the current threshold.
// Install the result with logger.SetLogger.
func NewLogger(next logger.Logger) logger.Logger {
	return &filteringLogger{next: next}
}

func (l *filteringLogger) Debug(args ...interface{}) {
	if Debug.IsEnabled() {
		l.next.Debug(args...)
	}
}

func (l *filteringLogger) Debugf(format string, args ...interface{}) {
	if Debug.IsEnabled() {
		l.next.Debugf(format, args...)
	}
}

func (l *filteringLogger) Info(args ...interface{}) {
	if Info.IsEnabled() {
		l.next.Info(args...)
	}
}

func (l *filteringLogger) Infof(format string, args ...interface{}) {
	if Info.IsEnabled() {
		l.next.Infof(format, args...)
	}
}

func (l *filteringLogger) Warn(args ...interface{}) {
	if Warning.IsEnabled() {
		l.next.Warn(args...)
	}
}

func (l *filteringLogger) Warnf(format string, args ...interface{}) {
	if Warning.IsEnabled() {
		l.next.Warnf(format, args...)
	}
}

func (l *filteringLogger) Error(args ...interface{}) {
	if Error.IsEnabled() {
		l.next.Error(args...)
	}
}

func (l *filteringLogger) Errorf(format string, args ...interface{}) {
	if Error.IsEnabled() {
		l.next.Errorf(format, args...)
	}
}
