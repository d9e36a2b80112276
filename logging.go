package rxcore

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	WithField(string, interface{}) Logger
	With(map[string]interface{}) Logger

	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})

	Debug(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Error(...interface{})
}

func NewLogger() Logger {
	return &logrusLoggerWrapper{
		logrus.StandardLogger(),
	}
}

// LoggerFrom wraps an existing logrus logger, e.g. one writing to a test buffer.
func LoggerFrom(l *logrus.Logger) Logger {
	if l == nil {
		return NewLogger()
	}
	return &logrusLoggerWrapper{l}
}

type logrusLoggerWrapper struct {
	*logrus.Logger
}

func (l *logrusLoggerWrapper) WithField(field string, value interface{}) Logger {
	return &logrusEntryWrapper{l.Logger.WithField(field, value)}
}

func (l *logrusLoggerWrapper) With(fields map[string]interface{}) Logger {
	return &logrusEntryWrapper{l.Logger.WithFields(fields)}
}

type logrusEntryWrapper struct {
	*logrus.Entry
}

func (e *logrusEntryWrapper) WithField(field string, value interface{}) Logger {
	return &logrusEntryWrapper{e.Entry.WithField(field, value)}
}

func (e *logrusEntryWrapper) With(fields map[string]interface{}) Logger {
	return &logrusEntryWrapper{e.Entry.WithFields(fields)}
}

var (
	loggerMu sync.RWMutex
	logger   Logger = NewLogger()
	tracing  bool
)

// DefaultLogger is used for reports that have no other destination, such as
// errors reaching an observer without an error callback.
func DefaultLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = NewLogger()
	}
	logger = l
}

// Tracing reports whether subscribe/unsubscribe tracing is enabled.
func Tracing() bool {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return tracing
}

func SetTracing(enabled bool) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	tracing = enabled
}

// ConfigureLogging applies rxcore.log.* and rxcore.trace from conf to the
// standard logrus logger.
func ConfigureLogging(conf Config) {
	switch conf.GetStringDefault("rxcore.log.level", "INFO") {
	case "TRACE", "DEBUG":
		logrus.SetLevel(logrus.DebugLevel)
	case "WARN":
		logrus.SetLevel(logrus.WarnLevel)
	case "ERROR":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}

	switch conf.GetStringDefault("rxcore.log.formatter", "text") {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FullTimestamp:   true,
		})
	}

	SetTracing(conf.GetBoolDefault("rxcore.trace", false))
}

func init() {
	ConfigureLogging(Settings())
}
