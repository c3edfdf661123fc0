// Package logger wraps logrus with JSON formatting and optional file rotation.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Fields type alias for logrus.Fields
type Fields = logrus.Fields

// Log wraps logrus.Logger with additional functionality
type Log struct {
	*logrus.Logger
}

var globalLogger *Log

func init() {
	globalLogger = Logger()
}

// Logger creates a new logger, level taken from the LOG_LEVEL environment variable
func Logger() *Log {
	logger := logrus.New()

	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(levelStr)); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.SetFormatter(jsonFormatter())
	return &Log{Logger: logger}
}

// GetLogger returns the global logger
func GetLogger() *Log {
	return globalLogger
}

// WithComponent returns an entry tagged with a component field
func (l *Log) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

// WithFields returns an entry carrying the given fields
func (l *Log) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(fields)
}

// WithError returns an entry carrying the error
func (l *Log) WithError(err error) *logrus.Entry {
	return l.Logger.WithError(err)
}

func jsonFormatter() *logrus.JSONFormatter {
	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			file := filepath.Base(f.File)
			return "", fmt.Sprintf("%s:%d", file, f.Line)
		},
	}
}

// Configure sets up the logger with the provided configuration
func (l *Log) Configure(level string, format string, output string, maxAge int) error {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		l.SetLevel(lvl)
	} else {
		return fmt.Errorf("invalid log level '%s'", level)
	}

	switch format {
	case "json", "":
		l.SetFormatter(jsonFormatter())
	case "text":
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		return fmt.Errorf("invalid log format '%s'", format)
	}

	switch output {
	case "stdout", "":
		l.SetOutput(os.Stdout)
	case "stderr":
		l.SetOutput(os.Stderr)
	default:
		// Assume it's a file path
		if maxAge > 0 {
			l.SetOutput(&lumberjack.Logger{
				Filename: output,
				MaxAge:   maxAge,
				MaxSize:  100,
				Compress: true,
			})
		} else {
			file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				return fmt.Errorf("failed to open log file '%s': %w", output, err)
			}
			l.SetOutput(file)
		}
	}

	return nil
}
