/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package logger

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const (
	// LogTypeLog is normal log type
	LogTypeLog = "log"
	// LogTypeRequest is Request log type
	LogTypeRequest = "request"

	// Field names that define the log schema
	logFieldTimeStamp = "time"
	logFieldLevel     = "level"
	logFieldType      = "type"
	logFieldScope     = "scope"
	logFieldMessage   = "msg"
	logFieldInstance  = "instance"
	logFieldAppID     = "app_id"
)

// LogLevel is the logger level type
type LogLevel string

const (
	// DebugLevel has verbose message
	DebugLevel LogLevel = "debug"
	// InfoLevel is default log level
	InfoLevel LogLevel = "info"
	// WarnLevel is for logging messages about possible issues
	WarnLevel LogLevel = "warn"
	// ErrorLevel is for logging errors
	ErrorLevel LogLevel = "error"
	// FatalLevel is for logging fatal messages. The system shuts down after logging the message.
	FatalLevel LogLevel = "fatal"

	// UndefinedLevel is for undefined log level
	UndefinedLevel LogLevel = "undefined"
)

// globalLoggers is the collection of loggers that is shared globally.
var globalLoggers = map[string]Logger{}
var globalLoggersLock = sync.RWMutex{}

// Logger includes the logging api sets
type Logger interface {
	// EnableJSONOutput enables JSON formatted output log
	EnableJSONOutput(enabled bool)

	// SetAppID sets app_id field in the log. Default value is empty string
	SetAppID(id string)
	// SetOutputLevel sets log output level
	SetOutputLevel(outputLevel LogLevel)
	// WithLogType specify the log_type field in log. Default value is LogTypeLog
	WithLogType(logType string) Logger

	// InfoCtx logs a message at level Info.
	InfoCtx(ctx context.Context, args ...interface{})
	// InfofCtx logs a message at level Info.
	InfofCtx(ctx context.Context, format string, args ...interface{})
	// DebugCtx logs a message at level Debug.
	DebugCtx(ctx context.Context, args ...interface{})
	// DebugfCtx logs a message at level Debug.
	DebugfCtx(ctx context.Context, format string, args ...interface{})
	// WarnCtx logs a message at level Warn.
	WarnCtx(ctx context.Context, args ...interface{})
	// WarnfCtx logs a message at level Warn.
	WarnfCtx(ctx context.Context, format string, args ...interface{})
	// ErrorCtx logs a message at level Error.
	ErrorCtx(ctx context.Context, args ...interface{})
	// ErrorfCtx logs a message at level Error.
	ErrorfCtx(ctx context.Context, format string, args ...interface{})

	// Info logs a message at level Info.
	Info(args ...interface{})
	// Infof logs a message at level Info.
	Infof(format string, args ...interface{})
	// Debug logs a message at level Debug.
	Debug(args ...interface{})
	// Debugf logs a message at level Debug.
	Debugf(format string, args ...interface{})
	// Warn logs a message at level Warn.
	Warn(args ...interface{})
	// Warnf logs a message at level Warn.
	Warnf(format string, args ...interface{})
	// Error logs a message at level Error.
	Error(args ...interface{})
	// Errorf logs a message at level Error.
	Errorf(format string, args ...interface{})
	// Fatal logs a message at level Fatal then the process will exit with status set to 1.
	Fatal(args ...interface{})
	// Fatalf logs a message at level Fatal then the process will exit with status set to 1.
	Fatalf(format string, args ...interface{})
}

// toLogLevel converts to LogLevel
func toLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	}

	// unsupported log level
	return UndefinedLevel
}

// NewLogger creates new Logger instance.
func NewLogger(name string) Logger {
	globalLoggersLock.Lock()
	defer globalLoggersLock.Unlock()

	logger, ok := globalLoggers[name]
	if !ok {
		logger = newCollectionLogger(name)
		globalLoggers[name] = logger
	}

	return logger
}

// ApplyOptionsToLoggers applys options to all registered loggers
func ApplyOptionsToLoggers(options *Options) error {
	internalLoggers := func() map[string]Logger {
		globalLoggersLock.RLock()
		defer globalLoggersLock.RUnlock()
		l := map[string]Logger{}
		for k, v := range globalLoggers {
			l[k] = v
		}
		return l
	}()

	// Apply formatting options first
	for _, v := range internalLoggers {
		v.EnableJSONOutput(options.JSONFormatEnabled)

		if options.appID != undefinedAppID {
			v.SetAppID(options.appID)
		}
	}

	logLevel := toLogLevel(options.OutputLevel)
	if logLevel == UndefinedLevel {
		return errors.Errorf("undefined Log Output Level: %s", options.OutputLevel)
	}

	for _, v := range internalLoggers {
		v.SetOutputLevel(logLevel)
	}
	return nil
}
