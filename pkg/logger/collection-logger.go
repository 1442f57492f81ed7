/*
 * Copyright (c) Igor Tiunov.
 * Licensed under the MIT license.
 * SPDX-License-Identifier: MIT
 */

package logger

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// collectionLogger is the implementation for logrus
type collectionLogger struct {
	// name is the name of logger that is published to log as a scope
	name string
	// logger is the logrus logger
	logger *logrus.Logger

	// sharedFieldsLock is the mutex for sharedFields
	sharedFieldsLock sync.Mutex
	// sharedFields is the fields that are shared among loggers
	sharedFields logrus.Fields
}

func newCollectionLogger(name string) *collectionLogger {
	newLogger := logrus.New()
	newLogger.SetOutput(os.Stdout)

	cl := &collectionLogger{
		name:   name,
		logger: newLogger,
		sharedFields: logrus.Fields{
			logFieldScope: name,
			logFieldType:  LogTypeLog,
		},
	}

	cl.EnableJSONOutput(defaultJSONOutput)

	return cl
}

// EnableJSONOutput enables JSON formatted output log
func (l *collectionLogger) EnableJSONOutput(enabled bool) {
	var formatter logrus.Formatter

	fieldMap := logrus.FieldMap{
		// If time field name is conflicted, logrus adds "fields." prefix.
		// So rename to unused field @time to avoid the confliction.
		logrus.FieldKeyTime:  logFieldTimeStamp,
		logrus.FieldKeyLevel: logFieldLevel,
		logrus.FieldKeyMsg:   logFieldMessage,
	}

	hostname, _ := os.Hostname()
	l.sharedFieldsLock.Lock()
	l.sharedFields = logrus.Fields{
		logFieldScope:    l.sharedFields[logFieldScope],
		logFieldType:     LogTypeLog,
		logFieldInstance: hostname,
	}
	l.sharedFieldsLock.Unlock()

	if enabled {
		formatter = &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap:        fieldMap,
		}
	} else {
		formatter = &logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap:        fieldMap,
		}
	}

	l.logger.SetFormatter(formatter)
}

// SetAppID sets app_id field in the log. Default value is empty string
func (l *collectionLogger) SetAppID(id string) {
	l.sharedFieldsLock.Lock()
	defer l.sharedFieldsLock.Unlock()
	l.sharedFields[logFieldAppID] = id
}

func toLogrusLevel(lvl LogLevel) logrus.Level {
	// ignore error because it will never happen
	l, _ := logrus.ParseLevel(string(lvl))
	return l
}

// SetOutputLevel sets log output level
func (l *collectionLogger) SetOutputLevel(outputLevel LogLevel) {
	l.logger.SetLevel(toLogrusLevel(outputLevel))
}

// WithLogType specify the log_type field in log. Default value is LogTypeLog
func (l *collectionLogger) WithLogType(logType string) Logger {
	l.sharedFieldsLock.Lock()
	defer l.sharedFieldsLock.Unlock()
	l.sharedFields[logFieldType] = logType
	return l
}

func (l *collectionLogger) getSharedFields() logrus.Fields {
	l.sharedFieldsLock.Lock()
	defer l.sharedFieldsLock.Unlock()
	return l.sharedFields
}

// InfoCtx logs a message at level Info.
func (l *collectionLogger) InfoCtx(ctx context.Context, args ...interface{}) {
	l.logger.WithContext(ctx).WithFields(l.getSharedFields()).Log(logrus.InfoLevel, args...)
}

// InfofCtx logs a message at level Info.
func (l *collectionLogger) InfofCtx(ctx context.Context, format string, args ...interface{}) {
	l.logger.WithContext(ctx).WithFields(l.getSharedFields()).Logf(logrus.InfoLevel, format, args...)
}

// DebugCtx logs a message at level Debug.
func (l *collectionLogger) DebugCtx(ctx context.Context, args ...interface{}) {
	l.logger.WithContext(ctx).WithFields(l.getSharedFields()).Log(logrus.DebugLevel, args...)
}

// DebugfCtx logs a message at level Debug.
func (l *collectionLogger) DebugfCtx(ctx context.Context, format string, args ...interface{}) {
	l.logger.WithContext(ctx).WithFields(l.getSharedFields()).Logf(logrus.DebugLevel, format, args...)
}

// WarnCtx logs a message at level Warn.
func (l *collectionLogger) WarnCtx(ctx context.Context, args ...interface{}) {
	l.logger.WithContext(ctx).WithFields(l.getSharedFields()).Log(logrus.WarnLevel, args...)
}

// WarnfCtx logs a message at level Warn.
func (l *collectionLogger) WarnfCtx(ctx context.Context, format string, args ...interface{}) {
	l.logger.WithContext(ctx).WithFields(l.getSharedFields()).Logf(logrus.WarnLevel, format, args...)
}

// ErrorCtx logs a message at level Error.
func (l *collectionLogger) ErrorCtx(ctx context.Context, args ...interface{}) {
	l.logger.WithContext(ctx).WithFields(l.getSharedFields()).Log(logrus.ErrorLevel, args...)
}

// ErrorfCtx logs a message at level Error.
func (l *collectionLogger) ErrorfCtx(ctx context.Context, format string, args ...interface{}) {
	l.logger.WithContext(ctx).WithFields(l.getSharedFields()).Logf(logrus.ErrorLevel, format, args...)
}

// Info logs a message at level Info.
func (l *collectionLogger) Info(args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Log(logrus.InfoLevel, args...)
}

// Infof logs a message at level Info.
func (l *collectionLogger) Infof(format string, args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Logf(logrus.InfoLevel, format, args...)
}

// Debug logs a message at level Debug.
func (l *collectionLogger) Debug(args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Log(logrus.DebugLevel, args...)
}

// Debugf logs a message at level Debug.
func (l *collectionLogger) Debugf(format string, args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Logf(logrus.DebugLevel, format, args...)
}

// Warn logs a message at level Warn.
func (l *collectionLogger) Warn(args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Log(logrus.WarnLevel, args...)
}

// Warnf logs a message at level Warn.
func (l *collectionLogger) Warnf(format string, args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Logf(logrus.WarnLevel, format, args...)
}

// Error logs a message at level Error.
func (l *collectionLogger) Error(args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Log(logrus.ErrorLevel, args...)
}

// Errorf logs a message at level Error.
func (l *collectionLogger) Errorf(format string, args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Logf(logrus.ErrorLevel, format, args...)
}

// Fatal logs a message at level Fatal then the process will exit with status set to 1.
func (l *collectionLogger) Fatal(args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Fatal(args...)
}

// Fatalf logs a message at level Fatal then the process will exit with status set to 1.
func (l *collectionLogger) Fatalf(format string, args ...interface{}) {
	l.logger.WithFields(l.getSharedFields()).Fatalf(format, args...)
}
