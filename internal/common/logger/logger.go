package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ardanovsky/todo-service/internal/common/constants"
)

type Fields map[string]interface{}

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	CRITICAL
)

var levelNames = map[LogLevel]string{
	DEBUG:    "DEBUG",
	INFO:     "INFO",
	WARNING:  "WARNING",
	ERROR:    "ERROR",
	CRITICAL: "CRITICAL",
}

type Logger struct {
	level       LogLevel
	out         *log.Logger
	serviceName string
	mu          sync.RWMutex
}

// New builds a logger writing to stdout and a rotated file under logDir.
// An empty logDir keeps stdout-only output, which is what tests use.
func New(logDir, serviceName, level string) (*Logger, error) {
	l := &Logger{
		level:       parseLevel(level),
		out:         log.New(os.Stdout, "", log.LstdFlags),
		serviceName: serviceName,
	}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "app.log"),
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		l.out = log.New(io.MultiWriter(os.Stdout, fileWriter), "", log.LstdFlags)
	}

	return l, nil
}

func parseLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	case "CRITICAL":
		return CRITICAL
	default:
		return INFO
	}
}

func (l *Logger) ShouldLog(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *Logger) logWithFields(level LogLevel, ctx context.Context, fields Fields, msg string) {
	l.mu.RLock()
	currentLevel := l.level
	service := l.serviceName
	l.mu.RUnlock()

	if level < currentLevel {
		return
	}

	prefix := fmt.Sprintf("[%s]", levelNames[level])
	if service != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, service)
	}

	var fieldParts []string

	if ctx != nil {
		if traceID, ok := ctx.Value(constants.TraceIDKey).(string); ok && traceID != "" {
			fieldParts = append(fieldParts, fmt.Sprintf("trace_id=%s", traceID))
		}
	}

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, fields[k]))
		}
	}

	if len(fieldParts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(fieldParts, " "))
	}

	l.out.Printf("%s %s", prefix, msg)
}

type Entry struct {
	logger *Logger
	ctx    context.Context
	fields Fields
}

func (l *Logger) WithFields(ctx context.Context, fields Fields) *Entry {
	return &Entry{logger: l, ctx: ctx, fields: fields}
}

func (e *Entry) Debug(msg string) { e.logger.logWithFields(DEBUG, e.ctx, e.fields, msg) }
func (e *Entry) Info(msg string)  { e.logger.logWithFields(INFO, e.ctx, e.fields, msg) }
func (e *Entry) Warn(msg string)  { e.logger.logWithFields(WARNING, e.ctx, e.fields, msg) }
func (e *Entry) Error(msg string) { e.logger.logWithFields(ERROR, e.ctx, e.fields, msg) }

func (e *Entry) Debugf(format string, args ...interface{}) {
	e.logger.logWithFields(DEBUG, e.ctx, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Infof(format string, args ...interface{}) {
	e.logger.logWithFields(INFO, e.ctx, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Warnf(format string, args ...interface{}) {
	e.logger.logWithFields(WARNING, e.ctx, e.fields, fmt.Sprintf(format, args...))
}

func (e *Entry) Errorf(format string, args ...interface{}) {
	e.logger.logWithFields(ERROR, e.ctx, e.fields, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logWithFields(DEBUG, nil, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logWithFields(INFO, nil, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logWithFields(WARNING, nil, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logWithFields(ERROR, nil, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.logWithFields(CRITICAL, nil, nil, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(msg string) { l.logWithFields(WARNING, nil, nil, msg) }
func (l *Logger) Info(msg string) { l.logWithFields(INFO, nil, nil, msg) }

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logWithFields(CRITICAL, nil, nil, fmt.Sprintf(format, args...))
	os.Exit(1)
}
