package logger

import (
	"sync"

	"github.com/rs/zerolog"
)

// TestLogger is a Logger implementation for tests that captures messages
// instead of writing them anywhere.
type TestLogger struct {
	mu       sync.Mutex
	messages []LogMessage
	fields   map[string]interface{}
	zerolog  *zerolog.Logger
}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// NewTestLogger creates a new test logger.
func NewTestLogger() *TestLogger {
	nopLogger := zerolog.Nop()
	return &TestLogger{
		messages: make([]LogMessage, 0),
		fields:   make(map[string]interface{}),
		zerolog:  &nopLogger,
	}
}

func (l *TestLogger) log(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	l.messages = append(l.messages, LogMessage{Level: level, Message: msg, Fields: merged})
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg, nil) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg, nil) }
func (l *TestLogger) Fatal(msg string) { l.log("FATAL", msg, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}

// WithField returns a logger that records the field on every message. The
// test logger shares its captured message slice across derived loggers.
func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &derivedTestLogger{parent: l, fields: merged}
}

func (l *TestLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

// GetZerolog returns a no-op zerolog instance.
func (l *TestLogger) GetZerolog() *zerolog.Logger {
	return l.zerolog
}

// Messages returns a copy of all captured messages.
func (l *TestLogger) Messages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// MessagesByLevel returns captured messages with the given level.
func (l *TestLogger) MessagesByLevel(level string) []LogMessage {
	var out []LogMessage
	for _, m := range l.Messages() {
		if m.Level == level {
			out = append(out, m)
		}
	}
	return out
}

// derivedTestLogger carries bound fields while recording into its parent.
type derivedTestLogger struct {
	parent *TestLogger
	fields map[string]interface{}
}

func (d *derivedTestLogger) log(level, msg string, fields map[string]interface{}) {
	merged := make(map[string]interface{}, len(d.fields)+len(fields))
	for k, v := range d.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	d.parent.log(level, msg, merged)
}

func (d *derivedTestLogger) Debug(msg string) { d.log("DEBUG", msg, nil) }
func (d *derivedTestLogger) Info(msg string)  { d.log("INFO", msg, nil) }
func (d *derivedTestLogger) Warn(msg string)  { d.log("WARN", msg, nil) }
func (d *derivedTestLogger) Error(msg string) { d.log("ERROR", msg, nil) }
func (d *derivedTestLogger) Fatal(msg string) { d.log("FATAL", msg, nil) }

func (d *derivedTestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	d.log("DEBUG", msg, fields)
}

func (d *derivedTestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	d.log("INFO", msg, fields)
}

func (d *derivedTestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	d.log("WARN", msg, fields)
}

func (d *derivedTestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	d.log("ERROR", msg, fields)
}

func (d *derivedTestLogger) WithField(key string, value interface{}) Logger {
	return d.WithFields(map[string]interface{}{key: value})
}

func (d *derivedTestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(d.fields)+len(fields))
	for k, v := range d.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &derivedTestLogger{parent: d.parent, fields: merged}
}

func (d *derivedTestLogger) WithError(err error) Logger {
	if err == nil {
		return d
	}
	return d.WithField("error", err.Error())
}

func (d *derivedTestLogger) GetZerolog() *zerolog.Logger {
	return d.parent.zerolog
}
