package api

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Field is one ordered key/value pair on an event line. A slice of Fields
// keeps emission order stable, unlike a map.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for Field{Key: key, Value: value}.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// StepLogger is the helper handed to Log* actions and decisions. It emits
// event lines bound to the step it was created for.
type StepLogger interface {
	Event(name string, fields ...Field)
}

// NoopStepLogger discards all events. It is passed to Log* steps when the run
// has no logger configured, so step code never needs a nil check.
type NoopStepLogger struct{}

func (NoopStepLogger) Event(string, ...Field) {}

// Logger writes fixed-layout step log lines to a sink. Any io.Writer serves
// as the sink: a file, a bytes.Buffer, os.Stdout. Lines come in two layouts:
//
//	timestamp=<RFC3339 UTC> step=<name> payload=<repr> result=<repr> error=<repr-or-"None">
//	timestamp=<RFC3339 UTC> step=<name> event=<name> <key=repr ...>
//
// The clock is injected so tests can pin timestamps; see WithClock.
// Logger serializes writes and is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// LoggerOption customizes a Logger.
type LoggerOption func(*Logger)

// WithClock replaces the Logger's time source. Defaults to time.Now.
func WithClock(now func() time.Time) LoggerOption {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLogger creates a Logger over the given sink.
func NewLogger(w io.Writer, opts ...LoggerOption) *Logger {
	l := &Logger{w: w, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log writes the result line for one step execution.
func (l *Logger) Log(step string, payload any, res Result) {
	errRepr := "None"
	if res.Err != nil {
		errRepr = repr(res.Err)
	}
	l.write(fmt.Sprintf("timestamp=%s step=%s payload=%s result=%s error=%s\n",
		l.timestamp(), step, repr(payload), repr(res.Value), errRepr))
}

// Event writes an ad-hoc event line for the given step.
func (l *Logger) Event(step, name string, fields ...Field) {
	var b strings.Builder
	fmt.Fprintf(&b, "timestamp=%s step=%s event=%s", l.timestamp(), step, name)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%s", f.Key, repr(f.Value))
	}
	b.WriteByte('\n')
	l.write(b.String())
}

// ForStep returns a StepLogger bound to the given step name.
func (l *Logger) ForStep(step string) StepLogger {
	return stepLogger{l: l, step: step}
}

func (l *Logger) timestamp() string {
	return l.now().UTC().Format(time.RFC3339Nano)
}

func (l *Logger) write(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, line)
}

type stepLogger struct {
	l    *Logger
	step string
}

func (s stepLogger) Event(name string, fields ...Field) {
	s.l.Event(s.step, name, fields...)
}

// repr renders a value for a log line. Strings and errors are quoted so that
// embedded spaces cannot break the key=value layout; nil renders as "nil".
func repr(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(t)
	case error:
		return strconv.Quote(t.Error())
	default:
		return fmt.Sprintf("%v", v)
	}
}
