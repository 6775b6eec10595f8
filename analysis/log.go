package analysis

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/itchyny/timefmt-go"
)

// LogLevel is the severity of a log line. Higher levels are more verbose.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{"ERROR", "WARN", "INFO", "DEBUG"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a level name to a LogLevel. Unknown names yield LevelWarn.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LevelWarn
	}
	for i, name := range levelNames {
		if s == name {
			return LogLevel(i)
		}
	}
	return LevelWarn
}

// Logger receives the analyzer's diagnostics.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)

	// With returns a child logger that appends key=value to every line.
	With(key string, value any) Logger
}

// textLogger writes lines of the form
//
//	[LEVEL] ts msg key=value ...
//
// Children made by With share the parent's writer and lock.
type textLogger struct {
	out        io.Writer
	mu         *sync.Mutex
	level      LogLevel
	timeFormat string
	fields     string
	now        func() time.Time
}

// NewLogger creates a text logger writing to w (os.Stderr when nil) at the
// given level. timeFormat is a strftime layout; "" omits timestamps.
func NewLogger(level LogLevel, w io.Writer, timeFormat string) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &textLogger{out: w, mu: &sync.Mutex{}, level: level, timeFormat: timeFormat, now: time.Now}
}

func (l *textLogger) With(key string, value any) Logger {
	child := *l
	child.fields += " " + key + "=" + fieldValue(value)
	return &child
}

func (l *textLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *textLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *textLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }

func (l *textLogger) logf(level LogLevel, format string, args ...any) {
	if level > l.level {
		return
	}
	var b strings.Builder
	b.WriteString("[" + level.String() + "] ")
	if l.timeFormat != "" {
		b.WriteString(timefmt.Format(l.now().UTC(), l.timeFormat))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, format, args...)
	b.WriteString(l.fields)
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, b.String())
}

// fieldValue quotes strings containing spaces or control characters.
func fieldValue(v any) string {
	s := fmt.Sprint(v)
	if strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' }) {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)     {}
func (nopLogger) Infof(string, ...any)      {}
func (nopLogger) Warnf(string, ...any)      {}
func (l nopLogger) With(string, any) Logger { return l }

// previewValues renders at most limit values, then a +N suffix.
func previewValues(values []int64, limit int) string {
	if limit <= 0 || len(values) <= limit {
		return fmt.Sprint(values)
	}
	head := strings.Trim(fmt.Sprint(values[:limit]), "[]")
	return fmt.Sprintf("[%s +%d]", head, len(values)-limit)
}
