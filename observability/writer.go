package observability

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Level filters writer logger output.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// writerLogger writes one line per event in key=value form. It backs the
// human-readable job log.
type writerLogger struct {
	mu    *sync.Mutex
	w     io.Writer
	min   Level
	bound []Field
	now   func() time.Time
}

// NewWriterLogger returns a Logger emitting events at or above min to w.
// It is safe for concurrent use.
func NewWriterLogger(w io.Writer, min Level) Logger {
	return &writerLogger{mu: &sync.Mutex{}, w: w, min: min, now: time.Now}
}

func (l *writerLogger) log(lv Level, msg string, fields []Field) {
	if lv < l.min {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s level=%s msg=%q", l.now().Format(time.RFC3339), lv, msg)
	for _, f := range l.bound {
		fmt.Fprintf(l.w, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(l.w, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(l.w)
}

func (l *writerLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *writerLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *writerLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *writerLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *writerLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(l.bound)+len(fields))
	bound = append(bound, l.bound...)
	bound = append(bound, fields...)
	return &writerLogger{mu: l.mu, w: l.w, min: l.min, bound: bound, now: l.now}
}
