// Package logging provides the levelled logger injected into every
// component. There is no package-level logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level describes severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// ParseLevel converts a string to a Level, defaulting to info.
func ParseLevel(v string) Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger is a thin wrapper around log.Logger with levels and a tag.
type Logger struct {
	logger *log.Logger
	level  Level
	tag    string
}

// Open appends to the file at path. The caller closes it when done.
func Open(path string, level Level) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewWriter(f, level), f, nil
}

func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{logger: log.New(w, "", log.LstdFlags), level: level}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWriter(io.Discard, LevelError+1)
}

// With returns a child logger whose lines carry [tag].
func (l *Logger) With(tag string) *Logger {
	if l == nil {
		return nil
	}
	child := *l
	child.tag = strings.ToUpper(tag)
	return &child
}

func (l *Logger) logf(lvl Level, format string, args ...interface{}) {
	if l == nil || lvl < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.tag != "" {
		l.logger.Printf("%s [%s] %s", lvl, l.tag, msg)
		return
	}
	l.logger.Printf("%s %s", lvl, msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}
