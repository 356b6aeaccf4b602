package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is a small leveled wrapper around the standard log package. Warnings
// and errors go to stderr so progress output on stdout stays clean.
type Logger struct {
	level Level
	out   *log.Logger
	err   *log.Logger
}

func New(level string) *Logger {
	return &Logger{
		level: parseLevel(level),
		out:   log.New(os.Stdout, "", log.Ldate|log.Ltime),
		err:   log.New(os.Stderr, "", log.Ldate|log.Ltime),
	}
}

// NewDiscard returns a logger that drops everything. Used in tests.
func NewDiscard() *Logger {
	discard := log.New(io.Discard, "", 0)
	return &Logger{level: LevelError, out: discard, err: discard}
}

func parseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.level <= LevelDebug {
		l.out.Printf("DEBUG: "+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.level <= LevelInfo {
		l.out.Printf("INFO: "+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.level <= LevelWarn {
		l.err.Printf("WARN: "+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	l.err.Printf("ERROR: "+format, v...)
}
