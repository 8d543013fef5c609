// file: internals/helpers/logger/logger.go
package logger

import (
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

// Logger is the leveled logging collaborator injected into services. Debug
// output (seed verification and the like) is gated by level, not by ad-hoc
// env checks at the call sites.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type stdLogger struct {
	level Level
}

func New(level Level) Logger {
	return &stdLogger{level: level}
}

// FromEnv reads LOG_LEVEL (debug|info|error), defaulting to info.
func FromEnv() Logger {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))) {
	case "debug":
		return New(LevelDebug)
	case "error":
		return New(LevelError)
	default:
		return New(LevelInfo)
	}
}

func (l *stdLogger) Debugf(format string, args ...any) {
	if l.level >= LevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func (l *stdLogger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

func (l *stdLogger) Errorf(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}

// Nop discards everything; handy default for tests.
type Nop struct{}

func (Nop) Debugf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}
