// Package debuglog writes diagnostics to a file. The TUI owns the
// terminal, so stderr is not available while the program runs.
package debuglog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // disables all logging
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	}
	return "UNKNOWN"
}

// ParseLevel maps a config string to a Level. Empty or unknown input
// disables logging.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	}
	return LevelOff
}

var (
	currentLevel = LevelOff
	logger       *log.Logger
	logFile      *os.File
)

// Setup opens the log sink at the given level. With no explicit path
// the log lands in ~/.sfview/sfview.log.
func Setup(level Level, path ...string) error {
	currentLevel = level
	if logFile != nil {
		logFile.Close()
		logFile = nil
		logger = nil
	}
	if level == LevelOff {
		return nil
	}

	var logPath string
	if len(path) > 0 && path[0] != "" {
		logPath = path[0]
	} else {
		home, _ := os.UserHomeDir()
		dir := filepath.Join(home, ".sfview")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		logPath = filepath.Join(dir, "sfview.log")
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", logPath, err)
	}
	logFile = f
	logger = log.New(f, "sfview ", log.LstdFlags|log.Lmicroseconds)
	return nil
}

// Close releases the log file if one is open.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = nil
	return err
}

func logf(level Level, format string, args ...any) {
	if level < currentLevel || logger == nil {
		return
	}
	logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) { logf(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, format, args...) }
