package logging

import (
	"sync"
)

// Logger is a type that is responsible for storing and logging output from
// symres as necessary
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings is a list of all warnings to be displayed at the end of a run
	warnings []LogMessage

	// m is the mutex used to synchronize the printing of messages
	m sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors
	LogLevelWarning        // errors and warnings
	LogLevelVerbose        // errors, warnings, notes, and resolution details (DEFAULT)
)

// LogMessage is a message that the logger can display
type LogMessage interface {
	display()
	isError() bool
}

// newLogger creates a new logger struct
func newLogger(loglevel int) *Logger {
	return &Logger{
		LogLevel: loglevel,
	}
}

// handleMsg prompts to logger to process a message -- messages may come in
// concurrently so printing is guarded by a mutex
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			lm.display()
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}
}

// flushWarnings displays and clears all queued warnings
func (l *Logger) flushWarnings() int {
	l.m.Lock()
	defer l.m.Unlock()

	count := len(l.warnings)
	if l.LogLevel >= LogLevelWarning {
		for _, w := range l.warnings {
			w.display()
		}
	}

	l.warnings = nil
	return count
}
