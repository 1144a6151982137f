package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// logger is a global reference to a shared Logger.  It starts out verbose so
// that library code can log before the CLI configures it.
var logger = newLogger(LogLevelVerbose)

// Initialize initializes the global logger with the provided log level and
// turns off colour when standard output is not a terminal
func Initialize(loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warn", "warning":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	logger = newLogger(loglevel)

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		pterm.DisableColor()
	}
}

// Level returns the current log level
func Level() int {
	return logger.LogLevel
}

// ShouldProceed indicates whether or not the logger has encountered any
// errors.  This is useful where multiple items are processed concurrently and
// an error accumulator would be practical.
func ShouldProceed() bool {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount == 0
}

// LogConfigError logs an error related to module manifests or configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogBuildWarning logs a warning produced while loading modules.  Warnings
// are queued and shown by `DisplayWarnings`.
func LogBuildWarning(kind, warning string) {
	logger.handleMsg(&BuildWarning{Kind: kind, Message: warning})
}

// LogNote prints an informational note at the verbose log level
func LogNote(tag, message string) {
	if logger.LogLevel < LogLevelVerbose {
		return
	}

	logger.m.Lock()
	defer logger.m.Unlock()

	PrintInfoMessage(tag, message)
}

// DisplayWarnings displays all queued warnings and returns how many there were
func DisplayWarnings() int {
	return logger.flushWarnings()
}

// ConfigError is an error in a module manifest or the environment
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}

// BuildWarning is a non-fatal problem found while loading modules
type BuildWarning struct {
	Kind    string
	Message string
}

func (bw *BuildWarning) isError() bool {
	return false
}
