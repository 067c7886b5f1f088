package logging

import (
	"fmt"
	"io"
	"os"
)

// logger is a global reference to a shared Logger.  It writes to stderr at the
// verbose level until Initialize is called.
var logger = newLogger(os.Stderr, LogLevelVerbose, true, os.Exit)

// Initialize initializes the global logger with the named log level.  Warnings
// logged before initialization (eg. while loading the project) are kept.
func Initialize(loglevelname string) {
	replaceLogger(newLogger(os.Stderr, LogLevelFromName(loglevelname), true, os.Exit))
}

// InitializeWith initializes the global logger with an explicit sink, level
// and exit function.  Styling is disabled: this is the entry point used when
// the output is not a terminal (and by tests).
func InitializeWith(out io.Writer, loglevel int, exit func(int)) {
	replaceLogger(newLogger(out, loglevel, false, exit))
}

func replaceLogger(l *Logger) {
	logger.m.Lock()
	l.warnings = logger.warnings
	logger.m.Unlock()

	logger = l
}

// LogLevelFromName converts a log level name to its enumerated value
func LogLevelFromName(loglevelname string) int {
	switch loglevelname {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		return LogLevelVerbose
	}
}

// IsLogLevelName reports whether the name is one of the known log levels
func IsLogLevelName(name string) bool {
	switch name {
	case "silent", "error", "warn", "warning", "verbose":
		return true
	}

	return false
}

// ShouldProceed indicates whether or not the logger has encountered any errors
func ShouldProceed() bool {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount == 0
}

// ErrorCount returns the number of errors logged so far
func ErrorCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount
}

// WarningCount returns the number of warnings waiting to be displayed
func WarningCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return len(logger.warnings)
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogCompileError logs a compilation error (user-induced, bad code)
func LogCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  true,
	})
}

// LogCompileWarning logs a compilation warning (user-induced, problematic code)
func LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  false,
	})
}

// LogConfigError logs an error related to project or front end configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message, IsError: true})
}

// LogBuildWarning logs a warning in the build process
func LogBuildWarning(kind, warning string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: warning, IsError: false})
}

// LogFatal logs a fatal error that was not expected: ie. the front end did
// something it wasn't supposed to.  It always terminates the process.
func LogFatal(message string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.errorCount++
	logger.displayFatalError(message)
	logger.exit(1)
}

// Abort terminates the process with a failure status if any errors were
// logged.  Parsing never recovers from a diagnostic so the driver calls this
// right after one has been reported.
func Abort() {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.errorCount > 0 {
		logger.exit(1)
	}
}

// -----------------------------------------------------------------------------
// Below are the "aesthetic" functions that only display at the verbose level.

// LogCompileHeader displays the version and target before processing begins
func LogCompileHeader(target string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel == LogLevelVerbose {
		logger.displayCompileHeader(target)
	}
}

// LogBeginPhase marks the start of a processing phase (eg. `Lexing`)
func LogBeginPhase(phase string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel == LogLevelVerbose {
		logger.beginPhase(phase)
	}
}

// LogEndPhase marks the end of the current processing phase
func LogEndPhase(success bool) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.endPhase(success)
}

// LogFinished displays all accumulated warnings and the closing summary.  The
// displayed warnings are cleared.
func LogFinished() {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel >= LogLevelWarning {
		for _, warning := range logger.warnings {
			warning.display(logger)
		}
	}

	if logger.LogLevel > LogLevelSilent {
		logger.displayFinished(logger.errorCount == 0, logger.errorCount, len(logger.warnings))
	}

	logger.warnings = nil
}

// Printf writes an unconditional line of output to the logger's sink.  It is
// used for requested dumps (tokens, trees, grammars) rather than diagnostics.
func Printf(format string, args ...interface{}) {
	logger.m.Lock()
	defer logger.m.Unlock()

	fmt.Fprintf(logger.out, format, args...)
}
