package logging

import (
	"io"
	"sync"
)

// Logger is a type that is responsible for storing and logging output from the
// front end as necessary
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings is a list of all warnings to be logged at the end of a run
	warnings []LogMessage

	// out is the sink all messages are written to
	out io.Writer

	// color indicates whether pterm styling should be applied
	color bool

	// exit terminates the process after a fatal error
	exit func(int)

	// m is the mutex used to synchonize the printing of messages
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and closing notification (success/fail)
	LogLevelWarning        // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, version and phase summary, closing message (DEFAULT)
)

// newLogger creates a new logger struct
func newLogger(out io.Writer, loglevel int, color bool, exit func(int)) *Logger {
	return &Logger{
		LogLevel: loglevel,
		out:      out,
		color:    color,
		exit:     exit,
		m:        &sync.Mutex{},
	}
}

// handleMsg prompts the logger to process a message.  Parses of different
// files may report concurrently so printing is guarded by the mutex.
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			l.endPhase(false)
			lm.display(l)
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}
}
