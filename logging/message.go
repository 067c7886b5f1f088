package logging

// TextPosition locates a message inside a rendered line of source text.  The
// line numbers are 1-based; the columns are 0-based display columns inside
// Snippet (tabs already expanded) so carets can be printed directly beneath
// them.
type TextPosition struct {
	StartLn, StartCol int
	EndLn, EndCol     int

	// Snippet is the source line the position points into, rendered up to and
	// including the offending text
	Snippet string
}

// LogContext identifies the file a message belongs to
type LogContext struct {
	FilePath string
}

// LogMessage is implemented by everything the logger can display
type LogMessage interface {
	isError() bool
	display(l *Logger)
}

// Enumeration of the different kinds of compile messages (prefix LMK)
const (
	LMKToken = iota
	LMKSyntax
	LMKEOF
	LMKDepth
	LMKFile
)

// CompileMessage is a message caused by the user's source text
type CompileMessage struct {
	Message  string
	Kind     int
	Position *TextPosition
	Context  *LogContext
	IsError  bool
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// ConfigError is an error (or warning) related to project or compiler
// configuration
type ConfigError struct {
	Kind    string
	Message string
	IsError bool
}

func (ce *ConfigError) isError() bool {
	return ce.IsError
}
