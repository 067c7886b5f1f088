package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatCodeSelection(t *testing.T) {
	t.Parallel()

	lines := formatCodeSelection(&TextPosition{StartLn: 1, StartCol: 7, EndLn: 1, EndCol: 8, Snippet: "create 5"})
	require.Equal(t, []string{"line 1:", "1 | create 5", "  |        ^"}, lines)

	// the carets span the offending text and the gutter follows the line number
	lines = formatCodeSelection(&TextPosition{StartLn: 12, StartCol: 4, EndLn: 12, EndCol: 10, Snippet: "set sensor"})
	require.Equal(t, []string{"line 12:", "12 | set sensor", "   |     ^^^^^^"}, lines)

	// an empty span still gets a caret
	lines = formatCodeSelection(&TextPosition{StartLn: 2, StartCol: 3, EndLn: 2, EndCol: 3, Snippet: "if "})
	require.Equal(t, "  |    ^", lines[2])
}

// The remaining tests share the global logger (and phase state) so they do not
// run in parallel.

func TestCompileErrorDisplay(t *testing.T) {
	buff := &bytes.Buffer{}
	InitializeWith(buff, LogLevelError, func(int) {})

	LogCompileError(
		&LogContext{FilePath: "/scripts/main.rt"},
		"expected token type: Identifier",
		LMKSyntax,
		&TextPosition{StartLn: 1, StartCol: 7, EndLn: 1, EndCol: 8, Snippet: "create 5"},
	)

	expected := "\n-- Syntax Error " + strings.Repeat("-", 26) + " main.rt\n" +
		"expected token type: Identifier\n" +
		"line 1:\n" +
		"1 | create 5\n" +
		"  |        ^\n"
	require.Equal(t, expected, buff.String())
	require.False(t, ShouldProceed())
	require.Equal(t, 1, ErrorCount())
}

func TestSilentLevelCountsErrors(t *testing.T) {
	buff := &bytes.Buffer{}
	exitCode := -1
	InitializeWith(buff, LogLevelSilent, func(code int) { exitCode = code })

	Abort()
	require.Equal(t, -1, exitCode)

	LogConfigError("Script", "no scripts")
	require.Empty(t, buff.String())
	require.Equal(t, 1, ErrorCount())

	Abort()
	require.Equal(t, 1, exitCode)
}

func TestWarningsDeferredUntilFinished(t *testing.T) {
	buff := &bytes.Buffer{}
	InitializeWith(buff, LogLevelVerbose, func(int) {})

	LogBuildWarning("Project", "project was made for a different version")
	require.Empty(t, buff.String())
	require.True(t, ShouldProceed())

	LogFinished()
	require.Equal(t,
		"Project Warning project was made for a different version\n\nAll done! (0 errors, 1 warning)\n",
		buff.String(),
	)
}

func TestInitializeKeepsWarnings(t *testing.T) {
	early := &bytes.Buffer{}
	InitializeWith(early, LogLevelVerbose, func(int) {})
	LogBuildWarning("Project", "queued before initialization")

	buff := &bytes.Buffer{}
	InitializeWith(buff, LogLevelWarning, func(int) {})
	require.Equal(t, 1, WarningCount())

	LogFinished()
	require.Empty(t, early.String())
	require.Contains(t, buff.String(), "Project Warning queued before initialization\n")
	require.Contains(t, buff.String(), "(0 errors, 1 warning)")

	// displayed warnings are not carried any further
	require.Equal(t, 0, WarningCount())
}

func TestPhases(t *testing.T) {
	buff := &bytes.Buffer{}
	InitializeWith(buff, LogLevelVerbose, func(int) {})

	LogCompileHeader("main.rt")
	LogBeginPhase("Lexing")
	LogEndPhase(true)
	LogBeginPhase("Parsing")
	LogConfigError("Script", "bad")
	LogFinished()

	out := buff.String()
	require.True(t, strings.HasPrefix(out, "rtos v0.1.0 -- target: main.rt\nLexing...\nDone Lexing"), out)
	require.Contains(t, out, "Parsing...\nFail Parsing\nScript Error bad\n")
	require.True(t, strings.HasSuffix(out, "Oh no! (1 error, 0 warnings)\n"), out)

	// a second failure does not end a phase twice
	buff.Reset()
	LogConfigError("Script", "worse")
	require.Equal(t, "Script Error worse\n", buff.String())
}

func TestLogLevelNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, LogLevelSilent, LogLevelFromName("silent"))
	require.Equal(t, LogLevelError, LogLevelFromName("error"))
	require.Equal(t, LogLevelWarning, LogLevelFromName("warn"))
	require.Equal(t, LogLevelWarning, LogLevelFromName("warning"))
	require.Equal(t, LogLevelVerbose, LogLevelFromName("verbose"))
	require.Equal(t, LogLevelVerbose, LogLevelFromName("loud"))

	require.True(t, IsLogLevelName("warn"))
	require.False(t, IsLogLevelName("loud"))
}
