package syntax

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Log4JExploit/rtOS/logging"
)

func TestLocate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src     string
		index   int
		line    int
		col     int
		snippet string
	}{
		{"create 5", 2, 1, 7, "create 5"},
		{"create x\n\tset 5", 7, 2, 8, "    set 5"},
		{"set s = \"日本\" 5", 8, 1, 15, "set s = \"日本\" 5"},
		{"create", 1, 1, 6, "create"},
		{"create s = \"a\nb\"\ncreate 5", 10, 3, 7, "create 5"},
		{"set s = \"a\nbc\" 5", 8, 2, 4, "bc\" 5"},
	}

	for _, c := range cases {
		tokens, err := Tokenize(c.src)
		require.NoError(t, err)

		pos := Locate(tokens, c.index)
		require.Equal(t, c.line, pos.StartLn, c.src)
		require.Equal(t, c.line, pos.EndLn, c.src)
		require.Equal(t, c.col, pos.StartCol, c.src)
		require.Equal(t, c.snippet, pos.Snippet, c.src)
	}
}

func TestLocateSpansToken(t *testing.T) {
	t.Parallel()

	tokens, err := Tokenize("set total = value")
	require.NoError(t, err)

	pos := Locate(tokens, 2)
	require.Equal(t, 4, pos.StartCol)
	require.Equal(t, 9, pos.EndCol)
}

func TestLocateEmptyStream(t *testing.T) {
	t.Parallel()

	pos := Locate(nil, 3)
	require.Equal(t, 1, pos.StartLn)
	require.Equal(t, 0, pos.StartCol)
	require.Equal(t, 1, pos.EndCol)

	require.Equal(t, EOF, TokenStream(nil).At(0).Kind)
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	exitCode := -1
	logging.InitializeWith(&out, logging.LogLevelVerbose, func(code int) { exitCode = code })

	tokens, err := Tokenize("create 5")
	require.NoError(t, err)

	_, err = Parse(tokens, language)
	require.Error(t, err)

	Report(&logging.LogContext{FilePath: "scripts/main.rt"}, tokens, err)
	require.Equal(t, 1, logging.ErrorCount())
	require.False(t, logging.ShouldProceed())

	text := out.String()
	require.Contains(t, text, "-- Syntax Error ")
	require.Contains(t, text, " main.rt\n")
	require.Contains(t, text, "expected token type: Identifier\nline 1:\n1 | create 5\n  |        ^\n")

	logging.Abort()
	require.Equal(t, 1, exitCode)

	// anything other than a diagnostic is a fault of the front end
	Report(&logging.LogContext{FilePath: "main.rt"}, tokens, errors.New("boom"))
	require.Contains(t, out.String(), "Fatal Error boom")
}
