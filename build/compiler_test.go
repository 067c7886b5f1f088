package build

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Log4JExploit/rtOS/logging"
	"github.com/Log4JExploit/rtOS/mods"
	"github.com/Log4JExploit/rtOS/syntax"
)

var language = syntax.NewLanguage()

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(src), 0644))
	return path
}

// newTestCompiler points the global logger at a buffer.  The logger is shared
// so the tests using it do not run in parallel.
func newTestCompiler(t *testing.T, dir string) (*Compiler, *bytes.Buffer) {
	t.Helper()

	buff := &bytes.Buffer{}
	logging.InitializeWith(buff, logging.LogLevelError, func(int) {})
	return NewCompiler(mods.DefaultProject(dir), language), buff
}

func TestAnalyzeDirectory(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "b.rt", "create x\r\nset x = 1\r\n")
	writeScript(t, dir, "a.rt", "if x: delete y done\n")
	writeScript(t, dir, "notes.txt", "not a script")

	c, buff := newTestCompiler(t, dir)
	scripts, ok := c.Analyze(dir)
	require.True(t, ok, buff.String())
	require.Len(t, scripts, 2)

	require.Equal(t, filepath.Join(dir, "a.rt"), scripts[0].Path)
	require.Equal(t, filepath.Join(dir, "b.rt"), scripts[1].Path)
	require.Equal(t, "create x\nset x = 1\n", scripts[1].Source)

	for _, script := range scripts {
		require.NotNil(t, script.Result)
		require.Equal(t, script.Path, script.LogContext.FilePath)
	}

	require.Empty(t, buff.String())
}

func TestAnalyzeReportsEveryScript(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "good.rt", "create x\n")
	writeScript(t, dir, "one.rt", "create 5\n")
	writeScript(t, dir, "two.rt", "delete 6\n")

	c, buff := newTestCompiler(t, dir)
	scripts, ok := c.Analyze(dir)
	require.False(t, ok)
	require.Len(t, scripts, 3)
	require.Equal(t, 2, logging.ErrorCount())

	out := buff.String()
	require.Contains(t, out, "one.rt")
	require.Contains(t, out, "two.rt")
	require.Contains(t, out, "expected token type: Identifier")

	// the valid script still gets its tree
	require.NotNil(t, scripts[0].Result)
	require.Nil(t, scripts[1].Result)
}

func TestAnalyzeLexicalError(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.rt", "create x\nset x = \"open\n")

	c, buff := newTestCompiler(t, dir)
	_, ok := c.Analyze(path)
	require.False(t, ok)
	require.Contains(t, buff.String(), "unterminated string literal")
}

func TestLex(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.rt", "create x")

	c, _ := newTestCompiler(t, dir)
	scripts, ok := c.Lex(path)
	require.True(t, ok)
	require.Len(t, scripts, 1)
	require.Equal(t, "create x", scripts[0].Tokens.Text())
	require.Nil(t, scripts[0].Result)
}

func TestCollectScriptsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := CollectScripts(filepath.Join(dir, "missing.rt"))
	require.Error(t, err)

	_, err = CollectScripts(dir)
	require.Contains(t, err.Error(), "contains no rtos scripts")

	other := writeScript(t, dir, "main.go", "package main")
	_, err = CollectScripts(other)
	require.Contains(t, err.Error(), "is not an rtos script")
}

func TestReadSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeScript(t, dir, "crlf.rt", "create x\r\n\r\ndone\r\n")

	src, err := ReadSource(path)
	require.NoError(t, err)
	require.Equal(t, "create x\n\ndone\n", src)

	_, err = ReadSource(filepath.Join(dir, "nope.rt"))
	require.Error(t, err)
}
