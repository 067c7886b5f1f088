package mods

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Log4JExploit/rtOS/common"
	"github.com/Log4JExploit/rtOS/logging"
)

func writeProjectFile(t *testing.T, dir, contents string) {
	t.Helper()

	err := ioutil.WriteFile(filepath.Join(dir, common.ProjectFileName), []byte(contents), 0644)
	require.NoError(t, err)
}

func TestInitAndLoadProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, InitProject("demo", dir))

	proj, err := LoadProject(dir)
	require.NoError(t, err)
	require.Equal(t, "demo", proj.Name)
	require.Equal(t, dir, proj.Root)
	require.Equal(t, "main.rt", proj.Entry)
	require.Equal(t, filepath.Join(dir, "main.rt"), proj.EntryPath())
	require.Equal(t, "verbose", proj.LogLevel)
	require.True(t, proj.Memoize)
	require.Equal(t, common.DefaultMaxDepth, proj.MaxDepth)
	require.Equal(t, common.RtosVersion, proj.Version)

	// an existing project is never overwritten
	require.EqualError(t, InitProject("demo", dir), "project file already exists")
}

func TestInitProjectInvalidName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.EqualError(t, InitProject("9lives", dir), "project name must be a valid identifier")

	_, err := os.Stat(filepath.Join(dir, common.ProjectFileName))
	require.True(t, os.IsNotExist(err))
}

func TestLoadProjectSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProjectFile(t, dir, `
[project]
name = "scheduler"
rtos-version = "0.1.0"
entry = "boot.rt"
log-level = "error"
memoize = false
max-depth = 8
`)

	proj, err := LoadProject(dir)
	require.NoError(t, err)
	require.Equal(t, "scheduler", proj.Name)
	require.Equal(t, "boot.rt", proj.Entry)
	require.Equal(t, "error", proj.LogLevel)
	require.False(t, proj.Memoize)
	require.Equal(t, 8, proj.MaxDepth)
}

func TestLoadProjectDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeProjectFile(t, dir, `
[project]
name = "minimal"
rtos-version = "0.1.0"
`)

	proj, err := LoadProject(dir)
	require.NoError(t, err)
	require.Equal(t, "main.rt", proj.Entry)
	require.True(t, proj.Memoize)
	require.Equal(t, common.DefaultMaxDepth, proj.MaxDepth)
}

func TestLoadProjectErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		contents string
		message  string
	}{
		{"[project]\nrtos-version = \"0.1.0\"\n", "missing project name"},
		{"[project]\nname = \"a-b\"\n", "project name must be a valid identifier"},
		{"[project]\nname = \"p\"\nentry = \"main.go\"\n", "must have the .rt extension"},
		{"[project]\nname = \"p\"\nlog-level = \"loud\"\n", "`loud` is not a valid log level"},
		{"[project]\nname = \"p\"\nmax-depth = 0\n", "max depth must be at least 1"},
		{"name = \"p\"\n", "missing the [project] table"},
		{"[project\n", "error decoding project file"},
	}

	for _, c := range cases {
		dir := t.TempDir()
		writeProjectFile(t, dir, c.contents)

		_, err := LoadProject(dir)
		require.Error(t, err, c.contents)
		require.Contains(t, err.Error(), c.message, c.contents)
	}

	_, err := LoadProject(t.TempDir())
	require.True(t, os.IsNotExist(err))
}

func TestFindProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, InitProject("found", root))

	nested := filepath.Join(root, "scripts", "drivers")
	require.NoError(t, os.MkdirAll(nested, 0755))

	dir, ok := FindProject(nested)
	require.True(t, ok)
	require.Equal(t, root, dir)

	dir, ok = FindProject(root)
	require.True(t, ok)
	require.Equal(t, root, dir)
}

func TestIsValidIdentifier(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"a", "_x", "Demo2", "snake_case"} {
		require.True(t, IsValidIdentifier(id), id)
	}

	for _, id := range []string{"", "2a", "a-b", "a b", "é"} {
		require.False(t, IsValidIdentifier(id), id)
	}
}

// The version warning is queued on the global logger before the logger is
// configured from the project, so this test does not run in parallel.
func TestVersionMismatchWarning(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, `
[project]
name = "legacy"
rtos-version = "0.0.1"
`)

	proj, err := LoadProject(dir)
	require.NoError(t, err)
	require.Equal(t, "0.0.1", proj.Version)

	buff := &bytes.Buffer{}
	logging.InitializeWith(buff, logging.LogLevelFromName(proj.LogLevel), func(int) {})
	logging.LogFinished()

	out := buff.String()
	require.Contains(t, out, "version of project `legacy` (v0.0.1) does not match current rtos version (v"+common.RtosVersion+")")
	require.Contains(t, out, "(0 errors, 1 warning)")
}
