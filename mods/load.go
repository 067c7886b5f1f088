package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/Log4JExploit/rtOS/common"
	"github.com/Log4JExploit/rtOS/logging"
	"github.com/pelletier/go-toml"
)

// tomlProjectFile represents the project file as it is encoded in TOML
type tomlProjectFile struct {
	Project *tomlProject `toml:"project"`
}

// tomlProject represents an rtos project as it is encoded in TOML.  Optional
// settings are pointers so that missing values can be told apart from zero
// values.
type tomlProject struct {
	Name     string `toml:"name"`
	Version  string `toml:"rtos-version"`
	Entry    string `toml:"entry,omitempty"`
	LogLevel string `toml:"log-level,omitempty"`
	Memoize  *bool  `toml:"memoize,omitempty"`
	MaxDepth *int   `toml:"max-depth,omitempty"`
}

// DefaultProject returns the project used for a directory that has no project
// file.  It has no name and default settings.
func DefaultProject(path string) *Project {
	return &Project{
		Root:     path,
		Entry:    "main" + common.SrcFileExtension,
		LogLevel: "verbose",
		Memoize:  true,
		MaxDepth: common.DefaultMaxDepth,
		Version:  common.RtosVersion,
	}
}

// LoadProject loads and validates the project in the given directory.  `path`
// is the path to the project directory.
func LoadProject(path string) (*Project, error) {
	// open file
	f, err := os.Open(filepath.Join(path, common.ProjectFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tpf := &tomlProjectFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, fmt.Errorf("error decoding project file: %w", err)
	}

	if tpf.Project == nil {
		return nil, fmt.Errorf("project file at %s is missing the [project] table", path)
	}

	proj := DefaultProject(path)
	if err := validateProject(proj, tpf.Project); err != nil {
		return nil, err
	}

	// move all the relevant TOML project attributes over to the project
	proj.Name = tpf.Project.Name
	proj.Version = tpf.Project.Version

	if tpf.Project.Entry != "" {
		proj.Entry = tpf.Project.Entry
	}

	if tpf.Project.LogLevel != "" {
		proj.LogLevel = tpf.Project.LogLevel
	}

	if tpf.Project.Memoize != nil {
		proj.Memoize = *tpf.Project.Memoize
	}

	if tpf.Project.MaxDepth != nil {
		proj.MaxDepth = *tpf.Project.MaxDepth
	}

	return proj, nil
}

// validateProject checks that the project file contents are valid
func validateProject(proj *Project, tp *tomlProject) error {
	if tp.Name == "" {
		return fmt.Errorf("missing project name for project at %s", proj.Root)
	}

	if !IsValidIdentifier(tp.Name) {
		return errors.New("project name must be a valid identifier")
	}

	if tp.Entry != "" && filepath.Ext(tp.Entry) != common.SrcFileExtension {
		return fmt.Errorf("entry script `%s` must have the %s extension", tp.Entry, common.SrcFileExtension)
	}

	if tp.LogLevel != "" && !logging.IsLogLevelName(tp.LogLevel) {
		return fmt.Errorf("`%s` is not a valid log level", tp.LogLevel)
	}

	if tp.MaxDepth != nil && *tp.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1 (got %d)", *tp.MaxDepth)
	}

	if tp.Version != common.RtosVersion {
		logging.LogBuildWarning(
			"project",
			fmt.Sprintf("version of project `%s` (v%s) does not match current rtos version (v%s)", tp.Name, tp.Version, common.RtosVersion),
		)
	}

	return nil
}
