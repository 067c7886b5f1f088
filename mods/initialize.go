package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Log4JExploit/rtOS/common"
	"github.com/pelletier/go-toml"
)

// InitProject creates a new project with the given name at the given path
func InitProject(name, path string) error {
	// convert the project directory to the path to project file
	projFilePath := filepath.Join(path, common.ProjectFileName)

	// check to see if a project already exists
	_, err := os.Stat(projFilePath)
	if err == nil {
		return errors.New("project file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("project file error: %w", err)
	}

	// validate project name
	if !IsValidIdentifier(name) {
		return errors.New("project name must be a valid identifier")
	}

	memoize := true
	maxDepth := common.DefaultMaxDepth

	// create project
	proj := &tomlProject{
		Name:     name,
		Version:  common.RtosVersion,
		Entry:    "main" + common.SrcFileExtension,
		LogLevel: "verbose",
		Memoize:  &memoize,
		MaxDepth: &maxDepth,
	}

	// encode and save project to file
	f, err := os.Create(projFilePath)
	if err != nil {
		return fmt.Errorf("error creating project file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlProjectFile{Project: proj}); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}

	return nil
}
