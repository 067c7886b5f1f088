package mods

import (
	"os"
	"path/filepath"

	"github.com/Log4JExploit/rtOS/common"
	"github.com/pelletier/go-toml"
)

// FindProject searches the given directory and its parents for a project file
// and returns the directory enclosing the first one found
func FindProject(dir string) (string, bool) {
	abspath, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		if checkPath(abspath) {
			return abspath, true
		}

		parent := filepath.Dir(abspath)
		if parent == abspath {
			return "", false
		}

		abspath = parent
	}
}

// checkPath checks to see if a potential project path is valid -- accepts the
// path to the project root not the path to the project file
func checkPath(abspath string) bool {
	// convert the abs path into a path to the project file
	pfPath := filepath.Join(abspath, common.ProjectFileName)

	// check to see if we can open the project file
	finfo, err := os.Stat(pfPath)
	if err != nil || finfo.IsDir() {
		return false
	}

	// only the presence of a project name is checked here so we don't do the
	// full unmarshal.  A malformed file still counts: loading it reports the
	// actual problem to the user.
	tree, err := toml.LoadFile(pfPath)
	if err != nil {
		return true
	}

	_, ok := tree.Get("project.name").(string)
	return ok
}
