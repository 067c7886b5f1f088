package build

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Log4JExploit/rtOS/common"
)

// CollectScripts returns the scripts a path refers to.  A file must be an rtos
// script; a directory yields every script directly inside it, sorted by name.
func CollectScripts(path string) ([]string, error) {
	abspath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// validate script path
	finfo, err := os.Stat(abspath)
	if err != nil {
		return nil, fmt.Errorf("unable to load scripts at %s: %w", abspath, err)
	}

	if !finfo.IsDir() {
		if filepath.Ext(abspath) != common.SrcFileExtension {
			return nil, fmt.Errorf("%s is not an rtos script (expected the %s extension)", abspath, common.SrcFileExtension)
		}

		return []string{abspath}, nil
	}

	finfos, err := ioutil.ReadDir(abspath)
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", abspath, err)
	}

	var fpaths []string
	for _, finfo := range finfos {
		// we only want rtos scripts (not directories or other files)
		if !finfo.IsDir() && filepath.Ext(finfo.Name()) == common.SrcFileExtension {
			fpaths = append(fpaths, filepath.Join(abspath, finfo.Name()))
		}
	}

	if len(fpaths) == 0 {
		return nil, fmt.Errorf("directory %s contains no rtos scripts", abspath)
	}

	sort.Strings(fpaths)
	return fpaths, nil
}

// ReadSource reads a script and removes its carriage returns
func ReadSource(path string) (string, error) {
	buff, err := ioutil.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}

	return strings.ReplaceAll(string(buff), "\r", ""), nil
}
