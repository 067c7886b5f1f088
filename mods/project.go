package mods

import (
	"path/filepath"
)

// Project represents an rtos project -- specifically, the project
// configuration read from its project file
type Project struct {
	// Name is the name of the project
	Name string

	// Root is the path to the directory enclosing the project file
	Root string

	// Entry is the path of the entry script relative to Root
	Entry string

	// LogLevel is the name of the log level to run with
	LogLevel string

	// Memoize indicates whether the parser should cache partial matches
	Memoize bool

	// MaxDepth is the maximum number of nested contexts a script may have
	MaxDepth int

	// Version is the rtos version the project was created with
	Version string
}

// EntryPath returns the path to the project's entry script
func (p *Project) EntryPath() string {
	if filepath.IsAbs(p.Entry) {
		return p.Entry
	}

	return filepath.Join(p.Root, p.Entry)
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (project name, script name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
