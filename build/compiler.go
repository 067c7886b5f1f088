package build

import (
	"github.com/Log4JExploit/rtOS/logging"
	"github.com/Log4JExploit/rtOS/mods"
	"github.com/Log4JExploit/rtOS/syntax"
)

// Compiler is the data structure responsible for maintaining all high-level
// state of the rtos front end
type Compiler struct {
	// project is the project the scripts being checked belong to
	project *mods.Project

	// grammar is the global, shared grammar used by every parse.  It is sealed
	// and so may be read by any number of parses at once.
	grammar *syntax.Grammar

	// opts are the parser options taken from the project
	opts syntax.Options
}

// NewCompiler creates a new compiler for a given project
func NewCompiler(project *mods.Project, grammar *syntax.Grammar) *Compiler {
	return &Compiler{
		project: project,
		grammar: grammar,
		opts: syntax.Options{
			Memoize:  project.Memoize,
			MaxDepth: project.MaxDepth,
		},
	}
}

// Script is a single script loaded by the compiler
type Script struct {
	// Path is the absolute path to the script
	Path string

	LogContext *logging.LogContext

	// Source is the text of the script with carriage returns removed
	Source string

	Tokens syntax.TokenStream

	// Result is the verified parse tree of the script; nil until parsed
	Result *syntax.MatchResult
}

// Analyze loads, lexes and parses every script in the given paths.  It handles
// all errors appropriately and returns the scripts along with a boolean
// indicating whether or not every script was valid.
func (c *Compiler) Analyze(paths ...string) ([]*Script, bool) {
	logging.LogBeginPhase("Loading")
	scripts, ok := c.load(paths)
	if !ok {
		return nil, false
	}
	logging.LogEndPhase(true)

	logging.LogBeginPhase("Lexing")
	if !c.lex(scripts) {
		return scripts, false
	}
	logging.LogEndPhase(true)

	logging.LogBeginPhase("Parsing")
	if !c.parse(scripts) {
		return scripts, false
	}
	logging.LogEndPhase(true)

	return scripts, logging.ShouldProceed()
}

// Lex loads and lexes the scripts in the given paths without parsing them
func (c *Compiler) Lex(paths ...string) ([]*Script, bool) {
	scripts, ok := c.load(paths)
	if !ok {
		return nil, false
	}

	return scripts, c.lex(scripts)
}

// load collects and reads every script in the given paths
func (c *Compiler) load(paths []string) ([]*Script, bool) {
	var scripts []*Script

	for _, path := range paths {
		fpaths, err := CollectScripts(path)
		if err != nil {
			logging.LogConfigError("Script", err.Error())
			return nil, false
		}

		for _, fpath := range fpaths {
			src, err := ReadSource(fpath)
			if err != nil {
				logging.LogConfigError("Script", err.Error())
				return nil, false
			}

			scripts = append(scripts, &Script{
				Path:       fpath,
				LogContext: &logging.LogContext{FilePath: fpath},
				Source:     src,
			})
		}
	}

	return scripts, true
}

// lex tokenizes every script.  Each lexical error is reported; lexing
// continues with the remaining scripts so that every bad script is reported.
func (c *Compiler) lex(scripts []*Script) bool {
	ok := true

	for _, script := range scripts {
		tokens, err := syntax.Tokenize(script.Source)
		script.Tokens = tokens

		if err != nil {
			syntax.Report(script.LogContext, tokens, err)
			ok = false
		}
	}

	return ok
}

// parse verifies every script concurrently.  The grammar is shared; each parse
// owns its own matcher.
func (c *Compiler) parse(scripts []*Script) bool {
	done := make(chan bool)

	for _, script := range scripts {
		go func(script *Script) {
			result, err := syntax.NewMatcher(script.Tokens, c.grammar, c.opts).Parse()
			if err != nil {
				syntax.Report(script.LogContext, script.Tokens, err)
				done <- false
				return
			}

			script.Result = result
			done <- true
		}(script)
	}

	ok := true
	for range scripts {
		if !<-done {
			ok = false
		}
	}

	return ok
}
