package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ComedicChimera/olive"

	"github.com/Log4JExploit/rtOS/build"
	"github.com/Log4JExploit/rtOS/common"
	"github.com/Log4JExploit/rtOS/logging"
	"github.com/Log4JExploit/rtOS/mods"
	"github.com/Log4JExploit/rtOS/syntax"
)

// Execute runs the main `rtos` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("rtos", "rtos is a tool for checking rtos scripts", true)
	cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})

	checkCmd := cli.AddSubcommand("check", "check scripts and output errors", true)
	checkCmd.AddPrimaryArg("script-path", "the script or directory to check (defaults to the project entry)", false)

	tokensCmd := cli.AddSubcommand("tokens", "print the tokens of a script", true)
	tokensCmd.AddPrimaryArg("script-path", "the script to tokenize", true)

	treeCmd := cli.AddSubcommand("tree", "print the parse tree of a script", true)
	treeCmd.AddPrimaryArg("script-path", "the script to parse", true)

	cli.AddSubcommand("grammar", "verify the grammar and print it as EBNF", false)

	modCmd := cli.AddSubcommand("mod", "manage projects", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a project in the working directory", true)
	modInitCmd.AddPrimaryArg("project-name", "the name of the project", true)

	cli.AddSubcommand("version", "print the rtos version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	loglevel := ""
	if llArgVal, ok := result.Arguments["loglevel"]; ok {
		loglevel = llArgVal.(string)
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		execCheckCommand(subResult, loglevel)
	case "tokens":
		execTokensCommand(subResult, loglevel)
	case "tree":
		execTreeCommand(subResult, loglevel)
	case "grammar":
		execGrammarCommand()
	case "mod":
		execModCommand(subResult)
	case "version":
		logging.PrintInfoMessage("rtos Version", common.RtosVersion)
	}
}

// execCheckCommand executes the check subcommand and handles all errors
func execCheckCommand(result *olive.ArgParseResult, loglevel string) {
	scriptPath, hasPath := result.PrimaryArg()

	var proj *mods.Project
	if hasPath {
		abspath, err := filepath.Abs(scriptPath)
		if err != nil {
			logging.PrintErrorMessage("Path Error", err)
			return
		}

		scriptPath = abspath
		if proj = loadProject(scriptDir(abspath)); proj == nil {
			return
		}
	} else {
		workDir, err := os.Getwd()
		if err != nil {
			logging.PrintErrorMessage("Path Error", err)
			return
		}

		root, ok := mods.FindProject(workDir)
		if !ok {
			logging.PrintErrorMessage("Project Error", errors.New("no script given and no project found"))
			return
		}

		if proj = loadProject(root); proj == nil {
			return
		}

		scriptPath = proj.EntryPath()
	}

	initLogger(proj, loglevel)
	logging.LogCompileHeader(scriptPath)

	c := build.NewCompiler(proj, syntax.NewLanguage())
	c.Analyze(scriptPath)

	logging.LogFinished()
	logging.Abort()
}

// execTokensCommand executes the tokens subcommand
func execTokensCommand(result *olive.ArgParseResult, loglevel string) {
	scriptPath, _ := result.PrimaryArg()

	proj := loadProject(scriptDir(scriptPath))
	if proj == nil {
		return
	}

	initLogger(proj, loglevel)

	c := build.NewCompiler(proj, syntax.NewLanguage())
	scripts, ok := c.Lex(scriptPath)
	if !ok {
		logging.Abort()
		return
	}

	for _, script := range scripts {
		for _, tok := range script.Tokens {
			logging.Printf("%d:%d\t%-12s %q\n", tok.Line, tok.Col, tok.Kind, tok.Text)
		}
	}
}

// execTreeCommand executes the tree subcommand
func execTreeCommand(result *olive.ArgParseResult, loglevel string) {
	scriptPath, _ := result.PrimaryArg()

	proj := loadProject(scriptDir(scriptPath))
	if proj == nil {
		return
	}

	// only the tree should be displayed unless the user asks otherwise
	if loglevel == "" {
		loglevel = "error"
	}
	initLogger(proj, loglevel)

	c := build.NewCompiler(proj, syntax.NewLanguage())
	scripts, ok := c.Analyze(scriptPath)
	if !ok {
		logging.Abort()
		return
	}

	for _, script := range scripts {
		sb := &strings.Builder{}
		script.Result.Dump(sb)
		logging.Printf("%s", sb.String())
	}
}

// execGrammarCommand executes the grammar subcommand
func execGrammarCommand() {
	g := syntax.NewLanguage()

	if err := g.Verify(); err != nil {
		logging.PrintErrorMessage("Grammar Error", err)
		os.Exit(1)
	}

	logging.Printf("%s", g.EBNF())
}

// execModCommand executes the `mod` subcommand and its subcommands.  It handles
// all errors related to this command
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	switch subcmdName {
	case "init":
		projName, _ := subResult.PrimaryArg()
		if err := mods.InitProject(projName, workDir); err != nil {
			logging.PrintErrorMessage("Project Init Error", err)
		}
	}
}

// -----------------------------------------------------------------------------

// scriptDir returns the directory a script path is resolved relative to
func scriptDir(scriptPath string) string {
	if finfo, err := os.Stat(scriptPath); err == nil && finfo.IsDir() {
		return scriptPath
	}

	return filepath.Dir(scriptPath)
}

// loadProject loads the project enclosing a directory.  Scripts outside of any
// project are checked with the default settings.  It returns nil if the
// project exists but could not be loaded.
func loadProject(dir string) *mods.Project {
	root, ok := mods.FindProject(dir)
	if !ok {
		abspath, err := filepath.Abs(dir)
		if err != nil {
			abspath = dir
		}

		return mods.DefaultProject(abspath)
	}

	proj, err := mods.LoadProject(root)
	if err != nil {
		logging.PrintErrorMessage("Project Load Error", err)
		return nil
	}

	return proj
}

// initLogger initializes the global logger.  An explicit log level takes
// precedence over the one in the project file.
func initLogger(proj *mods.Project, loglevel string) {
	logging.Initialize(logLevelFor(proj, loglevel))
}

// logLevelFor selects the log level name to run with
func logLevelFor(proj *mods.Project, loglevel string) string {
	if loglevel == "" {
		return proj.LogLevel
	}

	return loglevel
}
