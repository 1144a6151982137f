package cmd

import (
	"fmt"
	"os"

	"github.com/ComedicChimera/olive"

	"symres/common"
	"symres/logging"
	"symres/mods"
)

// Execute runs the main `symres` application.  It returns false if the
// requested command failed.
func Execute() bool {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("symres", "symres resolves metadata names to types across module references", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	resolveCmd := cli.AddSubcommand("resolve", "resolve metadata names from the point of view of a module", true)
	resolveCmd.AddPrimaryArg("module-path", "the path to the module to resolve from", true)
	resolveCmd.AddStringArg("name", "n", "the metadata name(s) to resolve, comma separated", true)
	resolveCmd.AddStringArg("prelude", "pre", "a module every module references implicitly", false)
	resolveCmd.AddFlag("attribute", "a", "resolve the names as attribute references")
	resolveCmd.AddFlag("explain", "e", "show every candidate examined during resolution")

	visCmd := cli.AddSubcommand("visibility", "show the effective visibility of a symbol", true)
	visCmd.AddPrimaryArg("module-path", "the path to the module declaring or referencing the symbol", true)
	visCmd.AddStringArg("name", "n", "the qualified name of the symbol", true)

	modCmd := cli.AddSubcommand("mod", "manage module manifests", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module manifest", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the new module", true)

	cli.AddSubcommand("version", "print the symres version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return false
	}

	logging.Initialize(result.Arguments["loglevel"].(string))

	// the logger must be initialized before the environment is checked so
	// that config errors are counted
	if !initSymresPath() {
		return false
	}

	// process the inputted command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "resolve":
		return execResolveCommand(subResult)
	case "visibility":
		return execVisibilityCommand(subResult)
	case "mod":
		return execModCommand(subResult)
	case "version":
		logging.PrintInfoMessage("Symres Version", common.SymresVersion)
	}

	return true
}

// execModCommand executes the `mod` subcommand and its subcommands.  It handles
// all errors related to this command.
func execModCommand(result *olive.ArgParseResult) bool {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return false
	}

	switch subcmdName {
	case "init":
		modName, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modName, workDir); err != nil {
			logging.PrintErrorMessage("Module Init Error", err)
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// initSymresPath checks for a valid library path and initializes its global
// value.  The path is optional: without it no global search is performed.
func initSymresPath() bool {
	if symresPath, ok := os.LookupEnv("SYMRES_PATH"); ok {
		if finfo, err := os.Stat(symresPath); err != nil {
			logging.LogConfigError("Env", fmt.Sprintf("error loading symres_path: %s", err.Error()))
		} else if !finfo.IsDir() {
			logging.LogConfigError("Env", "error loading symres_path: must point to a directory")
		} else {
			common.SymresPath = symresPath
		}
	}

	return logging.ShouldProceed()
}
