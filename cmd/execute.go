package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jcelerier/faust/build"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/report"
	"github.com/jcelerier/faust/signals"
	"github.com/jcelerier/faust/unit"

	"github.com/ComedicChimera/olive"
	"tlog.app/go/errors"
)

// Execute runs the main `sigc` application.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("sigc", "sigc compiles signal expression units", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile units to their profile targets", true)
	buildCmd.AddPrimaryArg("unit-path", "the path to a unit file or a directory of unit files", true)
	buildCmd.AddStringArg("profile", "p", "the name of the profile to build", false)

	runCmd := cli.AddSubcommand("run", "run one sample of a unit with the interpreter", true)
	runCmd.AddPrimaryArg("unit-path", "the path to the unit file", true)
	runCmd.AddStringArg("inputs", "i", "comma separated input values", false)
	runCmd.AddStringArg("params", "pa", "comma separated name=value parameter values", false)

	opsCmd := cli.AddSubcommand("ops", "print the binary operator registry", false)
	opsCmd.AddFlag("display", "d", "print the typesetting table instead of the code generation table")

	initCmd := cli.AddSubcommand("init", "create a unit file template in the working directory", true)
	initCmd.AddPrimaryArg("unit-name", "the name of the unit", true)

	cli.AddSubcommand("version", "print the compiler version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	report.InitReporter(report.ParseLogLevel(result.Arguments["loglevel"].(string)))

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult)
	case "run":
		execRunCommand(subResult)
	case "ops":
		execOpsCommand(subResult)
	case "init":
		execInitCommand(subResult)
	case "version":
		report.PrintInfoMessage("sigc Version", common.Version)
	}
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult) {
	unitPath, _ := result.PrimaryArg()

	paths, err := unitPaths(unitPath)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return
	}

	selectedProfile := ""
	if profArgVal, ok := result.Arguments["profile"]; ok {
		selectedProfile = profArgVal.(string)
	}

	if !build.NewCompiler(selectedProfile).Compile(paths) {
		os.Exit(1)
	}
}

// execRunCommand executes the run subcommand and prints the value of each
// output.
func execRunCommand(result *olive.ArgParseResult) {
	unitPath, _ := result.PrimaryArg()

	var inputs []float64
	if inputsArgVal, ok := result.Arguments["inputs"]; ok {
		var err error
		if inputs, err = parseInputs(inputsArgVal.(string)); err != nil {
			report.PrintErrorMessage("CLI Usage Error", err)
			return
		}
	}

	params := map[string]float64{}
	if paramsArgVal, ok := result.Arguments["params"]; ok {
		var err error
		if params, err = parseParams(paramsArgVal.(string)); err != nil {
			report.PrintErrorMessage("CLI Usage Error", err)
			return
		}
	}

	samples, err := build.Run(unitPath, inputs, params)
	if err != nil {
		report.PrintErrorMessage("Run Error", err)
		os.Exit(1)
	}

	for _, s := range samples {
		fmt.Printf("%s = %s\n", s.Name, signals.FormatReal(s.Value))
	}
}

// execInitCommand executes the init subcommand.
func execInitCommand(result *olive.ArgParseResult) {
	name, _ := result.PrimaryArg()

	workDir, err := os.Getwd()
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return
	}

	path, err := unit.Init(name, workDir)
	if err != nil {
		report.PrintErrorMessage("Unit Init Error", err)
		return
	}

	report.PrintInfoMessage("Created", path)
}

// unitPaths returns the unit files to build for a path given on the command
// line: the path itself or, if it is a directory, every unit file in it.
func unitPaths(path string) ([]string, error) {
	finfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !finfo.IsDir() {
		return []string{path}, nil
	}

	paths, err := filepath.Glob(filepath.Join(path, "*"+common.UnitFileExt))
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, errors.New("no unit files in %s", path)
	}

	return paths, nil
}
