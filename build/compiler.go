package build

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/report"
	"github.com/jcelerier/faust/signals"
	"github.com/jcelerier/faust/unit"

	"tlog.app/go/errors"
)

// Compiler is the data structure responsible for maintaining all high-level
// state of a compilation: the units being built and their profiles.
type Compiler struct {
	// selectedProfile is the name of the profile selected by the user.  It is
	// empty if the default profile of each unit should be used.
	selectedProfile string

	// units are the loaded units with their profiles, in command line order.
	units []*loadedUnit
}

// loadedUnit is a unit along with the profile it is built with.
type loadedUnit struct {
	unit    *unit.Unit
	profile *unit.Profile
}

// NewCompiler creates a new compiler for a selected profile.
func NewCompiler(selectedProfile string) *Compiler {
	return &Compiler{selectedProfile: selectedProfile}
}

// Compile loads every unit file in paths, builds its signal graph and writes
// the output of each target of its profile.  It handles all compilation errors
// appropriately and returns whether or not compilation succeeded.
func (c *Compiler) Compile(paths []string) bool {
	errorsBefore := report.ErrorCount()
	succeeded := func() bool {
		return report.ErrorCount() == errorsBefore
	}

	c.units = nil
	report.BeginPhase("Loading")

	for _, path := range paths {
		u, prof, err := unit.Load(path, c.selectedProfile)
		if err != nil {
			report.ReportStdError(path, err)
			continue
		}

		c.units = append(c.units, &loadedUnit{unit: u, profile: prof})
	}

	report.EndPhase()

	if !succeeded() {
		report.ReportCompilationFinished("")
		return false
	}

	profName, targets, outputDir := c.summary()
	report.ReportCompileHeader(profName, targets)

	report.BeginPhase("Generating")

	// each unit is compiled concurrently: every unit builds its graph in its
	// own pool and the operator registry is read-only.
	wg := &sync.WaitGroup{}
	for _, lu := range c.units {
		wg.Add(1)
		go func(lu *loadedUnit) {
			defer wg.Done()
			defer report.CatchErrors(lu.unit.Path)

			c.compileUnit(lu)
		}(lu)
	}

	wg.Wait()

	report.EndPhase()
	report.ReportCompilationFinished(outputDir)

	return succeeded()
}

// compileUnit builds the graph of a single unit and generates its targets.  A
// target that cannot represent one of the unit's operations is reported and
// skipped: the other targets are still generated.
func (c *Compiler) compileUnit(lu *loadedUnit) {
	u, prof := lu.unit, lu.profile

	for _, name := range u.UnusedSignals() {
		report.ReportCompileWarning(u.Path, "signal `%s` is never used", name)
	}

	g, err := u.Build(signals.NewPool())
	if err != nil {
		report.ReportStdError(u.Path, err)
		return
	}

	if err := os.MkdirAll(prof.OutputDir, os.ModePerm); err != nil {
		report.ReportStdError(u.Path, errors.Wrap(err, "create output directory"))
		return
	}

	for _, target := range prof.Targets {
		gen := generators[target]

		text, err := gen.gen(g, prof.Precision)
		if err != nil {
			if uerr, ok := err.(*binop.UnsupportedError); ok {
				report.ReportCompileError(u.Path, "cannot generate %s output: %s", target, uerr)
			} else {
				report.ReportStdError(u.Path, err)
			}

			continue
		}

		outPath := filepath.Join(prof.OutputDir, u.Name+gen.ext)
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			report.ReportStdError(u.Path, errors.Wrap(err, "write %s output", target))
		}
	}
}

// summary returns the profile name, the targets and the output directory to
// display for the loaded units.  The output directory is empty if the units
// write to different directories.
func (c *Compiler) summary() (string, []string, string) {
	profName := c.selectedProfile
	if profName == "" {
		profName = "default"
	}

	selected := make(map[string]struct{})
	var outputDir string
	for i, lu := range c.units {
		for _, target := range lu.profile.Targets {
			selected[target] = struct{}{}
		}

		if i == 0 {
			outputDir = lu.profile.OutputDir
		} else if outputDir != lu.profile.OutputDir {
			outputDir = ""
		}
	}

	var targets []string
	for _, target := range unit.KnownTargets {
		if _, ok := selected[target]; ok {
			targets = append(targets, target)
		}
	}

	return profName, targets, outputDir
}
