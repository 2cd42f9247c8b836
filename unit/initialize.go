package unit

import (
	"os"
	"path/filepath"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/signals"

	"github.com/pelletier/go-toml"
	"tlog.app/go/errors"
)

// Init creates a new unit file with the given name in dir and returns its
// path.  The unit is a stereo-to-mono mixer with a gain control and comes with
// a debug (default) and a release profile.
func Init(name, dir string) (string, error) {
	path := filepath.Join(dir, name+common.UnitFileExt)

	// check to see if a unit already exists
	_, err := os.Stat(path)
	if err == nil {
		return "", errors.New("unit file %s already exists", path)
	}

	if !os.IsNotExist(err) {
		return "", errors.Wrap(err, "unit file")
	}

	if !IsValidIdentifier(name) {
		return "", errors.New("unit name must be a valid identifier")
	}

	tuf := &tomlUnitFile{
		Unit: &tomlUnit{
			Name:    name,
			Inputs:  2,
			Outputs: []string{"out"},
			Params: []*tomlParam{
				{Name: "gain", Type: signals.Real.String()},
			},
			Signals: []*tomlSignal{
				{Name: "mix", Op: binop.Lookup(binop.Add, false).Symbol(), Left: signals.InputName(0), Right: signals.InputName(1)},
				{Name: "out", Op: binop.Lookup(binop.Mul, false).Symbol(), Left: "mix", Right: "gain"},
			},
		},
		Profiles: []*tomlProfile{newInitProfile(true), newInitProfile(false)},
	}

	// encode and save unit to file
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create unit file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(tuf); err != nil {
		return "", errors.Wrap(err, "encode unit file")
	}

	return path, nil
}

// newInitProfile creates a new initial profile for a unit.
func newInitProfile(debug bool) *tomlProfile {
	if debug {
		return &tomlProfile{
			Name:        "debug",
			DefaultProf: true,
			Precision:   common.Single.String(),
			Targets:     []string{TargetInterp, TargetNative, TargetLatex},
			OutputPath:  common.DefaultOutputDir,
		}
	}

	return &tomlProfile{
		Name:       "release",
		Precision:  common.Double.String(),
		Targets:    []string{TargetLLVM, TargetWASM, TargetVector},
		OutputPath: common.DefaultOutputDir,
	}
}
