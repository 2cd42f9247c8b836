package unit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/native"
	"github.com/jcelerier/faust/signals"

	"github.com/pelletier/go-toml"
	"tlog.app/go/errors"
)

// tomlUnitFile represents the unit file as it is encoded in TOML.
type tomlUnitFile struct {
	Unit     *tomlUnit      `toml:"unit"`
	Profiles []*tomlProfile `toml:"profiles"`
}

// tomlUnit represents a unit as it is encoded in TOML.
type tomlUnit struct {
	Name    string        `toml:"name"`
	Inputs  int           `toml:"inputs"`
	Outputs []string      `toml:"outputs"`
	Params  []*tomlParam  `toml:"params,omitempty"`
	Signals []*tomlSignal `toml:"signals"`
}

// tomlParam represents a parameter as it is encoded in TOML.
type tomlParam struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// tomlSignal represents a signal as it is encoded in TOML.
type tomlSignal struct {
	Name  string `toml:"name"`
	Op    string `toml:"op"`
	Left  string `toml:"left"`
	Right string `toml:"right"`
}

// tomlProfile represents a profile as it is encoded in TOML.
type tomlProfile struct {
	Name        string   `toml:"name"`
	DefaultProf bool     `toml:"default"` // in absence of a selected profile, choose this profile
	Primary     bool     `toml:"primary"` // of several default profiles, choose this profile
	Precision   string   `toml:"precision"`
	Targets     []string `toml:"targets"`
	OutputPath  string   `toml:"output,omitempty"`
}

// Load loads and validates the unit file at path and selects its build
// profile.  selectedProfile can be empty if no profile is selected: the
// default profile of the unit is then used.
func Load(path, selectedProfile string) (*Unit, *Profile, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "read unit file")
	}

	tuf := &tomlUnitFile{}
	if err := toml.Unmarshal(buff, tuf); err != nil {
		return nil, nil, errors.Wrap(err, "decode unit file %s", path)
	}

	u, err := convertUnit(path, tuf.Unit)
	if err != nil {
		return nil, nil, err
	}

	prof, err := selectProfile(path, tuf.Profiles, selectedProfile)
	if err != nil {
		return nil, nil, err
	}

	return u, prof, nil
}

// convertUnit validates the TOML unit and converts it into a unit.
func convertUnit(path string, tu *tomlUnit) (*Unit, error) {
	if tu == nil {
		return nil, invalid(path, "missing [unit] table")
	}

	if !IsValidIdentifier(tu.Name) {
		return nil, invalid(path, "unit name `%s` must be a valid identifier", tu.Name)
	}

	if tu.Inputs < 0 {
		return nil, invalid(path, "unit `%s` cannot have a negative number of inputs", tu.Name)
	}

	u := &Unit{Path: path, Name: tu.Name, Inputs: tu.Inputs}

	// scope holds every name an operand or an output may refer to
	scope := make(map[string]struct{})
	for i := 0; i < tu.Inputs; i++ {
		scope[signals.InputName(i)] = struct{}{}
	}

	declare := func(what, name string) error {
		if !IsValidIdentifier(name) {
			return invalid(path, "%s name `%s` must be a valid identifier", what, name)
		}

		if native.IsReserved(name) {
			return invalid(path, "%s name `%s` is reserved in generated code", what, name)
		}

		if _, ok := scope[name]; ok {
			return invalid(path, "multiple declarations of `%s`", name)
		}

		scope[name] = struct{}{}
		return nil
	}

	for _, tp := range tu.Params {
		if err := declare("parameter", tp.Name); err != nil {
			return nil, err
		}

		var typ signals.Type
		switch strings.ToLower(tp.Type) {
		case "real", "":
			typ = signals.Real
		case "int":
			typ = signals.Int
		default:
			return nil, invalid(path, "parameter `%s` has unknown type `%s`", tp.Name, tp.Type)
		}

		u.Params = append(u.Params, Param{Name: tp.Name, Type: typ})
	}

	for _, ts := range tu.Signals {
		op, ok := binop.FromSymbol(ts.Op)
		if !ok {
			return nil, invalid(path, "signal `%s` uses unknown operator `%s`", ts.Name, ts.Op)
		}

		// operands are checked before the signal is declared so a signal
		// cannot refer to itself
		for _, operand := range []string{ts.Left, ts.Right} {
			if err := checkOperand(path, scope, ts.Name, operand); err != nil {
				return nil, err
			}
		}

		if err := declare("signal", ts.Name); err != nil {
			return nil, err
		}

		u.Signals = append(u.Signals, Signal{Name: ts.Name, Op: op, Left: ts.Left, Right: ts.Right})
	}

	if len(tu.Outputs) == 0 {
		return nil, invalid(path, "unit `%s` must have at least one output", tu.Name)
	}

	for _, out := range tu.Outputs {
		if _, ok := scope[out]; !ok {
			return nil, invalid(path, "output `%s` is not declared", out)
		}
	}

	u.Outputs = tu.Outputs
	return u, nil
}

// checkOperand checks that an operand of a signal is either a literal or a
// name already in scope.
func checkOperand(path string, scope map[string]struct{}, sigName, operand string) error {
	if IsValidIdentifier(operand) {
		if _, ok := scope[operand]; !ok {
			return invalid(path, "signal `%s` refers to undeclared name `%s`", sigName, operand)
		}

		return nil
	}

	if _, ok := parseLiteral(operand); !ok {
		return invalid(path, "signal `%s` has malformed operand `%s`", sigName, operand)
	}

	return nil
}

// selectProfile attempts to select a build profile based on the selected
// profile name, validates it and converts it into a profile.
func selectProfile(path string, profiles []*tomlProfile, selectedProfile string) (*Profile, error) {
	if len(profiles) == 0 {
		return nil, invalid(path, "unit must provide at least one build profile")
	}

	if selectedProfile != "" {
		for _, prof := range profiles {
			if prof.Name == selectedProfile {
				return convertProfile(path, prof)
			}
		}

		return nil, invalid(path, "no profile named `%s`", selectedProfile)
	}

	var defaults []*tomlProfile
	for _, prof := range profiles {
		if prof.DefaultProf {
			defaults = append(defaults, prof)
		}
	}

	switch len(defaults) {
	case 0:
		if len(profiles) == 1 {
			return convertProfile(path, profiles[0])
		}

		return nil, invalid(path, "no profile selected and no default profile")
	case 1:
		return convertProfile(path, defaults[0])
	}

	var primary *tomlProfile
	for _, prof := range defaults {
		if prof.Primary {
			if primary != nil {
				return nil, invalid(path, "multiple primary default profiles")
			}

			primary = prof
		}
	}

	if primary == nil {
		return nil, invalid(path, "multiple default profiles and none is primary")
	}

	return convertProfile(path, primary)
}

// convertProfile validates a TOML profile and converts it into a profile.  A
// relative output directory is relative to the directory of the unit file.
func convertProfile(path string, tp *tomlProfile) (*Profile, error) {
	prof := &Profile{Name: tp.Name}

	precName := tp.Precision
	if precName == "" {
		precName = common.Single.String()
	}

	prec, ok := common.ParsePrecision(precName)
	if !ok {
		return nil, invalid(path, "profile `%s` has unknown precision `%s`", tp.Name, tp.Precision)
	}
	prof.Precision = prec

	if len(tp.Targets) == 0 {
		return nil, invalid(path, "profile `%s` must select at least one target", tp.Name)
	}

	seen := make(map[string]struct{})
	for _, target := range tp.Targets {
		if !isKnownTarget(target) {
			return nil, invalid(path, "profile `%s` selects unknown target `%s`", tp.Name, target)
		}

		if _, ok := seen[target]; ok {
			return nil, invalid(path, "profile `%s` selects target `%s` multiple times", tp.Name, target)
		}

		seen[target] = struct{}{}
		prof.Targets = append(prof.Targets, target)
	}

	out := tp.OutputPath
	if out == "" {
		out = common.DefaultOutputDir
	}

	if !filepath.IsAbs(out) {
		out = filepath.Join(filepath.Dir(path), out)
	}
	prof.OutputDir = filepath.Clean(out)

	return prof, nil
}

func isKnownTarget(target string) bool {
	for _, known := range KnownTargets {
		if known == target {
			return true
		}
	}

	return false
}
