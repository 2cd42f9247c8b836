package unit

import (
	"fmt"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/signals"
)

// Unit is a loaded and validated compilation unit.
type Unit struct {
	// Path is the path to the unit file as given by the user.
	Path string

	Name string

	// Inputs is the number of audio inputs: they are named in0..in{n-1}.
	Inputs int

	// Outputs are the names of the signals to compile, in order.
	Outputs []string

	Params  []Param
	Signals []Signal
}

// Param is a named control parameter.
type Param struct {
	Name string
	Type signals.Type
}

// Signal is a named binary expression.  Its operands are names of inputs,
// parameters or earlier signals, or literals.
type Signal struct {
	Name        string
	Op          binop.Kind
	Left, Right string
}

// Profile is the selected build profile of a unit.
type Profile struct {
	Name      string
	Precision common.Precision
	Targets   []string
	OutputDir string
}

// Enumeration of the targets a profile can select.
const (
	TargetLLVM   = "llvm"
	TargetInterp = "interp"
	TargetWASM   = "wasm"
	TargetNative = "native"
	TargetScalar = "scalar"
	TargetVector = "vector"
	TargetLatex  = "latex"
)

// KnownTargets lists every target in the order they are generated.
var KnownTargets = []string{
	TargetLLVM,
	TargetInterp,
	TargetWASM,
	TargetNative,
	TargetScalar,
	TargetVector,
	TargetLatex,
}

// ValidationError is returned when a unit file is well-formed TOML but does
// not describe a valid unit.
type ValidationError struct {
	Path    string
	Message string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Path, ve.Message)
}

// invalid creates a new validation error for the unit file at path.
func invalid(path, message string, args ...interface{}) error {
	return &ValidationError{Path: path, Message: fmt.Sprintf(message, args...)}
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier: unit, input, parameter and signal names must all be identifiers.
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

// UnusedSignals returns the names of the signals that are neither outputs nor
// operands of another signal.
func (u *Unit) UnusedSignals() []string {
	used := make(map[string]struct{})
	for _, out := range u.Outputs {
		used[out] = struct{}{}
	}

	for _, sig := range u.Signals {
		used[sig.Left] = struct{}{}
		used[sig.Right] = struct{}{}
	}

	var unused []string
	for _, sig := range u.Signals {
		if _, ok := used[sig.Name]; !ok {
			unused = append(unused, sig.Name)
		}
	}

	return unused
}
