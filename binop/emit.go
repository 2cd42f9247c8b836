package binop

import (
	"fmt"

	"github.com/jcelerier/faust/fir"
)

// Target is a backend that asks the registry what to emit.
type Target int

// Enumeration of targets.
const (
	TargetVector Target = iota // native vectorized body
	TargetScalar               // native single-sample body
	TargetLLVM                 // LLVM IR builder
	TargetInterp               // bytecode interpreter
	TargetWASM                 // portable module text format
)

func (t Target) String() string {
	switch t {
	case TargetVector:
		return "vector"
	case TargetScalar:
		return "scalar"
	case TargetLLVM:
		return "llvm"
	case TargetInterp:
		return "interp"
	case TargetWASM:
		return "wasm"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// UnsupportedError is returned by backends when an operator has no form for
// the requested operand type on their target.  This is a type error that
// should have been caught before code generation.
type UnsupportedError struct {
	Kind   Kind
	Target Target
	Real   bool
}

func (ue *UnsupportedError) Error() string {
	operand := "integer"
	if ue.Real {
		operand = "real"
	}

	return fmt.Sprintf("operator `%s` is not supported on %s operands by the %s target", codegenTable[ue.Kind].symbol, operand, ue.Target)
}

// Emit returns the textual identifier of k on target for the given operand
// type.  It reports false if the target has no such form: the caller must turn
// that into an *UnsupportedError.
func Emit(k Kind, target Target, real bool) (string, bool) {
	d := Lookup(k, false)

	switch target {
	case TargetVector:
		return d.Vector(real)
	case TargetScalar:
		return d.Scalar(real)
	case TargetLLVM:
		if in, ok := d.LLVM(real); ok {
			return in.Name, true
		}
	case TargetInterp:
		if op, ok := d.Interp(real); ok {
			return op.String(), true
		}
	case TargetWASM:
		return d.WASM(real)
	}

	return "", false
}

// LLVM returns the LLVM lowering of k for the given operand type.
func LLVM(k Kind, real bool) (LLVMInst, bool) {
	return Lookup(k, false).LLVM(real)
}

// Interp returns the interpreter opcode of k for the given operand type.
func Interp(k Kind, real bool) (fir.Opcode, bool) {
	return Lookup(k, false).Interp(real)
}

// WASM returns the portable module mnemonic of k for the given operand type.
func WASM(k Kind, real bool) (string, bool) {
	return Lookup(k, false).WASM(real)
}

// Vector returns the name of k in a vectorized native body.
func Vector(k Kind, real bool) (string, bool) {
	return Lookup(k, false).Vector(real)
}

// Scalar returns the name of k in a single-sample native body.
func Scalar(k Kind, real bool) (string, bool) {
	return Lookup(k, false).Scalar(real)
}
