package binop

import (
	"github.com/jcelerier/faust/fir"

	"github.com/llir/llvm/ir/enum"
)

// Node is the view of a signal that the operator algebra needs: whether it is
// a literal and, if so, its value.  Symbolic signals report false for both.
type Node interface {
	IntValue() (int32, bool)
	RealValue() (float64, bool)
}

// Factory allocates signals on behalf of the algebra.  BinOp must build a
// symbolic node without simplifying it: any sharing of structurally identical
// nodes is up to the factory.
type Factory interface {
	Int(v int32) Node
	Real(v float64) Node
	BinOp(k Kind, x, y Node) Node
}

// Predicate tests a single operand against an algebraic property of an
// operator (neutral or absorbing element).
type Predicate func(n Node) bool

// CombineFunc combines two operands of an operator.  It folds literal pairs of
// the same numeric domain and allocates a symbolic node otherwise.  It never
// fails.
type CombineFunc func(f Factory, x, y Node) Node

// -----------------------------------------------------------------------------

// LLVMOpcode selects the LLVM instruction an operator lowers to.
type LLVMOpcode int

// Enumeration of LLVM instructions used by binary operators.
const (
	InstAdd LLVMOpcode = iota
	InstFAdd
	InstSub
	InstFSub
	InstMul
	InstFMul
	InstSDiv
	InstFDiv
	InstSRem
	InstFRem
	InstShl
	InstAShr
	InstAnd
	InstOr
	InstXor
	InstICmp
	InstFCmp
)

// LLVMInst describes the LLVM lowering of an operator for one operand type.
type LLVMInst struct {
	// Name is the textual form of the instruction (eg. `add nsw`, `fcmp olt`).
	Name string

	// Opcode is the instruction to build.
	Opcode LLVMOpcode

	// NSW indicates that the instruction carries the `nsw` flag.
	NSW bool

	// IPred is the predicate of an `icmp` instruction.
	IPred enum.IPred

	// FPred is the predicate of an `fcmp` instruction.
	FPred enum.FPred
}

// slot is an optional per-target value.  The zero slot is absent.
type slot[T any] struct {
	v  T
	ok bool
}

// typed holds the integer and real form of a target identifier.
type typed[T any] [2]slot[T]

func (t typed[T]) get(real bool) (T, bool) {
	if real {
		return t[1].v, t[1].ok
	}

	return t[0].v, t[0].ok
}

// pair builds an identifier present for both operand types.
func pair[T any](i, r T) typed[T] {
	return typed[T]{{v: i, ok: true}, {v: r, ok: true}}
}

// both builds an identifier whose integer and real forms are the same.
func both[T any](v T) typed[T] {
	return pair(v, v)
}

// intOnly builds an identifier with no real form.
func intOnly[T any](i T) typed[T] {
	return typed[T]{{v: i, ok: true}, {}}
}

// naming is the part of a descriptor that differs between the code generation
// table and the display table.
type naming struct {
	symbol string

	vector typed[string]
	scalar typed[string]
	llvm   typed[LLVMInst]
	interp typed[fir.Opcode]
	wasm   typed[string]
}

// algebra is the part of a descriptor shared by both tables.
type algebra struct {
	combine CombineFunc

	leftNeutral, rightNeutral     Predicate
	leftAbsorbing, rightAbsorbing Predicate

	priority int
}

// Descriptor is the immutable record of one binary operator: its names for
// every backend and its algebraic properties.  Descriptors are obtained with
// Lookup and are safe to share.
type Descriptor struct {
	kind Kind
	naming
	alg *algebra
}

// Kind returns the operator kind described.
func (d Descriptor) Kind() Kind { return d.kind }

// Symbol returns the operator symbol: the source symbol in the code generation
// table and the typeset symbol in the display table.
func (d Descriptor) Symbol() string { return d.symbol }

// Priority returns the binding priority of the operator (higher binds
// tighter).
func (d Descriptor) Priority() int { return d.alg.priority }

// Combine combines x and y under the operator.  See CombineFunc.
func (d Descriptor) Combine(f Factory, x, y Node) Node { return d.alg.combine(f, x, y) }

// IsLeftNeutral reports whether n is a left neutral element of the operator.
func (d Descriptor) IsLeftNeutral(n Node) bool { return d.alg.leftNeutral(n) }

// IsRightNeutral reports whether n is a right neutral element of the operator.
func (d Descriptor) IsRightNeutral(n Node) bool { return d.alg.rightNeutral(n) }

// IsLeftAbsorbing reports whether n is a left absorbing element of the
// operator.
func (d Descriptor) IsLeftAbsorbing(n Node) bool { return d.alg.leftAbsorbing(n) }

// IsRightAbsorbing reports whether n is a right absorbing element of the
// operator.
func (d Descriptor) IsRightAbsorbing(n Node) bool { return d.alg.rightAbsorbing(n) }

// Vector returns the name of the operator in a vectorized loop body.
func (d Descriptor) Vector(real bool) (string, bool) { return d.vector.get(real) }

// Scalar returns the name of the operator in a single-sample body.
func (d Descriptor) Scalar(real bool) (string, bool) { return d.scalar.get(real) }

// LLVM returns the LLVM lowering of the operator for the given operand type.
func (d Descriptor) LLVM(real bool) (LLVMInst, bool) { return d.llvm.get(real) }

// Interp returns the interpreter opcode of the operator for the given operand
// type.
func (d Descriptor) Interp(real bool) (fir.Opcode, bool) { return d.interp.get(real) }

// WASM returns the module format mnemonic of the operator for the given operand
// type.  Real mnemonics use the 32-bit float prefix `f32.`.
func (d Descriptor) WASM(real bool) (string, bool) { return d.wasm.get(real) }
