package binop

import "fmt"

// Kind identifies a binary operator.  The declaration order matters: the
// classification predicates below are defined over contiguous ranges of it.
type Kind int

// Enumeration of operator kinds.
const (
	Add Kind = iota
	Sub
	Mul
	Div
	Rem

	Lsh
	Rsh

	GT
	LT
	GE
	LE
	EQ
	NE

	And
	Or
	Xor

	// NumKinds is the number of operator kinds: every table is this long.
	NumKinds int = iota
)

var kindNames = [NumKinds]string{
	"add", "sub", "mul", "div", "rem",
	"lsh", "rsh",
	"gt", "lt", "ge", "le", "eq", "ne",
	"and", "or", "xor",
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Valid reports whether k is one of the enumerated kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < NumKinds
}

// KindError is the panic value raised when an operator kind outside the
// enumeration reaches a table lookup.  This is always a bug in the caller.
type KindError struct {
	Kind Kind
}

func (ke *KindError) Error() string {
	return fmt.Sprintf("invalid binary operator kind %d", int(ke.Kind))
}

// mustValid panics with a *KindError if k is not a valid kind.
func mustValid(k Kind) {
	if !k.Valid() {
		panic(&KindError{Kind: k})
	}
}

// FromSymbol returns the kind whose canonical symbol is sym.
func FromSymbol(sym string) (Kind, bool) {
	for i := range codegenTable {
		if codegenTable[i].symbol == sym {
			return Kind(i), true
		}
	}

	return 0, false
}

// -----------------------------------------------------------------------------

// IsArithmetic reports whether k is one of add, sub, mul, div and rem.
func IsArithmetic(k Kind) bool {
	mustValid(k)
	return k >= Add && k <= Rem
}

// IsShift reports whether k is a shift.
func IsShift(k Kind) bool {
	mustValid(k)
	return k >= Lsh && k <= Rsh
}

// IsBoolResult reports whether k is a comparison: its result is a boolean
// regardless of the operand type.
func IsBoolResult(k Kind) bool {
	mustValid(k)
	return k >= GT && k <= NE
}

// IsLogical reports whether k is one of the bitwise operators and, or, xor.
func IsLogical(k Kind) bool {
	mustValid(k)
	return k >= And && k <= Xor
}

// IsCommutative reports whether swapping the operands of k never changes the
// result.
func IsCommutative(k Kind) bool {
	mustValid(k)

	switch k {
	case Add, Mul, EQ, NE, And, Or, Xor:
		return true
	}

	return false
}

// IsAssociative reports whether (a k b) k c == a k (b k c).  Equality and
// inequality are commutative but not associative.
func IsAssociative(k Kind) bool {
	mustValid(k)

	switch k {
	case Add, Mul, And, Or, Xor:
		return true
	}

	return false
}
