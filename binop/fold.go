package binop

import "math"

// Integer literals follow 32-bit two's complement arithmetic: results wrap,
// shift counts are taken modulo 32, right shifts are arithmetic and division
// truncates toward zero.  This is what every executable target does.

// intPair returns the values of x and y if both are integer literals.
func intPair(x, y Node) (a, b int32, ok bool) {
	if a, ok = x.IntValue(); ok {
		b, ok = y.IntValue()
	}

	return
}

// realPair returns the values of x and y if both are real literals.
func realPair(x, y Node) (a, b float64, ok bool) {
	if a, ok = x.RealValue(); ok {
		b, ok = y.RealValue()
	}

	return
}

// foldable reports whether x and y are literals of the same numeric domain.
func foldable(x, y Node) bool {
	if _, _, ok := intPair(x, y); ok {
		return true
	}

	_, _, ok := realPair(x, y)
	return ok
}

// arith builds the combine function of an arithmetic or bitwise operator. A
// nil real function means the operator has no real form and real literals are
// left symbolic.
func arith(k Kind, fi func(a, b int32) int32, fr func(a, b float64) float64) CombineFunc {
	return func(f Factory, x, y Node) Node {
		if a, b, ok := intPair(x, y); ok {
			return f.Int(fi(a, b))
		}

		if fr != nil {
			if a, b, ok := realPair(x, y); ok {
				return f.Real(fr(a, b))
			}
		}

		return f.BinOp(k, x, y)
	}
}

// compare builds the combine function of a comparison.  Comparisons always
// fold to the integer literals 0 and 1.
func compare(k Kind, ci func(a, b int32) bool, cr func(a, b float64) bool) CombineFunc {
	return func(f Factory, x, y Node) Node {
		if a, b, ok := intPair(x, y); ok {
			return f.Int(boolToInt(ci(a, b)))
		}

		if a, b, ok := realPair(x, y); ok {
			return f.Int(boolToInt(cr(a, b)))
		}

		return f.BinOp(k, x, y)
	}
}

// divide wraps the combine function of a division-like operator: a literal
// zero divisor is never folded.  The trap (or IEEE result) is the target's
// business at run time.
func divide(k Kind, inner CombineFunc) CombineFunc {
	return func(f Factory, x, y Node) Node {
		if isZero(y) {
			return f.BinOp(k, x, y)
		}

		return inner(f, x, y)
	}
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}

	return 0
}

// -----------------------------------------------------------------------------

// isZero holds for the literals 0 and 0.0.
func isZero(n Node) bool {
	if v, ok := n.IntValue(); ok {
		return v == 0
	}

	if v, ok := n.RealValue(); ok {
		return v == 0
	}

	return false
}

// isOne holds for the literals 1 and 1.0.
func isOne(n Node) bool {
	if v, ok := n.IntValue(); ok {
		return v == 1
	}

	if v, ok := n.RealValue(); ok {
		return v == 1
	}

	return false
}

// isMinusOne holds for the literals -1 (all bits set) and -1.0.
func isMinusOne(n Node) bool {
	if v, ok := n.IntValue(); ok {
		return v == -1
	}

	if v, ok := n.RealValue(); ok {
		return v == -1
	}

	return false
}

// never is the predicate of operators without the corresponding element.
func never(Node) bool {
	return false
}

// -----------------------------------------------------------------------------

func shiftCount(b int32) uint32 {
	return uint32(b) & 31
}

var (
	addNode = arith(Add,
		func(a, b int32) int32 { return a + b },
		func(a, b float64) float64 { return a + b },
	)
	subNode = arith(Sub,
		func(a, b int32) int32 { return a - b },
		func(a, b float64) float64 { return a - b },
	)
	mulNode = arith(Mul,
		func(a, b int32) int32 { return a * b },
		func(a, b float64) float64 { return a * b },
	)
	divNode = divide(Div, arith(Div,
		func(a, b int32) int32 { return a / b },
		func(a, b float64) float64 { return a / b },
	))
	remNode = divide(Rem, arith(Rem,
		func(a, b int32) int32 { return a % b },
		math.Mod,
	))

	lshNode = arith(Lsh, func(a, b int32) int32 { return a << shiftCount(b) }, nil)
	rshNode = arith(Rsh, func(a, b int32) int32 { return a >> shiftCount(b) }, nil)

	gtNode = compare(GT,
		func(a, b int32) bool { return a > b },
		func(a, b float64) bool { return a > b },
	)
	ltNode = compare(LT,
		func(a, b int32) bool { return a < b },
		func(a, b float64) bool { return a < b },
	)
	geNode = compare(GE,
		func(a, b int32) bool { return a >= b },
		func(a, b float64) bool { return a >= b },
	)
	leNode = compare(LE,
		func(a, b int32) bool { return a <= b },
		func(a, b float64) bool { return a <= b },
	)
	eqNode = compare(EQ,
		func(a, b int32) bool { return a == b },
		func(a, b float64) bool { return a == b },
	)
	neNode = compare(NE,
		func(a, b int32) bool { return a != b },
		func(a, b float64) bool { return a != b },
	)

	andNode = arith(And, func(a, b int32) int32 { return a & b }, nil)
	orNode  = arith(Or, func(a, b int32) int32 { return a | b }, nil)
	xorNode = arith(Xor, func(a, b int32) int32 { return a ^ b }, nil)
)
