package binop

// Build constructs the signal `x k y` and simplifies it on the way.  The rules
// are tried in order and the first that applies wins:
//
//  1. both operands are literals of the same numeric domain: fold them
//  2. x is a left neutral element: return y
//  3. y is a right neutral element: return x
//  4. x is a left absorbing element: return x
//  5. y is a right absorbing element: return y
//  6. otherwise: allocate the symbolic node through f
//
// Build is total: it never fails on valid operands.  Division and remainder by
// a literal zero are never folded and yield a symbolic node.
func Build(f Factory, k Kind, x, y Node) Node {
	d := Lookup(k, false)

	switch {
	case foldable(x, y):
		return d.Combine(f, x, y)
	case d.IsLeftNeutral(x):
		return y
	case d.IsRightNeutral(y):
		return x
	case d.IsLeftAbsorbing(x):
		return x
	case d.IsRightAbsorbing(y):
		return y
	}

	return f.BinOp(k, x, y)
}
