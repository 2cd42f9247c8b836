package binop

// Priority returns the binding priority of k in the selected table.  Both
// tables store the same value.
func Priority(k Kind, display bool) int {
	return Lookup(k, display).Priority()
}

// NeedsParens reports whether the operand child of parent must be enclosed in
// parentheses when rendered as text.  A child binding looser than its parent
// always needs them.  On equal priority the left child never does and the
// right child does unless it is the same associative operator.
func NeedsParens(parent, child Kind, right, display bool) bool {
	pp, cp := Priority(parent, display), Priority(child, display)

	switch {
	case cp < pp:
		return true
	case cp > pp || !right:
		return false
	}

	return parent != child || !IsAssociative(parent)
}
