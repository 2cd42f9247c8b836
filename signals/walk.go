package signals

// Walk calls fn on every node reachable from roots in post-order: operands
// before the operators using them.  Shared nodes are visited once.
func Walk(roots []*Node, fn func(n *Node)) {
	seen := make(map[*Node]struct{})

	var visit func(n *Node)
	visit = func(n *Node) {
		if _, ok := seen[n]; ok {
			return
		}

		seen[n] = struct{}{}

		if n.tag == TagBinOp {
			visit(n.x)
			visit(n.y)
		}

		fn(n)
	}

	for _, root := range roots {
		visit(root)
	}
}

// UseCounts returns the number of references to every node reachable from
// roots.  Each root counts as one reference and so does each operand slot.
// Backends use it to decide which sub-expressions to spill into temporaries.
func UseCounts(roots []*Node) map[*Node]int {
	counts := make(map[*Node]int)

	Walk(roots, func(n *Node) {
		if n.tag == TagBinOp {
			counts[n.x]++
			counts[n.y]++
		}
	})

	for _, root := range roots {
		counts[root]++
	}

	return counts
}
