package signals

// Output is a named signal computed by a compilation unit.
type Output struct {
	Name string
	Node *Node
}

// Graph is everything a backend needs to compile a unit: its outputs and the
// inputs and parameters they may read.
type Graph struct {
	Name    string
	Outputs []Output

	// Inputs and Params are every declared input and parameter, whether or not
	// an output uses them: they form the signature of generated code.
	Inputs []*Node
	Params []*Node
}

// Graph snapshots the pool into a graph computing outputs.  Every input and
// parameter created in the pool so far is part of the graph.
func (p *Pool) Graph(name string, outputs []Output) *Graph {
	return &Graph{
		Name:    name,
		Outputs: outputs,
		Inputs:  p.Inputs(),
		Params:  p.Params(),
	}
}

// Roots returns the nodes of the outputs in order.
func (g *Graph) Roots() []*Node {
	roots := make([]*Node, len(g.Outputs))
	for i, out := range g.Outputs {
		roots[i] = out.Node
	}

	return roots
}
