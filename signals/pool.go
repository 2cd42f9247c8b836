package signals

import (
	"math"
	"sort"

	"github.com/jcelerier/faust/binop"
)

// key is the structural identity of a node.  Children are identified by their
// id: they are already shared, so pointer identity is structural identity.
type key struct {
	tag   Tag
	typ   Type
	ival  int32
	rbits uint64
	index int
	name  string
	op    binop.Kind
	x, y  int
}

// Pool allocates the signals of one compilation unit and shares structurally
// identical ones.  A Pool is not safe for concurrent use: every unit being
// compiled owns its own pool.
type Pool struct {
	table map[key]*Node
	nodes []*Node

	inputs []*Node
	params []*Node
}

// NewPool creates a new, empty pool.
func NewPool() *Pool {
	return &Pool{table: make(map[key]*Node)}
}

// intern returns the node with key k, creating it with mk if it does not
// exist yet.
func (p *Pool) intern(k key, mk func() *Node) *Node {
	if n, ok := p.table[k]; ok {
		return n
	}

	n := mk()
	n.id = len(p.nodes)
	p.table[k] = n
	p.nodes = append(p.nodes, n)
	return n
}

// Int returns the integer literal v.
func (p *Pool) Int(v int32) *Node {
	return p.intern(key{tag: TagInt, ival: v}, func() *Node {
		return &Node{tag: TagInt, typ: Int, ival: v}
	})
}

// Real returns the real literal v.  Literals are compared bitwise so 0.0 and
// -0.0 are distinct.
func (p *Pool) Real(v float64) *Node {
	return p.intern(key{tag: TagReal, typ: Real, rbits: math.Float64bits(v)}, func() *Node {
		return &Node{tag: TagReal, typ: Real, rval: v}
	})
}

// Input returns the audio input number i.  Inputs are real typed.
func (p *Pool) Input(i int) *Node {
	return p.intern(key{tag: TagInput, typ: Real, index: i}, func() *Node {
		n := &Node{tag: TagInput, typ: Real, index: i}
		p.inputs = append(p.inputs, n)
		return n
	})
}

// Param returns the control parameter name of type typ.
func (p *Pool) Param(name string, typ Type) *Node {
	return p.intern(key{tag: TagParam, typ: typ, name: name}, func() *Node {
		n := &Node{tag: TagParam, typ: typ, name: name}
		p.params = append(p.params, n)
		return n
	})
}

// BinOp returns the symbolic node `x k y` without simplifying it.  Use Build
// unless the exact shape of the graph matters.  x and y must belong to p.
func (p *Pool) BinOp(k binop.Kind, x, y *Node) *Node {
	typ := Int
	if !binop.IsBoolResult(k) && (x.typ == Real || y.typ == Real) {
		typ = Real
	}

	return p.intern(key{tag: TagBinOp, typ: typ, op: k, x: x.id, y: y.id}, func() *Node {
		return &Node{tag: TagBinOp, typ: typ, op: k, x: x, y: y}
	})
}

// Build returns the simplified signal `x k y`.  This is how every binary
// expression should be constructed.
func (p *Pool) Build(k binop.Kind, x, y *Node) *Node {
	return binop.Build(p.Factory(), k, x, y).(*Node)
}

// Factory returns the view of the pool used by the operator algebra.
func (p *Pool) Factory() binop.Factory {
	return factory{p}
}

// Len returns the number of distinct nodes in the pool.
func (p *Pool) Len() int {
	return len(p.nodes)
}

// Inputs returns the input nodes created so far ordered by input number.
func (p *Pool) Inputs() []*Node {
	inputs := append([]*Node(nil), p.inputs...)
	sort.Slice(inputs, func(i, j int) bool {
		return inputs[i].index < inputs[j].index
	})

	return inputs
}

// Params returns the parameter nodes in creation order.
func (p *Pool) Params() []*Node {
	return append([]*Node(nil), p.params...)
}

// -----------------------------------------------------------------------------

// factory adapts a pool to binop.Factory.
type factory struct {
	p *Pool
}

func (f factory) Int(v int32) binop.Node {
	return f.p.Int(v)
}

func (f factory) Real(v float64) binop.Node {
	return f.p.Real(v)
}

func (f factory) BinOp(k binop.Kind, x, y binop.Node) binop.Node {
	return f.p.BinOp(k, x.(*Node), y.(*Node))
}
