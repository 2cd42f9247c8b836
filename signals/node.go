package signals

import (
	"fmt"

	"github.com/jcelerier/faust/binop"
)

// Tag identifies the shape of a signal node.
type Tag int

// Enumeration of node tags.
const (
	TagInt   Tag = iota // integer literal
	TagReal             // real literal
	TagInput            // audio input
	TagParam            // named control
	TagBinOp            // binary operator applied to two signals
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "int"
	case TagReal:
		return "real"
	case TagInput:
		return "input"
	case TagParam:
		return "param"
	case TagBinOp:
		return "binop"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Type is the numeric domain of a signal.
type Type int

// Enumeration of signal types.
const (
	Int Type = iota
	Real
)

func (t Type) String() string {
	if t == Real {
		return "real"
	}

	return "int"
}

// Node is an immutable signal.  Nodes are only created by a Pool and two nodes
// of the same pool are structurally equal if and only if they are the same
// pointer.
type Node struct {
	tag Tag

	// id is the creation index of the node within its pool.  Children always
	// have a smaller id than their parents.
	id int

	typ Type

	ival  int32
	rval  float64
	index int
	name  string

	op   binop.Kind
	x, y *Node
}

// Tag returns the shape of the node.
func (n *Node) Tag() Tag { return n.tag }

// ID returns the creation index of the node within its pool.
func (n *Node) ID() int { return n.id }

// IntValue returns the value of an integer literal.
func (n *Node) IntValue() (int32, bool) { return n.ival, n.tag == TagInt }

// RealValue returns the value of a real literal.
func (n *Node) RealValue() (float64, bool) { return n.rval, n.tag == TagReal }

// Index returns the input number of an input node.
func (n *Node) Index() int { return n.index }

// Name returns the name of a parameter node.
func (n *Node) Name() string { return n.name }

// Op returns the operator of a binop node.
func (n *Node) Op() binop.Kind { return n.op }

// Left returns the left operand of a binop node.
func (n *Node) Left() *Node { return n.x }

// Right returns the right operand of a binop node.
func (n *Node) Right() *Node { return n.y }

// IsLiteral reports whether the node is an integer or real literal.
func (n *Node) IsLiteral() bool {
	return n.tag == TagInt || n.tag == TagReal
}

// Type returns the numeric domain of the signal.  Comparisons are always
// integer typed.  Any other operator is real typed as soon as one of its
// operands is.
func (n *Node) Type() Type { return n.typ }

// OperandsReal reports whether the operator of a binop node works on real
// operands.  This is the operand type backends look operators up with.
func (n *Node) OperandsReal() bool {
	return n.x.Type() == Real || n.y.Type() == Real
}
