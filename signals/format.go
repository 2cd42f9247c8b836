package signals

import (
	"strconv"
	"strings"

	"github.com/jcelerier/faust/binop"
)

// FormatReal formats a real literal so that it always reads back as a real:
// `2` is written `2.0`.
func FormatReal(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}

	return s + ".0"
}

// String renders the signal as an infix expression using the source operator
// symbols.  Shared sub-expressions are repeated.
func (n *Node) String() string {
	sb := &strings.Builder{}
	n.write(sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.tag {
	case TagInt:
		sb.WriteString(strconv.Itoa(int(n.ival)))
	case TagReal:
		sb.WriteString(FormatReal(n.rval))
	case TagInput:
		sb.WriteString(InputName(n.index))
	case TagParam:
		sb.WriteString(n.name)
	case TagBinOp:
		n.writeOperand(sb, n.x, false)
		sb.WriteRune(' ')
		sb.WriteString(binop.Lookup(n.op, false).Symbol())
		sb.WriteRune(' ')
		n.writeOperand(sb, n.y, true)
	}
}

func (n *Node) writeOperand(sb *strings.Builder, child *Node, right bool) {
	if child.tag == TagBinOp && binop.NeedsParens(n.op, child.op, right, false) {
		sb.WriteRune('(')
		child.write(sb)
		sb.WriteRune(')')
	} else {
		child.write(sb)
	}
}

// InputName returns the name of audio input i in every rendering.
func InputName(i int) string {
	return "in" + strconv.Itoa(i)
}
