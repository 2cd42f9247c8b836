package mathdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/signals"
)

// Write typesets the outputs of g as a LaTeX `align*` environment, one line per
// output.  Operators use the display table: its symbols and its priorities
// decide where parentheses go.  Division is set as a fraction.
func Write(g *signals.Graph) string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%% unit %s\n\\begin{align*}\n", g.Name)

	for i, out := range g.Outputs {
		fmt.Fprintf(sb, "y_{%s}(t) &= %s", ident(out.Name), Expr(out.Node))

		if i < len(g.Outputs)-1 {
			sb.WriteString(` \\`)
		}

		sb.WriteRune('\n')
	}

	sb.WriteString("\\end{align*}\n")
	return sb.String()
}

// Expr typesets a single signal.
func Expr(n *signals.Node) string {
	sb := &strings.Builder{}
	writeNode(sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n *signals.Node) {
	switch n.Tag() {
	case signals.TagInt:
		v, _ := n.IntValue()
		sb.WriteString(strconv.Itoa(int(v)))
	case signals.TagReal:
		v, _ := n.RealValue()
		sb.WriteString(realText(v))
	case signals.TagInput:
		fmt.Fprintf(sb, "x_{%d}(t)", n.Index())
	case signals.TagParam:
		sb.WriteString(ident(n.Name()))
	case signals.TagBinOp:
		if n.Op() == binop.Div {
			sb.WriteString(`\frac{`)
			writeNode(sb, n.Left())
			sb.WriteString("}{")
			writeNode(sb, n.Right())
			sb.WriteRune('}')
			return
		}

		writeOperand(sb, n, n.Left(), false)
		sb.WriteRune(' ')
		sb.WriteString(binop.Lookup(n.Op(), true).Symbol())
		sb.WriteRune(' ')
		writeOperand(sb, n, n.Right(), true)
	}
}

func writeOperand(sb *strings.Builder, parent, child *signals.Node, right bool) {
	parens := child.Tag() == signals.TagBinOp &&
		child.Op() != binop.Div &&
		binop.NeedsParens(parent.Op(), child.Op(), right, true)

	// a negative literal on the right reads as a binary minus
	if right {
		if v, ok := child.IntValue(); ok && v < 0 {
			parens = true
		} else if v, ok := child.RealValue(); ok && v < 0 {
			parens = true
		}
	}

	if parens {
		sb.WriteString(`\left(`)
		writeNode(sb, child)
		sb.WriteString(`\right)`)
	} else {
		writeNode(sb, child)
	}
}

// ident typesets a name as upright text.
func ident(name string) string {
	return `\mathrm{` + strings.ReplaceAll(name, "_", `\_`) + "}"
}

func realText(v float64) string {
	s := signals.FormatReal(v)

	switch s {
	case "+Inf":
		return `\infty`
	case "-Inf":
		return `-\infty`
	case "NaN":
		return `\mathrm{NaN}`
	}

	return s
}
