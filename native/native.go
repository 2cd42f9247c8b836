package native

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/signals"
)

// Mode selects the shape of the generated C code.
type Mode int

// Enumeration of modes.
const (
	// Infix writes operators with their source symbols.  Every operation is
	// parenthesized: C precedences are not the ones of the signal language.
	Infix Mode = iota

	// Scalar writes one function per output computing a single sample with
	// the `*_scal` operator names.
	Scalar

	// Vector writes one function per output computing a block of samples in a
	// loop with the `*_vec` operator names.
	Vector
)

func (m Mode) String() string {
	switch m {
	case Infix:
		return "infix"
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// target returns the registry target whose names the mode uses.  Infix code
// has the same operand type constraints as scalar code.
func (m Mode) target() binop.Target {
	if m == Vector {
		return binop.TargetVector
	}

	return binop.TargetScalar
}

// vectorNames are the names vector functions declare besides their inputs and
// parameters.
var vectorNames = []string{"count", "frame", "dst"}

// reservedNames are the C keywords and the library names generated code
// refers to.
var reservedNames = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if", "inline",
	"int", "long", "register", "restrict", "return", "short", "signed",
	"sizeof", "static", "struct", "switch", "typedef", "union", "unsigned",
	"void", "volatile", "while", "_Bool", "_Complex", "_Imaginary",
	"fmod", "fmodf", "INFINITY", "NAN",
}

// IsReserved reports whether name cannot be used for an input, a parameter or
// an output in C code of any mode.
func IsReserved(name string) bool {
	for _, r := range reservedNames {
		if r == name {
			return true
		}
	}

	for _, r := range vectorNames {
		if r == name {
			return true
		}
	}

	return false
}

// writer converts the outputs of a compilation unit into C source.
type writer struct {
	graph     *signals.Graph
	precision common.Precision
	mode      Mode

	// macros are the operator macros used by the generated functions, keyed by
	// name.  Only scalar and vector code uses them.
	macros map[string]string

	funcs []string
}

// Write generates C source computing the outputs of g.  An operator without
// a form for its operand type yields a *binop.UnsupportedError.
func Write(g *signals.Graph, precision common.Precision, mode Mode) (string, error) {
	w := &writer{
		graph:     g,
		precision: precision,
		mode:      mode,
		macros:    make(map[string]string),
	}

	for _, out := range g.Outputs {
		fn, err := w.writeFunc(out)
		if err != nil {
			return "", err
		}

		w.funcs = append(w.funcs, fn)
	}

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "/* unit %s (%s) */\n\n#include <math.h>\n\n", g.Name, mode)

	if len(w.macros) > 0 {
		for _, k := range macroOrder(w.macros) {
			sb.WriteString(w.macros[k])
			sb.WriteRune('\n')
		}

		sb.WriteRune('\n')
	}

	sb.WriteString(strings.Join(w.funcs, "\n"))
	return sb.String(), nil
}

// -----------------------------------------------------------------------------

// cType returns the C type of a signal type.
func (w *writer) cType(typ signals.Type) string {
	switch {
	case typ == signals.Int:
		return "int"
	case w.precision == common.Double:
		return "double"
	default:
		return "float"
	}
}

// fmod returns the C library function computing real remainders.
func (w *writer) fmod() string {
	if w.precision == common.Double {
		return "fmod"
	}

	return "fmodf"
}

// signature returns the parameter list of a generated function.
func (w *writer) signature() []string {
	var params []string

	if w.mode == Vector {
		params = append(params, "int count")
	}

	for _, in := range w.graph.Inputs {
		if w.mode == Vector {
			params = append(params, fmt.Sprintf("const %s* %s", w.cType(in.Type()), signals.InputName(in.Index())))
		} else {
			params = append(params, fmt.Sprintf("%s %s", w.cType(in.Type()), signals.InputName(in.Index())))
		}
	}

	for _, p := range w.graph.Params {
		params = append(params, fmt.Sprintf("%s %s", w.cType(p.Type()), p.Name()))
	}

	return params
}

// funcState is the per-function emission state.
type funcState struct {
	// temps maps shared operator nodes to the temporary holding their value.
	temps map[*signals.Node]string

	// taken holds every name declared in the function: temporaries must not
	// shadow them.
	taken map[string]struct{}

	lines []string
}

func (w *writer) writeFunc(out signals.Output) (string, error) {
	st := &funcState{
		temps: make(map[*signals.Node]string),
		taken: make(map[string]struct{}),
	}

	for _, in := range w.graph.Inputs {
		st.taken[signals.InputName(in.Index())] = struct{}{}
	}

	for _, p := range w.graph.Params {
		st.taken[p.Name()] = struct{}{}
	}

	if w.mode == Vector {
		for _, name := range vectorNames {
			st.taken[name] = struct{}{}
		}
	}

	counts := signals.UseCounts([]*signals.Node{out.Node})

	var err error
	signals.Walk([]*signals.Node{out.Node}, func(n *signals.Node) {
		if err != nil || n.Tag() != signals.TagBinOp || n == out.Node || counts[n] < 2 {
			return
		}

		var expr string
		if expr, err = w.expr(st, n); err == nil {
			name := st.newTemp()
			st.lines = append(st.lines, fmt.Sprintf("%s %s = %s;", w.cType(n.Type()), name, expr))
			st.temps[n] = name
		}
	})

	if err != nil {
		return "", err
	}

	result, err := w.expr(st, out.Node)
	if err != nil {
		return "", err
	}

	sb := &strings.Builder{}
	params := w.signature()

	if w.mode == Vector {
		params = append(params, fmt.Sprintf("%s* dst", w.cType(out.Node.Type())))
		fmt.Fprintf(sb, "void %s(%s)\n{\n", out.Name, strings.Join(params, ", "))
		sb.WriteString("\tfor (int frame = 0; frame < count; frame++) {\n")

		for _, line := range st.lines {
			fmt.Fprintf(sb, "\t\t%s\n", line)
		}

		fmt.Fprintf(sb, "\t\tdst[frame] = %s;\n\t}\n}\n", result)
	} else {
		fmt.Fprintf(sb, "%s %s(%s)\n{\n", w.cType(out.Node.Type()), out.Name, strings.Join(params, ", "))

		for _, line := range st.lines {
			fmt.Fprintf(sb, "\t%s\n", line)
		}

		fmt.Fprintf(sb, "\treturn %s;\n}\n", result)
	}

	return sb.String(), nil
}

// newTemp returns the name of a new temporary: the first `t<N>` not declared
// in the function yet.
func (st *funcState) newTemp() string {
	for i := len(st.temps); ; i++ {
		name := "t" + strconv.Itoa(i)
		if _, ok := st.taken[name]; !ok {
			st.taken[name] = struct{}{}
			return name
		}
	}
}

// expr returns the C expression computing n.
func (w *writer) expr(st *funcState, n *signals.Node) (string, error) {
	if name, ok := st.temps[n]; ok {
		return name, nil
	}

	switch n.Tag() {
	case signals.TagInt:
		v, _ := n.IntValue()
		if v < 0 {
			return "(" + strconv.Itoa(int(v)) + ")", nil
		}

		return strconv.Itoa(int(v)), nil
	case signals.TagReal:
		v, _ := n.RealValue()
		return w.realLiteral(v), nil
	case signals.TagInput:
		if w.mode == Vector {
			return signals.InputName(n.Index()) + "[frame]", nil
		}

		return signals.InputName(n.Index()), nil
	case signals.TagParam:
		return n.Name(), nil
	}

	real := n.OperandsReal()
	k := n.Op()

	name, ok := binop.Emit(k, w.mode.target(), real)
	if !ok {
		return "", &binop.UnsupportedError{Kind: k, Target: w.mode.target(), Real: real}
	}

	x, err := w.operand(st, n.Left(), real)
	if err != nil {
		return "", err
	}

	y, err := w.operand(st, n.Right(), real)
	if err != nil {
		return "", err
	}

	if binop.IsShift(k) {
		y = shiftCount(n.Right(), y)
	}

	if w.mode == Infix {
		if k == binop.Rem && real {
			return fmt.Sprintf("%s(%s, %s)", w.fmod(), x, y), nil
		}

		return fmt.Sprintf("(%s %s %s)", x, binop.Lookup(k, false).Symbol(), y), nil
	}

	name = w.defineMacro(k, name, real)
	return fmt.Sprintf("%s(%s, %s)", name, x, y), nil
}

// operand returns the expression of an operand converted to the operand type
// of its operator.
func (w *writer) operand(st *funcState, n *signals.Node, real bool) (string, error) {
	e, err := w.expr(st, n)
	if err != nil {
		return "", err
	}

	if real && n.Type() == signals.Int {
		return fmt.Sprintf("(%s)%s", w.cType(signals.Real), e), nil
	}

	return e, nil
}

// shiftCount reduces a shift count modulo 32: C shifts by 32 or more are
// undefined.  Literal counts are reduced statically.
func shiftCount(n *signals.Node, e string) string {
	if c, ok := n.IntValue(); ok {
		return strconv.Itoa(int(c & 31))
	}

	return "(" + e + " & 31)"
}

// realLiteral formats a real constant as a C literal of the selected
// precision.
func (w *writer) realLiteral(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "INFINITY"
	case math.IsInf(v, -1):
		return "(-INFINITY)"
	case math.IsNaN(v):
		return "NAN"
	}

	s := signals.FormatReal(v)
	if w.precision == common.Single {
		s += "f"
	}

	if v < 0 {
		return "(" + s + ")"
	}

	return s
}

// defineMacro records the macro implementing an operator name and returns the
// macro name to call.  C operators serve integer and real operands alike, but
// the real remainder is the C library function and gets its own `_r` macro so
// integer remainders keep their type.
func (w *writer) defineMacro(k binop.Kind, name string, real bool) string {
	body := fmt.Sprintf("((a) %s (b))", binop.Lookup(k, false).Symbol())
	if k == binop.Rem && real {
		name += "_r"
		body = fmt.Sprintf("%s((a), (b))", w.fmod())
	}

	if _, ok := w.macros[name]; !ok {
		w.macros[name] = fmt.Sprintf("#define %s(a, b) %s", name, body)
	}

	return name
}

func macroOrder(macros map[string]string) []string {
	names := make([]string, 0, len(macros))
	for name := range macros {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
