package wasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/signals"
)

// writer converts the outputs of a compilation unit into a module in the
// portable text format.  Each output becomes an exported function taking
// every input and then every parameter as arguments.
type writer struct {
	graph     *signals.Graph
	precision common.Precision

	sb *strings.Builder
}

// fnState is the per-function emission state.
type fnState struct {
	counts map[*signals.Node]int

	// locals maps shared nodes to the local holding their value once it has
	// been computed.
	locals map[*signals.Node]string

	// localNames and localTypes list every local in declaration order.
	localNames []string
	localTypes []string

	// taken holds the parameter names: locals must not shadow them.
	taken map[string]struct{}

	body []string
}

// Write generates the module text for g.  An operator without a mnemonic for
// its operand type yields a *binop.UnsupportedError.
func Write(g *signals.Graph, precision common.Precision) (string, error) {
	w := &writer{graph: g, precision: precision, sb: &strings.Builder{}}

	fmt.Fprintf(w.sb, ";; unit %s\n(module\n", g.Name)

	for _, out := range g.Outputs {
		if err := w.writeFunc(out); err != nil {
			return "", err
		}
	}

	w.sb.WriteString(")\n")
	return w.sb.String(), nil
}

// valType returns the value type of a signal type.
func (w *writer) valType(typ signals.Type) string {
	switch {
	case typ == signals.Int:
		return "i32"
	case w.precision == common.Double:
		return "f64"
	default:
		return "f32"
	}
}

// realMnemonic adapts a real mnemonic to the selected precision.
func (w *writer) realMnemonic(m string) string {
	if w.precision == common.Double {
		return strings.Replace(m, "f32.", "f64.", 1)
	}

	return m
}

func (w *writer) writeFunc(out signals.Output) error {
	st := &fnState{
		counts: signals.UseCounts([]*signals.Node{out.Node}),
		locals: make(map[*signals.Node]string),
		taken:  make(map[string]struct{}),
	}

	for _, in := range w.graph.Inputs {
		st.taken[signals.InputName(in.Index())] = struct{}{}
	}

	for _, p := range w.graph.Params {
		st.taken[p.Name()] = struct{}{}
	}

	if err := w.genNode(st, out.Node); err != nil {
		return err
	}

	fmt.Fprintf(w.sb, "  (func $%s (export %q)", out.Name, out.Name)

	for _, in := range w.graph.Inputs {
		fmt.Fprintf(w.sb, " (param $%s %s)", signals.InputName(in.Index()), w.valType(in.Type()))
	}

	for _, p := range w.graph.Params {
		fmt.Fprintf(w.sb, " (param $%s %s)", p.Name(), w.valType(p.Type()))
	}

	fmt.Fprintf(w.sb, " (result %s)\n", w.valType(out.Node.Type()))

	for i, typ := range st.localTypes {
		fmt.Fprintf(w.sb, "    (local $%s %s)\n", st.localNames[i], typ)
	}

	for _, line := range st.body {
		w.sb.WriteString("    ")
		w.sb.WriteString(line)
		w.sb.WriteRune('\n')
	}

	w.sb.WriteString("  )\n")
	return nil
}

// genNode pushes the value of n on the stack.
func (w *writer) genNode(st *fnState, n *signals.Node) error {
	if local, ok := st.locals[n]; ok {
		st.body = append(st.body, "local.get $"+local)
		return nil
	}

	switch n.Tag() {
	case signals.TagInt:
		v, _ := n.IntValue()
		st.body = append(st.body, "i32.const "+strconv.Itoa(int(v)))
	case signals.TagReal:
		v, _ := n.RealValue()
		st.body = append(st.body, fmt.Sprintf("%s.const %s", w.valType(signals.Real), formatReal(v, w.precision)))
	case signals.TagInput:
		st.body = append(st.body, "local.get $"+signals.InputName(n.Index()))
	case signals.TagParam:
		st.body = append(st.body, "local.get $"+n.Name())
	case signals.TagBinOp:
		real := n.OperandsReal()

		mnemonic, ok := binop.WASM(n.Op(), real)
		if !ok {
			return &binop.UnsupportedError{Kind: n.Op(), Target: binop.TargetWASM, Real: real}
		}

		for _, operand := range []*signals.Node{n.Left(), n.Right()} {
			if err := w.genNode(st, operand); err != nil {
				return err
			}

			if real && operand.Type() == signals.Int {
				st.body = append(st.body, w.valType(signals.Real)+".convert_i32_s")
			}
		}

		if real {
			mnemonic = w.realMnemonic(mnemonic)
		}

		st.body = append(st.body, mnemonic)

		if st.counts[n] > 1 {
			local := st.newLocal()
			st.localNames = append(st.localNames, local)
			st.localTypes = append(st.localTypes, w.valType(n.Type()))
			st.locals[n] = local
			st.body = append(st.body, "local.tee $"+local)
		}
	}

	return nil
}

// newLocal returns the name of a new local: the first `t<N>` that is neither
// a parameter nor an existing local.
func (st *fnState) newLocal() string {
	for i := len(st.localNames); ; i++ {
		name := "t" + strconv.Itoa(i)
		if _, ok := st.taken[name]; !ok {
			st.taken[name] = struct{}{}
			return name
		}
	}
}

// formatReal formats a real constant.  Non-finite values use the text format
// keywords.
func formatReal(v float64, precision common.Precision) string {
	bits := 64
	if precision == common.Single {
		bits = 32
	}

	s := strconv.FormatFloat(v, 'g', -1, bits)
	switch s {
	case "+Inf":
		return "inf"
	case "-Inf":
		return "-inf"
	case "NaN":
		return "nan"
	}

	return s
}
