package mathdoc

import (
	"testing"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/signals"

	"github.com/stretchr/testify/assert"
)

func TestWrite(t *testing.T) {
	p := signals.NewPool()
	in0, in1 := p.Input(0), p.Input(1)
	gain := p.Param("master_gain", signals.Real)

	g := p.Graph("mixer", []signals.Output{
		{Name: "mix", Node: p.Build(binop.Mul, p.Build(binop.Add, in0, in1), gain)},
		{Name: "half", Node: p.Build(binop.Div, in0, p.Real(2))},
	})

	want := `% unit mixer
\begin{align*}
y_{\mathrm{mix}}(t) &= \left(x_{0}(t) + x_{1}(t)\right) * \mathrm{master\_gain} \\
y_{\mathrm{half}}(t) &= \frac{x_{0}(t)}{2.0}
\end{align*}
`
	assert.Equal(t, want, Write(g))
}

func TestExprSymbolsAndParens(t *testing.T) {
	p := signals.NewPool()
	a, b, c := p.Param("a", signals.Int), p.Param("b", signals.Int), p.Param("c", signals.Int)

	cases := []struct {
		n    *signals.Node
		want string
	}{
		{p.Build(binop.Rem, a, b), `\mathrm{a} \bmod \mathrm{b}`},
		{p.Build(binop.And, a, p.Build(binop.Or, b, c)), `\mathrm{a} \wedge \left(\mathrm{b} \vee \mathrm{c}\right)`},
		{p.Build(binop.Xor, p.Build(binop.Xor, a, b), c), `\mathrm{a} \veebar \mathrm{b} \veebar \mathrm{c}`},
		{p.Build(binop.Sub, a, p.Build(binop.Sub, b, c)), `\mathrm{a} - \left(\mathrm{b} - \mathrm{c}\right)`},
		{p.Build(binop.Lsh, a, p.Int(2)), `\mathrm{a} \hiderel{\ll} 2`},
		{p.Build(binop.NE, a, b), `\mathrm{a} \hiderel{\neq} \mathrm{b}`},
		{p.Build(binop.Add, a, p.Int(-1)), `\mathrm{a} + \left(-1\right)`},
		{p.Build(binop.Mul, p.Build(binop.Div, a, b), c), `\frac{\mathrm{a}}{\mathrm{b}} * \mathrm{c}`},
		{p.Build(binop.Div, p.Build(binop.Add, a, b), c), `\frac{\mathrm{a} + \mathrm{b}}{\mathrm{c}}`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Expr(tc.n))
	}
}
