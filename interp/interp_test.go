package interp

import (
	"math"
	"testing"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/fir"
	"github.com/jcelerier/faust/signals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndExec(t *testing.T) {
	p := signals.NewPool()
	in0, in1 := p.Input(0), p.Input(1)
	gain := p.Param("gain", signals.Real)
	steps := p.Param("steps", signals.Int)

	mix := p.Build(binop.Mul, p.Build(binop.Add, in0, in1), gain)
	scaled := p.Build(binop.Div, mix, steps)
	gate := p.Build(binop.GT, in0, p.Real(0.5))
	bits := p.Build(binop.And, p.Build(binop.Lsh, steps, p.Int(2)), p.Int(0xff))

	prog, err := Compile(p.Graph("test", []signals.Output{
		{Name: "mix", Node: mix},
		{Name: "scaled", Node: scaled},
		{Name: "gate", Node: gate},
		{Name: "bits", Node: bits},
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, prog.NumInputs)
	assert.Len(t, prog.Params, 2)

	outs, err := prog.Exec([]float64{0.25, 0.75}, map[string]float64{"gain": 2, "steps": 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0.5, 0, 16}, outs)

	outs, err = prog.Exec([]float64{1, 0}, map[string]float64{"gain": 0.5, "steps": 100})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.005, 1, 144}, outs)
}

func TestIntToRealSharedConversion(t *testing.T) {
	p := signals.NewPool()
	n := p.Param("n", signals.Int)
	x := p.Input(0)

	a := p.Build(binop.Add, n, x)
	b := p.Build(binop.Sub, x, n)

	prog, err := Compile(p.Graph("test", []signals.Output{{Name: "a", Node: a}, {Name: "b", Node: b}}))
	require.NoError(t, err)

	conversions := 0
	for _, in := range prog.Instrs {
		if in.Op == fir.IntToReal {
			conversions++
		}
	}

	assert.Equal(t, 1, conversions)

	outs, err := prog.Exec([]float64{0.5}, map[string]float64{"n": 3.9})
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, -2.5}, outs)
}

func TestExecTraps(t *testing.T) {
	p := signals.NewPool()
	n := p.Param("n", signals.Int)

	// division by a literal zero is left to the target
	div := p.Build(binop.Div, p.Int(7), p.Int(0))
	require.Equal(t, signals.TagBinOp, div.Tag())

	prog, err := Compile(p.Graph("test", []signals.Output{{Name: "div", Node: div}}))
	require.NoError(t, err)

	_, err = prog.Exec(nil, nil)
	var trap *TrapError
	require.ErrorAs(t, err, &trap)
	assert.Equal(t, fir.DivInt, trap.Op)

	rem := p.Build(binop.Rem, p.Int(7), n)
	prog, err = Compile(p.Graph("test", []signals.Output{{Name: "rem", Node: rem}}))
	require.NoError(t, err)

	outs, err := prog.Exec(nil, map[string]float64{"n": 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, outs)

	_, err = prog.Exec(nil, map[string]float64{"n": 0})
	require.ErrorAs(t, err, &trap)
	assert.Equal(t, fir.RemInt, trap.Op)

	// real division by zero follows IEEE
	fdiv := p.Build(binop.Div, p.Input(0), p.Real(0))
	prog, err = Compile(p.Graph("test", []signals.Output{{Name: "fdiv", Node: fdiv}}))
	require.NoError(t, err)

	outs, err = prog.Exec([]float64{1}, nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(outs[0], 1))
}

func TestCompileUnsupported(t *testing.T) {
	p := signals.NewPool()
	bad := p.Build(binop.Xor, p.Input(0), p.Input(1))

	_, err := Compile(p.Graph("test", []signals.Output{{Name: "bad", Node: bad}}))

	var ue *binop.UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, binop.Xor, ue.Kind)
	assert.Equal(t, binop.TargetInterp, ue.Target)
	assert.True(t, ue.Real)
}

func TestExecErrors(t *testing.T) {
	p := signals.NewPool()
	sum := p.Build(binop.Add, p.Input(1), p.Param("g", signals.Real))

	prog, err := Compile(p.Graph("test", []signals.Output{{Name: "sum", Node: sum}}))
	require.NoError(t, err)

	_, err = prog.Exec([]float64{1}, map[string]float64{"g": 1})
	assert.Error(t, err)

	_, err = prog.Exec([]float64{1, 2}, nil)
	assert.Error(t, err)
}

func TestDisassemble(t *testing.T) {
	p := signals.NewPool()
	e := p.Build(binop.Mul, p.Input(0), p.Real(0.5))

	prog, err := Compile(p.Graph("test", []signals.Output{{Name: "half", Node: e}}))
	require.NoError(t, err)

	want := "; out0 = half\n" +
		"r0 = input 0\n" +
		"r1 = real 0.5\n" +
		"r2 = mul.r r0, r1\n" +
		"ret out0, r2\n"
	assert.Equal(t, want, prog.String())
}
