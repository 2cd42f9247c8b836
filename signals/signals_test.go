package signals

import (
	"math"
	"testing"

	"github.com/jcelerier/faust/binop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolSharing(t *testing.T) {
	p := NewPool()

	assert.Same(t, p.Int(3), p.Int(3))
	assert.Same(t, p.Real(0.5), p.Real(0.5))
	assert.NotSame(t, p.Real(0), p.Real(math.Copysign(0, -1)))
	assert.Same(t, p.Real(math.NaN()), p.Real(math.NaN()))
	assert.Same(t, p.Input(1), p.Input(1))
	assert.Same(t, p.Param("g", Real), p.Param("g", Real))

	x, y := p.Input(0), p.Input(1)
	assert.Same(t, p.BinOp(binop.Sub, x, y), p.BinOp(binop.Sub, x, y))
	assert.NotSame(t, p.BinOp(binop.Sub, x, y), p.BinOp(binop.Sub, y, x))

	before := p.Len()
	p.Build(binop.Add, x, y)
	p.Build(binop.Add, x, y)
	assert.Equal(t, before+1, p.Len())
}

func TestPoolInputsAndParams(t *testing.T) {
	p := NewPool()

	p.Input(2)
	p.Param("b", Int)
	p.Input(0)
	p.Param("a", Real)
	p.Input(2)

	inputs := p.Inputs()
	require.Len(t, inputs, 2)
	assert.Equal(t, 0, inputs[0].Index())
	assert.Equal(t, 2, inputs[1].Index())

	params := p.Params()
	require.Len(t, params, 2)
	assert.Equal(t, "b", params[0].Name())
	assert.Equal(t, "a", params[1].Name())
}

func TestNodeType(t *testing.T) {
	p := NewPool()
	x := p.Input(0)
	n := p.Param("n", Int)
	g := p.Param("g", Real)

	assert.Equal(t, Int, p.Int(1).Type())
	assert.Equal(t, Real, p.Real(1).Type())
	assert.Equal(t, Real, x.Type())
	assert.Equal(t, Int, n.Type())
	assert.Equal(t, Real, g.Type())

	assert.Equal(t, Int, p.BinOp(binop.Add, n, p.Int(2)).Type())
	assert.Equal(t, Real, p.BinOp(binop.Add, n, x).Type())
	assert.Equal(t, Int, p.BinOp(binop.LT, x, g).Type())

	cmp := p.BinOp(binop.GE, x, g)
	assert.True(t, cmp.OperandsReal())
	assert.False(t, p.BinOp(binop.Mul, cmp, n).OperandsReal())
}

func TestWalk(t *testing.T) {
	p := NewPool()
	x, y := p.Input(0), p.Input(1)
	s := p.BinOp(binop.Add, x, y)
	m := p.BinOp(binop.Mul, s, s)
	d := p.BinOp(binop.Sub, m, x)

	var order []*Node
	Walk([]*Node{d, s}, func(n *Node) {
		order = append(order, n)
	})

	assert.Equal(t, []*Node{x, y, s, m, d}, order)

	counts := UseCounts([]*Node{d, s})
	assert.Equal(t, 2, counts[x])
	assert.Equal(t, 1, counts[y])
	assert.Equal(t, 3, counts[s])
	assert.Equal(t, 1, counts[m])
	assert.Equal(t, 1, counts[d])
}

func TestString(t *testing.T) {
	p := NewPool()
	x, y, z := p.Input(0), p.Input(1), p.Param("gain", Real)

	cases := []struct {
		n    *Node
		want string
	}{
		{p.Int(-3), "-3"},
		{p.Real(2), "2.0"},
		{p.Real(0.25), "0.25"},
		{p.Real(1e300), "1e+300"},
		{p.Real(math.Inf(1)), "+Inf"},
		{p.BinOp(binop.Mul, p.BinOp(binop.Add, x, y), z), "(in0 + in1) * gain"},
		{p.BinOp(binop.Add, x, p.BinOp(binop.Mul, y, z)), "in0 + in1 * gain"},
		{p.BinOp(binop.Add, p.BinOp(binop.Add, x, y), z), "in0 + in1 + gain"},
		{p.BinOp(binop.Add, x, p.BinOp(binop.Add, y, z)), "in0 + in1 + gain"},
		{p.BinOp(binop.Sub, x, p.BinOp(binop.Sub, y, z)), "in0 - (in1 - gain)"},
		{p.BinOp(binop.Sub, p.BinOp(binop.Sub, x, y), z), "in0 - in1 - gain"},
		{p.BinOp(binop.Div, x, p.BinOp(binop.Rem, y, z)), "in0 / (in1 % gain)"},
		{p.BinOp(binop.LT, p.BinOp(binop.Add, x, y), z), "in0 + in1 < gain"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.n.String())
	}
}
