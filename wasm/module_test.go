package wasm

import (
	"strings"
	"testing"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/signals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteModule(t *testing.T) {
	p := signals.NewPool()
	x := p.Input(0)
	gain := p.Param("gain", signals.Real)

	g := p.Graph("amp", []signals.Output{
		{Name: "out", Node: p.Build(binop.Mul, x, gain)},
	})

	src, err := Write(g, common.Single)
	require.NoError(t, err)

	want := `;; unit amp
(module
  (func $out (export "out") (param $in0 f32) (param $gain f32) (result f32)
    local.get $in0
    local.get $gain
    f32.mul
  )
)
`
	assert.Equal(t, want, src)
}

func TestWriteSharedAndConversions(t *testing.T) {
	p := signals.NewPool()
	x := p.Input(0)
	n := p.Param("n", signals.Int)

	sq := p.Build(binop.Mul, x, x)
	e := p.Build(binop.Sub, p.Build(binop.Add, sq, n), sq)

	src, err := Write(p.Graph("shared", []signals.Output{{Name: "e", Node: e}}), common.Double)
	require.NoError(t, err)

	want := `;; unit shared
(module
  (func $e (export "e") (param $in0 f64) (param $n i32) (result f64)
    (local $t0 f64)
    local.get $in0
    local.get $in0
    f64.mul
    local.tee $t0
    local.get $n
    f64.convert_i32_s
    f64.add
    local.get $t0
    f64.sub
  )
)
`
	assert.Equal(t, want, src)
}

func TestWriteLocalsAvoidParams(t *testing.T) {
	p := signals.NewPool()
	x := p.Input(0)
	t0 := p.Param("t0", signals.Real)

	sq := p.Build(binop.Mul, x, x)
	e := p.Build(binop.Sub, p.Build(binop.Add, sq, t0), sq)

	src, err := Write(p.Graph("clash", []signals.Output{{Name: "e", Node: e}}), common.Single)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(src, "$t0 f32"))
	assert.Contains(t, src, "(local $t1 f32)")
	assert.Contains(t, src, "local.tee $t1\n")
	assert.Contains(t, src, "local.get $t0\n    f32.add\n    local.get $t1\n    f32.sub\n")
}

func TestWriteIntegerAndCompare(t *testing.T) {
	p := signals.NewPool()
	a := p.Param("a", signals.Int)
	x := p.Input(0)

	g := p.Graph("ops", []signals.Output{
		{Name: "r", Node: p.Build(binop.Rsh, a, p.Int(3))},
		{Name: "c", Node: p.Build(binop.LT, x, p.Real(0.5))},
	})

	src, err := Write(g, common.Single)
	require.NoError(t, err)
	assert.Contains(t, src, "i32.const 3\n    i32.shr_s\n")
	assert.Contains(t, src, "f32.const 0.5\n    f32.lt\n")
	assert.Contains(t, src, `(func $c (export "c") (param $in0 f32) (param $a i32) (result i32)`)
}

func TestWriteUnsupported(t *testing.T) {
	p := signals.NewPool()

	// the portable format has no real remainder
	g := p.Graph("bad", []signals.Output{
		{Name: "m", Node: p.Build(binop.Rem, p.Input(0), p.Real(2))},
	})

	_, err := Write(g, common.Single)

	var ue *binop.UnsupportedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, binop.Rem, ue.Kind)
	assert.True(t, ue.Real)
	assert.Equal(t, binop.TargetWASM, ue.Target)
}
