package unit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/signals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixerUnit = `
[unit]
name = "mixer"
inputs = 2
outputs = ["out", "gate"]

[[unit.params]]
name = "gain"
type = "real"

[[unit.params]]
name = "steps"
type = "int"

[[unit.signals]]
name = "mix"
op = "+"
left = "in0"
right = "in1"

[[unit.signals]]
name = "out"
op = "*"
left = "mix"
right = "gain"

[[unit.signals]]
name = "gate"
op = ">"
left = "in0"
right = "0.5"

[[unit.signals]]
name = "unused"
op = "<<"
left = "steps"
right = "2"

[[profiles]]
name = "debug"
default = true
targets = ["interp", "native"]

[[profiles]]
name = "release"
precision = "double"
targets = ["llvm", "wasm"]
output = "build"
`

func writeUnit(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mixer"+common.UnitFileExt)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	path := writeUnit(t, mixerUnit)

	u, prof, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "mixer", u.Name)
	assert.Equal(t, 2, u.Inputs)
	assert.Equal(t, []string{"out", "gate"}, u.Outputs)
	assert.Equal(t, []Param{{Name: "gain", Type: signals.Real}, {Name: "steps", Type: signals.Int}}, u.Params)
	require.Len(t, u.Signals, 4)
	assert.Equal(t, Signal{Name: "gate", Op: binop.GT, Left: "in0", Right: "0.5"}, u.Signals[2])
	assert.Equal(t, []string{"unused"}, u.UnusedSignals())

	assert.Equal(t, "debug", prof.Name)
	assert.Equal(t, common.Single, prof.Precision)
	assert.Equal(t, []string{TargetInterp, TargetNative}, prof.Targets)
	assert.Equal(t, filepath.Join(filepath.Dir(path), common.DefaultOutputDir), prof.OutputDir)

	_, prof, err = Load(path, "release")
	require.NoError(t, err)

	assert.Equal(t, common.Double, prof.Precision)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "build"), prof.OutputDir)
}

func TestLoadErrors(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.sig.toml"), "")
	require.Error(t, err)

	_, _, err = Load(writeUnit(t, "[unit\n"), "")
	require.Error(t, err)

	_, _, err = Load(writeUnit(t, mixerUnit), "profiling")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "profiling")

	profile := "\n[[profiles]]\nname = \"debug\"\ntargets = [\"interp\"]\n"

	cases := []struct {
		name    string
		content string
	}{
		{"no unit", profile},
		{"bad name", "[unit]\nname = \"1x\"\noutputs = [\"a\"]\n" + profile},
		{"no outputs", "[unit]\nname = \"u\"\n" + profile},
		{"undeclared output", "[unit]\nname = \"u\"\noutputs = [\"a\"]\n" + profile},
		{"unknown operator", `
[unit]
name = "u"
inputs = 1
outputs = ["a"]

[[unit.signals]]
name = "a"
op = "**"
left = "in0"
right = "in0"
` + profile},
		{"undeclared operand", `
[unit]
name = "u"
inputs = 1
outputs = ["a"]

[[unit.signals]]
name = "a"
op = "+"
left = "in1"
right = "in0"
` + profile},
		{"self reference", `
[unit]
name = "u"
inputs = 1
outputs = ["a"]

[[unit.signals]]
name = "a"
op = "+"
left = "a"
right = "in0"
` + profile},
		{"malformed literal", `
[unit]
name = "u"
inputs = 1
outputs = ["a"]

[[unit.signals]]
name = "a"
op = "+"
left = "1.2.3"
right = "in0"
` + profile},
		{"int literal out of range", `
[unit]
name = "u"
inputs = 1
outputs = ["a"]

[[unit.signals]]
name = "a"
op = "+"
left = "4294967296"
right = "in0"
` + profile},
		{"redeclared input", `
[unit]
name = "u"
inputs = 1
outputs = ["in0"]

[[unit.params]]
name = "in0"
` + profile},
		{"unknown param type", `
[unit]
name = "u"
outputs = ["p"]

[[unit.params]]
name = "p"
type = "complex"
` + profile},
		{"keyword param", `
[unit]
name = "u"
outputs = ["int"]

[[unit.params]]
name = "int"
type = "int"
` + profile},
		{"libm param", `
[unit]
name = "u"
outputs = ["fmodf"]

[[unit.params]]
name = "fmodf"
` + profile},
		{"loop variable signal", `
[unit]
name = "u"
inputs = 1
outputs = ["count"]

[[unit.signals]]
name = "count"
op = "+"
left = "in0"
right = "1"
` + profile},
		{"no profiles", "[unit]\nname = \"u\"\ninputs = 1\noutputs = [\"in0\"]\n"},
		{"unknown target", "[unit]\nname = \"u\"\ninputs = 1\noutputs = [\"in0\"]\n\n[[profiles]]\nname = \"p\"\ntargets = [\"jvm\"]\n"},
		{"duplicate target", "[unit]\nname = \"u\"\ninputs = 1\noutputs = [\"in0\"]\n\n[[profiles]]\nname = \"p\"\ntargets = [\"llvm\", \"llvm\"]\n"},
		{"no targets", "[unit]\nname = \"u\"\ninputs = 1\noutputs = [\"in0\"]\n\n[[profiles]]\nname = \"p\"\n"},
		{"unknown precision", "[unit]\nname = \"u\"\ninputs = 1\noutputs = [\"in0\"]\n\n[[profiles]]\nname = \"p\"\nprecision = \"half\"\ntargets = [\"llvm\"]\n"},
		{"no default", "[unit]\nname = \"u\"\ninputs = 1\noutputs = [\"in0\"]\n\n[[profiles]]\nname = \"a\"\ntargets = [\"llvm\"]\n\n[[profiles]]\nname = \"b\"\ntargets = [\"llvm\"]\n"},
		{"ambiguous default", "[unit]\nname = \"u\"\ninputs = 1\noutputs = [\"in0\"]\n\n[[profiles]]\nname = \"a\"\ndefault = true\ntargets = [\"llvm\"]\n\n[[profiles]]\nname = \"b\"\ndefault = true\ntargets = [\"llvm\"]\n"},
	}

	for _, tc := range cases {
		_, _, err := Load(writeUnit(t, tc.content), "")

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, tc.name)
	}
}

func TestLoadReservedName(t *testing.T) {
	content := "[unit]\nname = \"u\"\noutputs = [\"dst\"]\n\n[[unit.params]]\nname = \"dst\"\n" +
		"\n[[profiles]]\nname = \"debug\"\ntargets = [\"interp\"]\n"

	_, _, err := Load(writeUnit(t, content), "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "`dst` is reserved")
}

func TestSelectPrimaryDefault(t *testing.T) {
	content := "[unit]\nname = \"u\"\ninputs = 1\noutputs = [\"in0\"]\n\n" +
		"[[profiles]]\nname = \"a\"\ndefault = true\ntargets = [\"llvm\"]\n\n" +
		"[[profiles]]\nname = \"b\"\ndefault = true\nprimary = true\ntargets = [\"wasm\"]\n"

	_, prof, err := Load(writeUnit(t, content), "")
	require.NoError(t, err)
	assert.Equal(t, "b", prof.Name)
}

func TestBuild(t *testing.T) {
	u, _, err := Load(writeUnit(t, mixerUnit), "")
	require.NoError(t, err)

	pool := signals.NewPool()
	g, err := u.Build(pool)
	require.NoError(t, err)

	assert.Equal(t, "mixer", g.Name)
	require.Len(t, g.Outputs, 2)
	assert.Equal(t, "out", g.Outputs[0].Name)
	assert.Equal(t, "(in0 + in1) * gain", g.Outputs[0].Node.String())
	assert.Equal(t, "in0 > 0.5", g.Outputs[1].Node.String())

	// every declared input and parameter is part of the signature
	assert.Len(t, g.Inputs, 2)
	assert.Len(t, g.Params, 2)
}

func TestBuildSimplifies(t *testing.T) {
	u := &Unit{
		Name:    "fold",
		Inputs:  1,
		Outputs: []string{"a", "b", "c"},
		Signals: []Signal{
			{Name: "a", Op: binop.Mul, Left: "in0", Right: "1"},
			{Name: "b", Op: binop.Add, Left: "2", Right: "3"},
			{Name: "c", Op: binop.Div, Left: "1.0", Right: "0.0"},
		},
	}

	pool := signals.NewPool()
	g, err := u.Build(pool)
	require.NoError(t, err)

	assert.Same(t, pool.Input(0), g.Outputs[0].Node)
	assert.Same(t, pool.Int(5), g.Outputs[1].Node)

	// a literal zero divisor is never folded
	assert.Equal(t, signals.TagBinOp, g.Outputs[2].Node.Tag())
}

func TestBuildUnknownOperand(t *testing.T) {
	u := &Unit{
		Name:    "bad",
		Outputs: []string{"a"},
		Signals: []Signal{{Name: "a", Op: binop.Add, Left: "x", Right: "1"}},
	}

	_, err := u.Build(signals.NewPool())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x")
}

func TestIsValidIdentifier(t *testing.T) {
	for _, id := range []string{"a", "_", "in0", "master_gain", "X9"} {
		assert.True(t, IsValidIdentifier(id), id)
	}

	for _, id := range []string{"", "0a", "a-b", "a.b", "é"} {
		assert.False(t, IsValidIdentifier(id), id)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	path, err := Init("synth", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "synth"+common.UnitFileExt), path)

	u, prof, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "synth", u.Name)
	assert.Equal(t, "debug", prof.Name)
	assert.Empty(t, u.UnusedSignals())

	_, prof, err = Load(path, "release")
	require.NoError(t, err)
	assert.Equal(t, common.Double, prof.Precision)

	_, err = Init("synth", dir)
	require.Error(t, err)

	_, err = Init("not-valid", dir)
	require.Error(t, err)
}
