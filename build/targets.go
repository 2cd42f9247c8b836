package build

import (
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/interp"
	"github.com/jcelerier/faust/llvmgen"
	"github.com/jcelerier/faust/mathdoc"
	"github.com/jcelerier/faust/native"
	"github.com/jcelerier/faust/signals"
	"github.com/jcelerier/faust/unit"
	"github.com/jcelerier/faust/wasm"
)

// generator produces the output file of one target for a unit.
type generator struct {
	ext string
	gen func(g *signals.Graph, precision common.Precision) (string, error)
}

// generators maps each target name to its generator.
var generators = map[string]generator{
	unit.TargetLLVM: {common.LLVMFileExt, func(g *signals.Graph, precision common.Precision) (string, error) {
		mod, err := llvmgen.Generate(g, precision)
		if err != nil {
			return "", err
		}

		return mod.String(), nil
	}},
	unit.TargetInterp: {common.InterpFileExt, func(g *signals.Graph, _ common.Precision) (string, error) {
		prog, err := interp.Compile(g)
		if err != nil {
			return "", err
		}

		return prog.String(), nil
	}},
	unit.TargetWASM:   {common.WASMFileExt, wasm.Write},
	unit.TargetNative: {common.NativeFileExt, nativeWriter(native.Infix)},
	unit.TargetScalar: {common.ScalarFileExt, nativeWriter(native.Scalar)},
	unit.TargetVector: {common.VectorFileExt, nativeWriter(native.Vector)},
	unit.TargetLatex: {common.LatexFileExt, func(g *signals.Graph, _ common.Precision) (string, error) {
		return mathdoc.Write(g), nil
	}},
}

func nativeWriter(mode native.Mode) func(*signals.Graph, common.Precision) (string, error) {
	return func(g *signals.Graph, precision common.Precision) (string, error) {
		return native.Write(g, precision, mode)
	}
}
