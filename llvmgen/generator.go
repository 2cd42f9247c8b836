package llvmgen

import (
	"fmt"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/common"
	"github.com/jcelerier/faust/signals"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Generator is responsible for converting the outputs of a compilation unit
// into an LLVM module.  Each output becomes a function taking every input and
// then every parameter of the unit as arguments.  A generator is used once.
type Generator struct {
	// graph is the unit being converted.
	graph *signals.Graph

	// mod is the LLVM module being generated.
	mod *ir.Module

	// realType is the LLVM type of real signals.
	realType *types.FloatType

	// precision is the width of real signals.
	precision common.Precision
}

// NewGenerator creates a new generator for g.
func NewGenerator(g *signals.Graph, precision common.Precision) *Generator {
	gen := &Generator{
		graph:     g,
		mod:       ir.NewModule(),
		realType:  types.Float,
		precision: precision,
	}

	if precision == common.Double {
		gen.realType = types.Double
	}

	gen.mod.SourceFilename = g.Name
	return gen
}

// Generate builds the module.  An operator without an LLVM lowering for its
// operand type aborts generation with a *binop.UnsupportedError.
func (g *Generator) Generate() (*ir.Module, error) {
	for _, out := range g.graph.Outputs {
		if err := g.genFunc(out); err != nil {
			return nil, err
		}
	}

	return g.mod, nil
}

// Generate is a shorthand to create a generator and run it.
func Generate(g *signals.Graph, precision common.Precision) (*ir.Module, error) {
	return NewGenerator(g, precision).Generate()
}

// -----------------------------------------------------------------------------

// convType converts a signal type into its LLVM type.
func (g *Generator) convType(typ signals.Type) types.Type {
	if typ == signals.Real {
		return g.realType
	}

	return types.I32
}

// genFunc generates the function computing out.
func (g *Generator) genFunc(out signals.Output) error {
	vals := make(map[*signals.Node]value.Value)

	var params []*ir.Param
	for _, in := range g.graph.Inputs {
		param := ir.NewParam(signals.InputName(in.Index()), g.convType(in.Type()))
		vals[in] = param
		params = append(params, param)
	}

	for _, p := range g.graph.Params {
		param := ir.NewParam(p.Name(), g.convType(p.Type()))
		vals[p] = param
		params = append(params, param)
	}

	fn := g.mod.NewFunc(out.Name, g.convType(out.Node.Type()), params...)
	block := fn.NewBlock("entry")

	var err error
	signals.Walk([]*signals.Node{out.Node}, func(n *signals.Node) {
		if err != nil {
			return
		}

		if _, ok := vals[n]; !ok {
			vals[n], err = g.genNode(block, n, vals)
		}
	})

	if err != nil {
		return err
	}

	block.NewRet(vals[out.Node])
	return nil
}

// genNode generates the value of a literal or an operator application.  The
// operands of n have already been generated.
func (g *Generator) genNode(block *ir.Block, n *signals.Node, vals map[*signals.Node]value.Value) (value.Value, error) {
	switch n.Tag() {
	case signals.TagInt:
		v, _ := n.IntValue()
		return constant.NewInt(types.I32, int64(v)), nil
	case signals.TagReal:
		v, _ := n.RealValue()
		if g.precision == common.Single {
			v = float64(float32(v))
		}

		return constant.NewFloat(g.realType, v), nil
	case signals.TagBinOp:
		real := n.OperandsReal()

		inst, ok := binop.LLVM(n.Op(), real)
		if !ok {
			return nil, &binop.UnsupportedError{Kind: n.Op(), Target: binop.TargetLLVM, Real: real}
		}

		x := g.genOperand(block, n.Left(), vals[n.Left()], real)
		y := g.genOperand(block, n.Right(), vals[n.Right()], real)

		if inst.Opcode == binop.InstShl || inst.Opcode == binop.InstAShr {
			y = g.genShiftCount(block, n.Right(), y)
		}

		return g.genInst(block, inst, x, y), nil
	}

	// inputs and parameters are bound to function parameters up front
	return vals[n], nil
}

// genOperand converts an integer operand of a real operation to real.
func (g *Generator) genOperand(block *ir.Block, n *signals.Node, v value.Value, real bool) value.Value {
	if real && n.Type() == signals.Int {
		return block.NewSIToFP(v, g.realType)
	}

	return v
}

// genShiftCount reduces a shift count modulo 32: LLVM shifts by 32 or more
// are poison.  Literal counts are reduced statically.
func (g *Generator) genShiftCount(block *ir.Block, n *signals.Node, v value.Value) value.Value {
	if c, ok := n.IntValue(); ok {
		return constant.NewInt(types.I32, int64(c&31))
	}

	return block.NewAnd(v, constant.NewInt(types.I32, 31))
}

// genInst generates the instruction described by inst.  Comparisons yield an
// `i1` which is widened to `i32`: booleans are integer signals.
func (g *Generator) genInst(block *ir.Block, inst binop.LLVMInst, x, y value.Value) value.Value {
	var nsw []enum.OverflowFlag
	if inst.NSW {
		nsw = []enum.OverflowFlag{enum.OverflowFlagNSW}
	}

	switch inst.Opcode {
	case binop.InstAdd:
		add := block.NewAdd(x, y)
		add.OverflowFlags = nsw
		return add
	case binop.InstFAdd:
		return block.NewFAdd(x, y)
	case binop.InstSub:
		sub := block.NewSub(x, y)
		sub.OverflowFlags = nsw
		return sub
	case binop.InstFSub:
		return block.NewFSub(x, y)
	case binop.InstMul:
		mul := block.NewMul(x, y)
		mul.OverflowFlags = nsw
		return mul
	case binop.InstFMul:
		return block.NewFMul(x, y)
	case binop.InstSDiv:
		return block.NewSDiv(x, y)
	case binop.InstFDiv:
		return block.NewFDiv(x, y)
	case binop.InstSRem:
		return block.NewSRem(x, y)
	case binop.InstFRem:
		return block.NewFRem(x, y)
	case binop.InstShl:
		shl := block.NewShl(x, y)
		shl.OverflowFlags = nsw
		return shl
	case binop.InstAShr:
		return block.NewAShr(x, y)
	case binop.InstAnd:
		return block.NewAnd(x, y)
	case binop.InstOr:
		return block.NewOr(x, y)
	case binop.InstXor:
		return block.NewXor(x, y)
	case binop.InstICmp:
		return block.NewZExt(block.NewICmp(inst.IPred, x, y), types.I32)
	case binop.InstFCmp:
		return block.NewZExt(block.NewFCmp(inst.FPred, x, y), types.I32)
	}

	panic(fmt.Sprintf("no lowering for LLVM opcode %d (%s)", inst.Opcode, inst.Name))
}
