package interp

import (
	"fmt"
	"strings"

	"github.com/jcelerier/faust/binop"
	"github.com/jcelerier/faust/fir"
	"github.com/jcelerier/faust/signals"
)

// Param describes a control parameter expected by a program.
type Param struct {
	Name string
	Type signals.Type
}

// Program is a compiled compilation unit: a straight-line sequence of register
// instructions computing every output once per sample.
type Program struct {
	Instrs  []fir.Instr
	NumRegs int

	// Outputs are the names of the outputs, in order of their Return slot.
	Outputs []string

	// OutputTypes are the types of the outputs.
	OutputTypes []signals.Type

	// NumInputs is the number of audio inputs of the unit.
	NumInputs int

	// Params are the control parameters of the unit.
	Params []Param
}

// compiler lowers a signal graph to a program.
type compiler struct {
	prog *Program

	// regs maps each node to the register holding its value.
	regs map[*signals.Node]int

	// reals maps each integer node converted to real to the register holding
	// the converted value.
	reals map[*signals.Node]int
}

// Compile lowers the outputs of g to an interpreter program.  An operator
// without an interpreter form for its operand type yields a
// *binop.UnsupportedError.
func Compile(g *signals.Graph) (*Program, error) {
	c := &compiler{
		prog:  &Program{},
		regs:  make(map[*signals.Node]int),
		reals: make(map[*signals.Node]int),
	}

	for _, in := range g.Inputs {
		if in.Index() >= c.prog.NumInputs {
			c.prog.NumInputs = in.Index() + 1
		}
	}

	for _, param := range g.Params {
		c.prog.Params = append(c.prog.Params, Param{Name: param.Name(), Type: param.Type()})
	}

	roots := g.Roots()

	var err error
	signals.Walk(roots, func(n *signals.Node) {
		if err == nil {
			err = c.lower(n)
		}
	})

	if err != nil {
		return nil, err
	}

	for i, out := range g.Outputs {
		c.prog.Instrs = append(c.prog.Instrs, fir.Instr{Op: fir.Return, Dst: i, A: c.regs[out.Node]})
		c.prog.Outputs = append(c.prog.Outputs, out.Name)
		c.prog.OutputTypes = append(c.prog.OutputTypes, out.Node.Type())
	}

	return c.prog, nil
}

// emit appends an instruction writing a new register and returns that
// register.
func (c *compiler) emit(in fir.Instr) int {
	in.Dst = c.prog.NumRegs
	c.prog.NumRegs++
	c.prog.Instrs = append(c.prog.Instrs, in)
	return in.Dst
}

func (c *compiler) lower(n *signals.Node) error {
	switch n.Tag() {
	case signals.TagInt:
		v, _ := n.IntValue()
		c.regs[n] = c.emit(fir.Instr{Op: fir.Int32Value, Int: v})
	case signals.TagReal:
		v, _ := n.RealValue()
		c.regs[n] = c.emit(fir.Instr{Op: fir.RealValue, Real: v})
	case signals.TagInput:
		if n.Index() >= c.prog.NumInputs {
			c.prog.NumInputs = n.Index() + 1
		}

		c.regs[n] = c.emit(fir.Instr{Op: fir.LoadInput, Int: int32(n.Index())})
	case signals.TagParam:
		c.regs[n] = c.emit(fir.Instr{Op: fir.LoadParam, Name: n.Name()})
	case signals.TagBinOp:
		real := n.OperandsReal()

		op, ok := binop.Interp(n.Op(), real)
		if !ok {
			return &binop.UnsupportedError{Kind: n.Op(), Target: binop.TargetInterp, Real: real}
		}

		a, b := c.operand(n.Left(), real), c.operand(n.Right(), real)
		c.regs[n] = c.emit(fir.Instr{Op: op, A: a, B: b})
	}

	return nil
}

// operand returns the register holding n converted to the operand type of its
// parent.
func (c *compiler) operand(n *signals.Node, real bool) int {
	reg := c.regs[n]
	if !real || n.Type() == signals.Real {
		return reg
	}

	if conv, ok := c.reals[n]; ok {
		return conv
	}

	conv := c.emit(fir.Instr{Op: fir.IntToReal, A: reg})
	c.reals[n] = conv
	return conv
}

// String disassembles the program.
func (p *Program) String() string {
	sb := &strings.Builder{}

	for i, name := range p.Outputs {
		fmt.Fprintf(sb, "; out%d = %s\n", i, name)
	}

	for _, in := range p.Instrs {
		sb.WriteString(in.String())
		sb.WriteRune('\n')
	}

	return sb.String()
}
