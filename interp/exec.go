package interp

import (
	"fmt"
	"math"

	"github.com/jcelerier/faust/fir"
	"github.com/jcelerier/faust/signals"

	"tlog.app/go/errors"
)

// TrapError is returned when a program performs an integer division or
// remainder by zero.
type TrapError struct {
	// Instr is the index of the trapping instruction.
	Instr int
	Op    fir.Opcode
}

func (te *TrapError) Error() string {
	return fmt.Sprintf("integer division by zero at instruction %d (%s)", te.Instr, te.Op)
}

// value is the content of a register.  Only the field matching the opcode that
// wrote the register is meaningful.
type value struct {
	i int32
	r float64
}

// Exec runs one sample of the program and returns the value of every output.
// Integer outputs are converted to real.  Integer parameters are truncated
// toward zero.  Real arithmetic follows IEEE 754.
func (p *Program) Exec(inputs []float64, params map[string]float64) ([]float64, error) {
	if len(inputs) < p.NumInputs {
		return nil, errors.New("program reads %d inputs, %d given", p.NumInputs, len(inputs))
	}

	regs := make([]value, p.NumRegs)
	outs := make([]float64, len(p.Outputs))

	for pc, in := range p.Instrs {
		var v value
		a, b := regs[in.A], regs[in.B]

		switch in.Op {
		case fir.Nop:
			continue
		case fir.Int32Value:
			v.i = in.Int
		case fir.RealValue:
			v.r = in.Real
		case fir.LoadInput:
			v.r = inputs[in.Int]
		case fir.LoadParam:
			pv, ok := params[in.Name]
			if !ok {
				return nil, errors.New("missing value for parameter `%s`", in.Name)
			}

			v.r = pv
			v.i = int32(pv)
		case fir.IntToReal:
			v.r = float64(a.i)

		case fir.AddInt:
			v.i = a.i + b.i
		case fir.AddReal:
			v.r = a.r + b.r
		case fir.SubInt:
			v.i = a.i - b.i
		case fir.SubReal:
			v.r = a.r - b.r
		case fir.MultInt:
			v.i = a.i * b.i
		case fir.MultReal:
			v.r = a.r * b.r
		case fir.DivInt:
			if b.i == 0 {
				return nil, &TrapError{Instr: pc, Op: in.Op}
			}

			v.i = a.i / b.i
		case fir.DivReal:
			v.r = a.r / b.r
		case fir.RemInt:
			if b.i == 0 {
				return nil, &TrapError{Instr: pc, Op: in.Op}
			}

			v.i = a.i % b.i
		case fir.RemReal:
			v.r = math.Mod(a.r, b.r)

		case fir.LshInt:
			v.i = a.i << (uint32(b.i) & 31)
		case fir.RshInt:
			v.i = a.i >> (uint32(b.i) & 31)

		case fir.GTInt:
			v.i = boolToInt(a.i > b.i)
		case fir.GTReal:
			v.i = boolToInt(a.r > b.r)
		case fir.LTInt:
			v.i = boolToInt(a.i < b.i)
		case fir.LTReal:
			v.i = boolToInt(a.r < b.r)
		case fir.GEInt:
			v.i = boolToInt(a.i >= b.i)
		case fir.GEReal:
			v.i = boolToInt(a.r >= b.r)
		case fir.LEInt:
			v.i = boolToInt(a.i <= b.i)
		case fir.LEReal:
			v.i = boolToInt(a.r <= b.r)
		case fir.EQInt:
			v.i = boolToInt(a.i == b.i)
		case fir.EQReal:
			v.i = boolToInt(a.r == b.r)
		case fir.NEInt:
			v.i = boolToInt(a.i != b.i)
		case fir.NEReal:
			v.i = boolToInt(a.r != b.r)

		case fir.ANDInt:
			v.i = a.i & b.i
		case fir.ORInt:
			v.i = a.i | b.i
		case fir.XORInt:
			v.i = a.i ^ b.i

		case fir.Return:
			if p.OutputTypes[in.Dst] == signals.Real {
				outs[in.Dst] = a.r
			} else {
				outs[in.Dst] = float64(a.i)
			}

			continue
		default:
			return nil, errors.New("invalid opcode %s at instruction %d", in.Op, pc)
		}

		regs[in.Dst] = v
	}

	return outs, nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}

	return 0
}
