package fir

import (
	"fmt"
	"strconv"
)

// Instr is a single register machine instruction.  Registers are numbered from
// zero and each is written exactly once.
type Instr struct {
	Op Opcode

	// Dst is the register written (or, for Return, the output slot).
	Dst int

	// A and B are the operand registers.  Unary operations only use A.
	A, B int

	// Int and Real hold the immediate of Int32Value and RealValue.  Int also
	// holds the index of LoadInput.
	Int  int32
	Real float64

	// Name is the parameter loaded by LoadParam.
	Name string
}

func (in Instr) String() string {
	switch {
	case in.Op == Int32Value:
		return fmt.Sprintf("r%d = %s %d", in.Dst, in.Op, in.Int)
	case in.Op == RealValue:
		return fmt.Sprintf("r%d = %s %s", in.Dst, in.Op, strconv.FormatFloat(in.Real, 'g', -1, 64))
	case in.Op == LoadInput:
		return fmt.Sprintf("r%d = %s %d", in.Dst, in.Op, in.Int)
	case in.Op == LoadParam:
		return fmt.Sprintf("r%d = %s %s", in.Dst, in.Op, in.Name)
	case in.Op == IntToReal:
		return fmt.Sprintf("r%d = %s r%d", in.Dst, in.Op, in.A)
	case in.Op == Return:
		return fmt.Sprintf("%s out%d, r%d", in.Op, in.Dst, in.A)
	case in.Op.IsBinary():
		return fmt.Sprintf("r%d = %s r%d, r%d", in.Dst, in.Op, in.A, in.B)
	default:
		return in.Op.String()
	}
}
