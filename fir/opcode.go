package fir

import "fmt"

// Opcode is the operation code of an interpreter instruction.  Every operation
// on values is typed: the integer and real forms of an operator are distinct
// opcodes.
type Opcode int

// Enumeration of opcodes.
const (
	Nop Opcode = iota // No operation

	Int32Value // Load integer constant
	RealValue  // Load real constant
	LoadInput  // Load audio input
	LoadParam  // Load control parameter
	IntToReal  // Convert integer to real

	AddInt   // Integer add
	AddReal  // Real add
	SubInt   // Integer subtract
	SubReal  // Real subtract
	MultInt  // Integer multiply
	MultReal // Real multiply
	DivInt   // Integer divide (truncating)
	DivReal  // Real divide
	RemInt   // Integer remainder
	RemReal  // Real remainder

	LshInt // Shift left
	RshInt // Arithmetic shift right

	GTInt  // Integer greater than
	GTReal // Real greater than
	LTInt  // Integer less than
	LTReal // Real less than
	GEInt  // Integer greater than or equal to
	GEReal // Real greater than or equal to
	LEInt  // Integer less than or equal to
	LEReal // Real less than or equal to
	EQInt  // Integer equal to
	EQReal // Real equal to
	NEInt  // Integer not equal to
	NEReal // Real not equal to

	ANDInt // Bitwise AND
	ORInt  // Bitwise OR
	XORInt // Bitwise XOR

	Return // Store register to output
)

var opcodeNames = [...]string{
	Nop:        "nop",
	Int32Value: "int32",
	RealValue:  "real",
	LoadInput:  "input",
	LoadParam:  "param",
	IntToReal:  "itor",
	AddInt:     "add.i",
	AddReal:    "add.r",
	SubInt:     "sub.i",
	SubReal:    "sub.r",
	MultInt:    "mul.i",
	MultReal:   "mul.r",
	DivInt:     "div.i",
	DivReal:    "div.r",
	RemInt:     "rem.i",
	RemReal:    "rem.r",
	LshInt:     "lsh.i",
	RshInt:     "rsh.i",
	GTInt:      "gt.i",
	GTReal:     "gt.r",
	LTInt:      "lt.i",
	LTReal:     "lt.r",
	GEInt:      "ge.i",
	GEReal:     "ge.r",
	LEInt:      "le.i",
	LEReal:     "le.r",
	EQInt:      "eq.i",
	EQReal:     "eq.r",
	NEInt:      "ne.i",
	NEReal:     "ne.r",
	ANDInt:     "and.i",
	ORInt:      "or.i",
	XORInt:     "xor.i",
	Return:     "ret",
}

func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}

	return opcodeNames[op]
}

// IsBinary reports whether op combines two registers.
func (op Opcode) IsBinary() bool {
	return op >= AddInt && op <= XORInt
}
