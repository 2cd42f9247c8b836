package binop

import (
	"github.com/jcelerier/faust/fir"

	"github.com/llir/llvm/ir/enum"
)

// algebras is the mathematics of every operator.  Both tables point into it so
// they can never disagree on folding, neutral and absorbing elements or
// priority.
var algebras = [NumKinds]algebra{
	Add: {combine: addNode, leftNeutral: isZero, rightNeutral: isZero, leftAbsorbing: never, rightAbsorbing: never, priority: 6},
	Sub: {combine: subNode, leftNeutral: never, rightNeutral: isZero, leftAbsorbing: never, rightAbsorbing: never, priority: 7},
	Mul: {combine: mulNode, leftNeutral: isOne, rightNeutral: isOne, leftAbsorbing: isZero, rightAbsorbing: isZero, priority: 8},
	Div: {combine: divNode, leftNeutral: never, rightNeutral: isOne, leftAbsorbing: never, rightAbsorbing: never, priority: 10},
	Rem: {combine: remNode, leftNeutral: never, rightNeutral: never, leftAbsorbing: never, rightAbsorbing: never, priority: 9},

	Lsh: {combine: lshNode, leftNeutral: never, rightNeutral: isZero, leftAbsorbing: never, rightAbsorbing: never, priority: 8},
	Rsh: {combine: rshNode, leftNeutral: never, rightNeutral: isZero, leftAbsorbing: never, rightAbsorbing: never, priority: 8},

	GT: {combine: gtNode, leftNeutral: never, rightNeutral: never, leftAbsorbing: never, rightAbsorbing: never, priority: 5},
	LT: {combine: ltNode, leftNeutral: never, rightNeutral: never, leftAbsorbing: never, rightAbsorbing: never, priority: 5},
	GE: {combine: geNode, leftNeutral: never, rightNeutral: never, leftAbsorbing: never, rightAbsorbing: never, priority: 5},
	LE: {combine: leNode, leftNeutral: never, rightNeutral: never, leftAbsorbing: never, rightAbsorbing: never, priority: 5},
	EQ: {combine: eqNode, leftNeutral: never, rightNeutral: never, leftAbsorbing: never, rightAbsorbing: never, priority: 5},
	NE: {combine: neNode, leftNeutral: never, rightNeutral: never, leftAbsorbing: never, rightAbsorbing: never, priority: 5},

	And: {combine: andNode, leftNeutral: isMinusOne, rightNeutral: isMinusOne, leftAbsorbing: isZero, rightAbsorbing: isZero, priority: 8},
	Or:  {combine: orNode, leftNeutral: isZero, rightNeutral: isZero, leftAbsorbing: never, rightAbsorbing: never, priority: 7},
	Xor: {combine: xorNode, leftNeutral: never, rightNeutral: never, leftAbsorbing: never, rightAbsorbing: never, priority: 8},
}

// -----------------------------------------------------------------------------

func inst(name string, op LLVMOpcode) LLVMInst {
	return LLVMInst{Name: name, Opcode: op}
}

func nsw(name string, op LLVMOpcode) LLVMInst {
	return LLVMInst{Name: name + " nsw", Opcode: op, NSW: true}
}

func icmp(name string, pred enum.IPred) LLVMInst {
	return LLVMInst{Name: "icmp " + name, Opcode: InstICmp, IPred: pred}
}

func fcmp(name string, pred enum.FPred) LLVMInst {
	return LLVMInst{Name: "fcmp " + name, Opcode: InstFCmp, FPred: pred}
}

// codegenNames are the names used when emitting code.  Shifts and bitwise
// operators have no real form on any executable target and the portable module
// format has no real remainder.
var codegenNames = [NumKinds]naming{
	Add: {
		symbol: "+",
		vector: both("add_vec"), scalar: both("add_scal"),
		llvm:   pair(nsw("add", InstAdd), inst("fadd", InstFAdd)),
		interp: pair(fir.AddInt, fir.AddReal),
		wasm:   pair("i32.add", "f32.add"),
	},
	Sub: {
		symbol: "-",
		vector: both("sub_vec"), scalar: both("sub_scal"),
		llvm:   pair(nsw("sub", InstSub), inst("fsub", InstFSub)),
		interp: pair(fir.SubInt, fir.SubReal),
		wasm:   pair("i32.sub", "f32.sub"),
	},
	Mul: {
		symbol: "*",
		vector: both("mul_vec"), scalar: both("mul_scal"),
		llvm:   pair(nsw("mul", InstMul), inst("fmul", InstFMul)),
		interp: pair(fir.MultInt, fir.MultReal),
		wasm:   pair("i32.mul", "f32.mul"),
	},
	Div: {
		symbol: "/",
		vector: both("div_vec"), scalar: both("div_scal"),
		llvm:   pair(inst("sdiv", InstSDiv), inst("fdiv", InstFDiv)),
		interp: pair(fir.DivInt, fir.DivReal),
		wasm:   pair("i32.div_s", "f32.div"),
	},
	Rem: {
		symbol: "%",
		vector: both("mod_vec"), scalar: both("mod_scal"),
		llvm:   pair(inst("srem", InstSRem), inst("frem", InstFRem)),
		interp: pair(fir.RemInt, fir.RemReal),
		wasm:   intOnly("i32.rem_s"),
	},

	Lsh: {
		symbol: "<<",
		vector: intOnly("shift_left_vec"), scalar: intOnly("shift_left_scal"),
		llvm:   intOnly(inst("shl", InstShl)),
		interp: intOnly(fir.LshInt),
		wasm:   intOnly("i32.shl"),
	},
	Rsh: {
		symbol: ">>",
		vector: intOnly("shift_right_vec"), scalar: intOnly("shift_right_scal"),
		llvm:   intOnly(inst("ashr", InstAShr)),
		interp: intOnly(fir.RshInt),
		wasm:   intOnly("i32.shr_s"),
	},

	GT: {
		symbol: ">",
		vector: both("gt_vec"), scalar: both("gt_scal"),
		llvm:   pair(icmp("sgt", enum.IPredSGT), fcmp("ogt", enum.FPredOGT)),
		interp: pair(fir.GTInt, fir.GTReal),
		wasm:   pair("i32.gt_s", "f32.gt"),
	},
	LT: {
		symbol: "<",
		vector: both("lt_vec"), scalar: both("lt_scal"),
		llvm:   pair(icmp("slt", enum.IPredSLT), fcmp("olt", enum.FPredOLT)),
		interp: pair(fir.LTInt, fir.LTReal),
		wasm:   pair("i32.lt_s", "f32.lt"),
	},
	GE: {
		symbol: ">=",
		vector: both("ge_vec"), scalar: both("ge_scal"),
		llvm:   pair(icmp("sge", enum.IPredSGE), fcmp("oge", enum.FPredOGE)),
		interp: pair(fir.GEInt, fir.GEReal),
		wasm:   pair("i32.ge_s", "f32.ge"),
	},
	LE: {
		symbol: "<=",
		vector: both("le_vec"), scalar: both("le_scal"),
		llvm:   pair(icmp("sle", enum.IPredSLE), fcmp("ole", enum.FPredOLE)),
		interp: pair(fir.LEInt, fir.LEReal),
		wasm:   pair("i32.le_s", "f32.le"),
	},
	EQ: {
		symbol: "==",
		vector: both("eq_vec"), scalar: both("eq_scal"),
		llvm:   pair(icmp("eq", enum.IPredEQ), fcmp("oeq", enum.FPredOEQ)),
		interp: pair(fir.EQInt, fir.EQReal),
		wasm:   pair("i32.eq", "f32.eq"),
	},
	NE: {
		symbol: "!=",
		vector: both("neq_vec"), scalar: both("neq_scal"),
		llvm:   pair(icmp("ne", enum.IPredNE), fcmp("une", enum.FPredUNE)),
		interp: pair(fir.NEInt, fir.NEReal),
		wasm:   pair("i32.ne", "f32.ne"),
	},

	And: {
		symbol: "&",
		vector: intOnly("and_vec"), scalar: intOnly("and_scal"),
		llvm:   intOnly(inst("and", InstAnd)),
		interp: intOnly(fir.ANDInt),
		wasm:   intOnly("i32.and"),
	},
	Or: {
		symbol: "|",
		vector: intOnly("or_vec"), scalar: intOnly("or_scal"),
		llvm:   intOnly(inst("or", InstOr)),
		interp: intOnly(fir.ORInt),
		wasm:   intOnly("i32.or"),
	},
	Xor: {
		symbol: "^",
		vector: intOnly("xor_vec"), scalar: intOnly("xor_scal"),
		llvm:   intOnly(inst("xor", InstXor)),
		interp: intOnly(fir.XORInt),
		wasm:   intOnly("i32.xor"),
	},
}

// displaySymbols are the typeset symbols of the display table.
var displaySymbols = [NumKinds]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Rem: `\bmod`,

	Lsh: `\hiderel{\ll}`,
	Rsh: `\hiderel{\gg}`,

	GT: `\hiderel{>}`,
	LT: `\hiderel{<}`,
	GE: `\hiderel{\geq}`,
	LE: `\hiderel{\leq}`,
	EQ: `\hiderel{\equiv}`,
	NE: `\hiderel{\neq}`,

	And: `\wedge`,
	Or:  `\vee`,
	Xor: `\veebar`,
}

// displayNames derives the display naming from the code generation naming: the
// typeset symbol replaces the source symbol and the executable targets are
// blank since rendering never emits instructions.
func displayNames() (names [NumKinds]naming) {
	for k := range names {
		names[k] = naming{
			symbol: displaySymbols[k],
			vector: codegenNames[k].vector,
			scalar: codegenNames[k].scalar,
		}
	}

	return
}

// newTable pairs each naming entry with the shared algebra of its kind.
func newTable(names [NumKinds]naming) (table [NumKinds]Descriptor) {
	for k := range table {
		table[k] = Descriptor{kind: Kind(k), naming: names[k], alg: &algebras[k]}
	}

	return
}

var (
	codegenTable = newTable(codegenNames)
	displayTable = newTable(displayNames())
)

// Lookup returns the descriptor of k from the display table if display is set
// and from the code generation table otherwise.  It panics with a *KindError if
// k is not a valid kind.
func Lookup(k Kind, display bool) Descriptor {
	mustValid(k)

	if display {
		return displayTable[k]
	}

	return codegenTable[k]
}
