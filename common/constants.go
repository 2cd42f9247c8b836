package common

// Version is the current compiler version as a string.
const Version string = "0.3.0"

// UnitFileExt is the file extension of a unit file.
const UnitFileExt string = ".sig.toml"

// DefaultOutputDir is the output directory used when a profile names none.
const DefaultOutputDir string = "out"

// Output file extensions, one per target.
const (
	LLVMFileExt   = ".ll"
	InterpFileExt = ".fir"
	WASMFileExt   = ".wat"
	NativeFileExt = ".c"
	ScalarFileExt = ".scal.c"
	VectorFileExt = ".vec.c"
	LatexFileExt  = ".tex"
)
