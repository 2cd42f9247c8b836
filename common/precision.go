package common

// Precision is the width of real numbers in generated code.
type Precision int

// Enumeration of precisions.
const (
	Single Precision = iota // 32-bit float
	Double                  // 64-bit float
)

// ParsePrecision converts the name used in unit files into a precision.
func ParsePrecision(name string) (Precision, bool) {
	switch name {
	case "float", "single":
		return Single, true
	case "double":
		return Double, true
	}

	return Single, false
}

func (p Precision) String() string {
	if p == Double {
		return "double"
	}

	return "float"
}
