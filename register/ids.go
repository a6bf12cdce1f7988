package register

// ID identifies one of the machine's six registers. The CPU keeps its
// registers as a fixed record (six named fields), not a name->register map;
// this enum plus the parallel Names lookup below exist solely to support
// parsing a register token out of source text (spec.md §9 "Register
// table").
type ID int

const (
	A ID = iota
	B
	C
	D
	X
	Y
)

// Names maps a register's source-level token (matched case-sensitively, as
// an uppercase literal -- spec.md's asymmetric case-sensitivity rule is
// preserved deliberately) to its ID.
var Names = map[string]ID{
	"A": A,
	"B": B,
	"C": C,
	"D": D,
	"X": X,
	"Y": Y,
}

// IsByte reports whether id names one of the 8-bit registers (A-D).
func (id ID) IsByte() bool {
	return id == A || id == B || id == C || id == D
}

// IsAddress reports whether id names one of the 16-bit registers (X, Y).
func (id ID) IsAddress() bool {
	return id == X || id == Y
}

func (id ID) String() string {
	switch id {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case X:
		return "X"
	case Y:
		return "Y"
	default:
		return "?"
	}
}
