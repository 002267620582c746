package xlsxwriter

// CellKind identifies the type of value stored in a cell.
type CellKind uint8

const (
	CellBlank CellKind = iota
	CellNumber
	CellString
	CellFormula
	CellBoolean
)

func (k CellKind) String() string {
	switch k {
	case CellNumber:
		return "number"
	case CellString:
		return "string"
	case CellFormula:
		return "formula"
	case CellBoolean:
		return "boolean"
	default:
		return "blank"
	}
}

// cell is one typed value. Only the fields for its kind are meaningful.
type cell struct {
	kind    CellKind
	number  float64 // number, or cached formula result when cached is set
	sst     int     // shared string index
	formula string  // without the leading '='
	cached  bool
	boolean bool
}

// CellValue is a read-only view of a stored cell.
type CellValue struct {
	Kind CellKind
	// Number holds the value of a number cell or the cached formula result.
	Number float64
	// String holds the text of a string cell.
	String string
	// StringIndex is the shared string index of a string cell.
	StringIndex int
	// Formula holds the formula text without the leading '='.
	Formula string
	// Cached reports whether a formula cell has a cached result.
	Cached bool
	Bool   bool
}
