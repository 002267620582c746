// Package ref converts between zero-based cell coordinates and the A1-style
// formula references used by worksheets and chart series.
package ref

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// Worksheet limits of the XLSX format.
const (
	MaxRows = excelize.TotalRows
	MaxCols = excelize.MaxColumns
)

// ErrOutOfRange indicates a row or column outside the worksheet limits.
var ErrOutOfRange = errors.New("cell coordinates out of range")

// ErrSyntax indicates a malformed range formula.
var ErrSyntax = errors.New("malformed range reference")

// Range is a rectangular cell range on a named sheet. Coordinates are zero-based.
type Range struct {
	Sheet    string
	FirstRow int
	FirstCol int
	LastRow  int
	LastCol  int
}

// IsCell reports whether the range covers a single cell.
func (r Range) IsCell() bool {
	return r.FirstRow == r.LastRow && r.FirstCol == r.LastCol
}

// Rows returns the number of rows covered by the range.
func (r Range) Rows() int {
	return abs(r.LastRow-r.FirstRow) + 1
}

// Cols returns the number of columns covered by the range.
func (r Range) Cols() int {
	return abs(r.LastCol-r.FirstCol) + 1
}

// CheckCell validates zero-based coordinates against the worksheet limits.
func CheckCell(row, col int) error {
	if row < 0 || row >= MaxRows || col < 0 || col >= MaxCols {
		return fmt.Errorf("%w: row %d, col %d", ErrOutOfRange, row, col)
	}
	return nil
}

// CellName returns the relative A1 name of a zero-based cell, e.g. (1, 3) -> "D2".
func CellName(row, col int) (string, error) {
	if err := CheckCell(row, col); err != nil {
		return "", err
	}
	return excelize.CoordinatesToCellName(col+1, row+1)
}

// AbsCellName returns the absolute A1 name of a zero-based cell, e.g. "$D$2".
func AbsCellName(row, col int) (string, error) {
	if err := CheckCell(row, col); err != nil {
		return "", err
	}
	return excelize.CoordinatesToCellName(col+1, row+1, true)
}

// ColumnName returns the column letters of a zero-based column.
func ColumnName(col int) (string, error) {
	if err := CheckCell(0, col); err != nil {
		return "", err
	}
	return excelize.ColumnNumberToName(col + 1)
}

// RangeFormula builds "=Sheet!$A$1:$B$2" for the given zero-based range.
// When collapse is set and the range is a single cell the colon form is
// dropped and "=Sheet!$A$1" is returned.
func RangeFormula(sheet string, firstRow, firstCol, lastRow, lastCol int, collapse bool) (string, error) {
	first, err := AbsCellName(firstRow, firstCol)
	if err != nil {
		return "", err
	}
	last, err := AbsCellName(lastRow, lastCol)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(sheet) == "" {
		return "", fmt.Errorf("%w: empty sheet name", ErrSyntax)
	}

	var b strings.Builder
	b.WriteByte('=')
	b.WriteString(QuoteSheetName(sheet))
	b.WriteByte('!')
	b.WriteString(first)
	if !collapse || first != last {
		b.WriteByte(':')
		b.WriteString(last)
	}
	return b.String(), nil
}

// QuoteSheetName quotes a sheet name for use in a formula when required.
// Names that are already quoted are returned unchanged.
func QuoteSheetName(name string) string {
	if strings.HasPrefix(name, "'") {
		return name
	}
	if !needsQuoting(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// UnquoteSheetName reverses QuoteSheetName.
func UnquoteSheetName(name string) string {
	if len(name) >= 2 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

func needsQuoting(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && (unicode.IsDigit(r) || r == '.') {
			return true
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.') {
			return true
		}
	}
	// Names that read as a cell reference would be parsed as one.
	if _, _, err := excelize.CellNameToCoordinates(name); err == nil {
		return true
	}
	upper := strings.ToUpper(name)
	return upper == "R" || upper == "C" || looksLikeR1C1(upper)
}

func looksLikeR1C1(s string) bool {
	if !strings.HasPrefix(s, "R") {
		return false
	}
	i := strings.IndexByte(s, 'C')
	if i < 1 {
		return false
	}
	return isDigits(s[1:i]) && isDigits(s[i+1:])
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
