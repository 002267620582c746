package ref

import (
	"fmt"
	"strings"

	"github.com/xuri/efp"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses "=Sheet!$A$1:$B$2", "Sheet!A1" or "'My Sheet'!$A$1" into a Range.
// The leading '=' is optional. Unions are rejected; use SplitUnion first.
func ParseRange(formula string) (Range, error) {
	s := strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if s == "" {
		return Range{}, fmt.Errorf("%w: empty reference", ErrSyntax)
	}
	if strings.HasPrefix(s, "(") {
		return Range{}, fmt.Errorf("%w: %q is a union", ErrSyntax, formula)
	}

	idx := strings.LastIndex(s, "!")
	if idx <= 0 || idx == len(s)-1 {
		return Range{}, fmt.Errorf("%w: %q has no sheet qualifier", ErrSyntax, formula)
	}
	sheet := s[:idx]
	if strings.HasPrefix(sheet, "'") != strings.HasSuffix(sheet, "'") || sheet == "'" {
		return Range{}, fmt.Errorf("%w: unbalanced quotes in %q", ErrSyntax, formula)
	}
	if !strings.HasPrefix(sheet, "'") && needsQuoting(sheet) {
		return Range{}, fmt.Errorf("%w: sheet name %q must be quoted", ErrSyntax, sheet)
	}
	sheet = UnquoteSheetName(sheet)

	parts := strings.Split(s[idx+1:], ":")
	if len(parts) > 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrSyntax, formula)
	}
	firstCol, firstRow, err := cellCoordinates(parts[0])
	if err != nil {
		return Range{}, err
	}
	lastCol, lastRow := firstCol, firstRow
	if len(parts) == 2 {
		if lastCol, lastRow, err = cellCoordinates(parts[1]); err != nil {
			return Range{}, err
		}
	}

	return Range{
		Sheet:    sheet,
		FirstRow: firstRow - 1,
		FirstCol: firstCol - 1,
		LastRow:  lastRow - 1,
		LastCol:  lastCol - 1,
	}, nil
}

// cellCoordinates returns the 1-based column and row of "$A$1" or "A1".
// Each of the column and row parts takes at most one leading '$'.
func cellCoordinates(cell string) (int, int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, 0, fmt.Errorf("%w: empty cell", ErrSyntax)
	}

	s := strings.TrimPrefix(cell, "$")
	i := strings.IndexFunc(s, func(r rune) bool { return !isLetter(r) })
	if i < 0 {
		i = len(s)
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("%w: %q has no column", ErrSyntax, cell)
	}
	letters, digits := s[:i], strings.TrimPrefix(s[i:], "$")
	if digits == "" || !isDigits(digits) {
		return 0, 0, fmt.Errorf("%w: %q has no row", ErrSyntax, cell)
	}

	col, row, err := excelize.CellNameToCoordinates(letters + digits)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if row > MaxRows || col > MaxCols {
		return 0, 0, fmt.Errorf("%w: %s", ErrOutOfRange, cell)
	}
	return col, row, nil
}

// IsUnion reports whether the formula is a parenthesised union of ranges.
func IsUnion(formula string) bool {
	s := strings.TrimPrefix(strings.TrimSpace(formula), "=")
	return strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
}

// Validate checks that formula is "=" followed by a range reference or a
// parenthesised, comma separated union of range references.
// Referenced sheets and cells are not required to exist.
func Validate(formula string) error {
	if !strings.HasPrefix(formula, "=") {
		return fmt.Errorf("%w: %q does not start with '='", ErrSyntax, formula)
	}
	if !IsUnion(formula) {
		_, err := ParseRange(formula)
		return err
	}

	members, err := unionMembers(formula)
	if err != nil {
		return err
	}
	for _, m := range members {
		if _, err := ParseRange(m); err != nil {
			return err
		}
	}
	return nil
}

// unionMembers splits "=(a,b,c)" on commas that are outside quoted sheet names.
func unionMembers(formula string) ([]string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(formula), "=")
	s = s[1 : len(s)-1]

	var members []string
	var cur strings.Builder
	quoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'':
			quoted = !quoted
			cur.WriteByte(c)
		case c == ',' && !quoted:
			members = append(members, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: unbalanced quotes in %q", ErrSyntax, formula)
	}
	members = append(members, cur.String())

	for _, m := range members {
		if strings.TrimSpace(m) == "" {
			return nil, fmt.Errorf("%w: empty union member in %q", ErrSyntax, formula)
		}
	}
	return members, nil
}

// SplitUnion returns the range operands of a formula using the Excel formula
// tokenizer. A plain range yields a single element. The tokenizer drops the
// quotes around sheet names, so they are quoted again where required.
func SplitUnion(formula string) []string {
	ps := efp.ExcelParser()
	tokens := ps.Parse(formula)

	var ranges []string
	for _, token := range tokens {
		if token.TType != efp.TokenTypeOperand {
			continue
		}
		if token.TSubType == efp.TokenSubTypeRange {
			ranges = append(ranges, requoteSheet(token.TValue))
		}
	}
	return ranges
}

func isLetter(r rune) bool {
	return 'A' <= r && r <= 'Z' || 'a' <= r && r <= 'z'
}

func requoteSheet(operand string) string {
	idx := strings.LastIndex(operand, "!")
	if idx <= 0 {
		return operand
	}
	return QuoteSheetName(operand[:idx]) + operand[idx:]
}

// StripEquals returns the formula without its leading '=' as stored in XML.
func StripEquals(formula string) string {
	return strings.TrimPrefix(formula, "=")
}
