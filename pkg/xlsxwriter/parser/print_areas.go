package parser

import (
	"strings"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/models"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
	"github.com/xuri/excelize/v2"
)

const printAreaName = "_xlnm.Print_Area"

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(f *excelize.File) (map[string][]models.PrintArea, error) {
	result := make(map[string][]models.PrintArea)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		for _, r := range parseAreaReference(dn.RefersTo) {
			result[r.Sheet] = append(result[r.Sheet], models.PrintArea{
				R1: r.FirstRow + 1,
				C1: r.FirstCol + 1,
				R2: r.LastRow + 1,
				C2: r.LastCol + 1,
			})
		}
	}

	return result, nil
}

// ExtractDefinedNames returns the defined names other than print areas, in
// workbook order.
func ExtractDefinedNames(f *excelize.File) []models.DefinedName {
	var names []models.DefinedName
	for _, dn := range f.GetDefinedName() {
		if strings.EqualFold(dn.Name, printAreaName) {
			continue
		}
		scope := dn.Scope
		if scope == "Workbook" {
			scope = ""
		}
		names = append(names, models.DefinedName{Name: dn.Name, RefersTo: dn.RefersTo, Scope: scope})
	}
	return names
}

// parseAreaReference parses a print area reference such as
// "'My Sheet'!$A$1:$D$10" or "Sheet1!$A$1:$B$2,Sheet1!$D$1:$E$2".
// Areas that do not parse are skipped.
func parseAreaReference(refersTo string) []ref.Range {
	formula := "=" + ref.StripEquals(strings.TrimSpace(refersTo))

	var areas []ref.Range
	for _, operand := range ref.SplitUnion(formula) {
		r, err := ref.ParseRange(operand)
		if err != nil {
			continue
		}
		areas = append(areas, r)
	}
	return areas
}
