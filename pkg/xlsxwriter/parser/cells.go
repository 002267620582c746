package parser

import (
	"strconv"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts cell data from a sheet.
// It returns a slice of CellRow containing non-empty rows. Values are typed
// from the stored cell type: numbers become int64 or float64, booleans bool,
// and shared or inline strings stay strings even when they look numeric.
func ExtractCells(f *excelize.File, sheetName string, includeFormulas bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		cellMap := make(map[string]any)
		formulaMap := make(map[string]string)

		for colIdx, cellValue := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			colStr := strconv.Itoa(colIdx + 1) // 1-based column index as string

			if includeFormulas {
				if formula, err := f.GetCellFormula(sheetName, cellName); err == nil && formula != "" {
					formulaMap[colStr] = formula
				}
			}
			if cellValue == "" {
				continue
			}

			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cellMap[colStr] = typedValue(cellType, cellValue)
		}

		if len(cellMap) > 0 || len(formulaMap) > 0 {
			cellRow := models.CellRow{
				R: rowNum,
				C: cellMap,
			}
			if len(formulaMap) > 0 {
				cellRow.F = formulaMap
			}
			result = append(result, cellRow)
		}
	}

	return result, nil
}

func typedValue(cellType excelize.CellType, s string) any {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return s
	case excelize.CellTypeBool:
		return s == "1" || s == "TRUE"
	default:
		return parseValue(s)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
