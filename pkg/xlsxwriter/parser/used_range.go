package parser

import (
	"github.com/xuri/excelize/v2"
)

// UsedRange is the bounding box of the non-empty cells of a sheet.
type UsedRange struct {
	// Ref is the range in A1 notation, e.g. "A1:D10". Empty for a blank sheet.
	Ref string
	// Density is the share of non-empty cells inside the range.
	Density float64
}

// DetectUsedRange finds the bounding box of the non-empty cells of a sheet
// and how densely it is filled.
func DetectUsedRange(f *excelize.File, sheetName string) (UsedRange, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return UsedRange{}, err
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return UsedRange{}, nil
	}

	totalCells := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	nonEmptyCells := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)

	startCell, err := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if err != nil {
		return UsedRange{}, err
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	if err != nil {
		return UsedRange{}, err
	}
	rangeStr := startCell
	if startCell != endCell {
		rangeStr = startCell + ":" + endCell
	}

	return UsedRange{
		Ref:     rangeStr,
		Density: float64(nonEmptyCells) / float64(totalCells),
	}, nil
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			if row[colIdx] != "" {
				count++
			}
		}
	}
	return count
}
