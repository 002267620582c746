package xlsxwriter

import (
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
)

// seriesCache holds the worksheet values behind a series formula, written
// as c:numCache or c:strCache so readers can draw the chart without
// recalculating.
type seriesCache struct {
	strings bool
	count   int
	points  []cachePoint
}

type cachePoint struct {
	idx  int
	num  float64
	text string
}

// cache resolves a formula against the grid. It returns ok=false when any
// range is not one row or column, or names a sheet this workbook does not
// have; the part is then written with a bare c:f.
func (wb *Workbook) cache(formula string, allowStrings bool) (seriesCache, bool) {
	if formula == "" {
		return seriesCache{}, false
	}
	var ranges []ref.Range
	if ref.IsUnion(formula) {
		for _, operand := range ref.SplitUnion(formula) {
			r, err := ref.ParseRange(operand)
			if err != nil {
				return seriesCache{}, false
			}
			ranges = append(ranges, r)
		}
	} else {
		r, err := ref.ParseRange(formula)
		if err != nil {
			return seriesCache{}, false
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return seriesCache{}, false
	}

	var sc seriesCache
	for _, r := range ranges {
		if r.Rows() != 1 && r.Cols() != 1 {
			return seriesCache{}, false
		}
		i, ok := wb.sheetIndex(r.Sheet)
		if !ok {
			return seriesCache{}, false
		}
		sd := wb.sheets[i]

		r1, r2 := min(r.FirstRow, r.LastRow), max(r.FirstRow, r.LastRow)
		c1, c2 := min(r.FirstCol, r.LastCol), max(r.FirstCol, r.LastCol)
		for row := r1; row <= r2; row++ {
			for col := c1; col <= c2; col++ {
				if c, ok := sd.rows[row][col]; ok {
					if p, ok := wb.cachePoint(c, sc.count); ok {
						sc.points = append(sc.points, p)
						if c.kind == CellString {
							sc.strings = true
						}
					}
				}
				sc.count++
			}
		}
	}

	if sc.strings && !allowStrings {
		// Value caches are numeric; text cells are left as gaps.
		kept := sc.points[:0]
		for _, p := range sc.points {
			if p.text == "" {
				kept = append(kept, p)
			}
		}
		sc.points = kept
		sc.strings = false
	}
	return sc, true
}

func (wb *Workbook) cachePoint(c cell, idx int) (cachePoint, bool) {
	switch c.kind {
	case CellNumber:
		return cachePoint{idx: idx, num: c.number}, true
	case CellFormula:
		if !c.cached {
			return cachePoint{}, false
		}
		return cachePoint{idx: idx, num: c.number}, true
	case CellBoolean:
		if c.boolean {
			return cachePoint{idx: idx, num: 1}, true
		}
		return cachePoint{idx: idx, num: 0}, true
	case CellString:
		s, ok := wb.strings.Get(c.sst)
		if !ok || s == "" {
			return cachePoint{}, false
		}
		return cachePoint{idx: idx, text: s}, true
	default:
		return cachePoint{}, false
	}
}
