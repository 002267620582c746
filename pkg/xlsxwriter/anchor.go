package xlsxwriter

import (
	"sort"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/parser"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
)

// Default size of an inserted chart in pixels.
const (
	defaultChartWidth  = 480
	defaultChartHeight = 288
)

// geometry is the two cell anchor of one drawing object. Cell offsets and
// absolute positions are in EMU.
type geometry struct {
	fromCol, fromRow       int
	fromColOff, fromRowOff int64
	toCol, toRow           int
	toColOff, toRowOff     int64

	x, y   int64
	cx, cy int64
}

func (sd *sheetData) colPixels(col int, opts Options) int {
	if w, ok := sd.colWidths[col]; ok {
		return parser.ColumnWidthToPixels(w)
	}
	return parser.ColumnWidthToPixels(opts.ColumnWidth())
}

func (sd *sheetData) rowPixels(row int, opts Options) int {
	if h, ok := sd.rowHeights[row]; ok {
		return parser.RowHeightToPixels(h)
	}
	return parser.RowHeightToPixels(opts.RowHeight())
}

// colOffset returns the pixel distance from the sheet's left edge to col.
// Only custom widths are visited, so distant anchors stay cheap.
func (sd *sheetData) colOffset(col int, opts Options) int {
	def := parser.ColumnWidthToPixels(opts.ColumnWidth())
	px := col * def
	for c, w := range sd.colWidths {
		if c < col {
			px += parser.ColumnWidthToPixels(w) - def
		}
	}
	return px
}

func (sd *sheetData) rowOffset(row int, opts Options) int {
	def := parser.RowHeightToPixels(opts.RowHeight())
	px := row * def
	for r, h := range sd.rowHeights {
		if r < row {
			px += parser.RowHeightToPixels(h) - def
		}
	}
	return px
}

// position computes where a chart inserted at (row, col) lands. Offsets
// larger than the anchor cell move the start to a later cell, and the end
// cell is found by walking the chart's size across the columns and rows.
func (sd *sheetData) position(a chartAnchor, opts Options) geometry {
	width := scaled(defaultChartWidth, a.opts.XScale)
	height := scaled(defaultChartHeight, a.opts.YScale)

	col, row := a.col, a.row
	x1, y1 := a.opts.XOffset, a.opts.YOffset
	for col < ref.MaxCols-1 && x1 >= sd.colPixels(col, opts) {
		x1 -= sd.colPixels(col, opts)
		col++
	}
	for row < ref.MaxRows-1 && y1 >= sd.rowPixels(row, opts) {
		y1 -= sd.rowPixels(row, opts)
		row++
	}

	endCol, endRow := col, row
	x2, y2 := width+x1, height+y1
	for endCol < ref.MaxCols-1 && x2 >= sd.colPixels(endCol, opts) {
		x2 -= sd.colPixels(endCol, opts)
		endCol++
	}
	for endRow < ref.MaxRows-1 && y2 >= sd.rowPixels(endRow, opts) {
		y2 -= sd.rowPixels(endRow, opts)
		endRow++
	}

	return geometry{
		fromCol:    col,
		fromRow:    row,
		fromColOff: parser.PixelsToEMU(x1),
		fromRowOff: parser.PixelsToEMU(y1),
		toCol:      endCol,
		toRow:      endRow,
		toColOff:   parser.PixelsToEMU(x2),
		toRowOff:   parser.PixelsToEMU(y2),
		x:          parser.PixelsToEMU(sd.colOffset(col, opts) + x1),
		y:          parser.PixelsToEMU(sd.rowOffset(row, opts) + y1),
		cx:         parser.PixelsToEMU(width),
		cy:         parser.PixelsToEMU(height),
	}
}

func scaled(px int, scale float64) int {
	if scale == 0 {
		return px
	}
	return int(float64(px)*scale + 0.5)
}

// colRuns groups consecutive columns with equal custom widths for <cols>.
type colRun struct {
	first, last int
	width       float64
}

func (sd *sheetData) colRuns() []colRun {
	cols := make([]int, 0, len(sd.colWidths))
	for c := range sd.colWidths {
		cols = append(cols, c)
	}
	sort.Ints(cols)

	var runs []colRun
	for _, c := range cols {
		w := sd.colWidths[c]
		if n := len(runs); n > 0 && runs[n-1].last == c-1 && runs[n-1].width == w {
			runs[n-1].last = c
			continue
		}
		runs = append(runs, colRun{first: c, last: c, width: w})
	}
	return runs
}
