package xlsxwriter

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
)

// maxStringLength is the longest string a cell can hold.
const maxStringLength = 32767

// Worksheet is a handle to a worksheet owned by a Workbook.
type Worksheet struct {
	wb    *Workbook
	index int
}

type sheetData struct {
	id         int
	name       string
	rows       map[int]map[int]cell
	colWidths  map[int]float64
	rowHeights map[int]float64
	anchors    []chartAnchor
	printArea  *ref.Range
}

// ChartOptions positions and scales an inserted chart.
type ChartOptions struct {
	// XOffset and YOffset move the chart right and down from the anchor
	// cell, in pixels.
	XOffset int
	YOffset int
	// XScale and YScale scale the default 480x288 pixel chart. Zero means 1.
	XScale float64
	YScale float64
}

type chartAnchor struct {
	chart int
	row   int
	col   int
	opts  ChartOptions
}

// Anchor is a chart insertion record.
type Anchor struct {
	Chart   Chart
	Row     int
	Col     int
	Options ChartOptions
}

func (ws Worksheet) data() (*sheetData, error) {
	if ws.wb == nil || ws.index < 0 || ws.index >= len(ws.wb.sheets) {
		return nil, ErrInvalidHandle
	}
	return ws.wb.sheets[ws.index], nil
}

// Name returns the worksheet name.
func (ws Worksheet) Name() string {
	sd, err := ws.data()
	if err != nil {
		return ""
	}
	return sd.name
}

// ID returns the 1-based worksheet identifier.
func (ws Worksheet) ID() int {
	sd, err := ws.data()
	if err != nil {
		return 0
	}
	return sd.id
}

// writable returns the sheet data after checking the workbook is open and
// the coordinates are inside the worksheet limits.
func (ws Worksheet) writable(row, col int) (*sheetData, error) {
	if ws.wb == nil {
		return nil, ErrInvalidHandle
	}
	if err := ws.wb.checkOpen(); err != nil {
		return nil, err
	}
	sd, err := ws.data()
	if err != nil {
		return nil, err
	}
	if err := ref.CheckCell(row, col); err != nil {
		return nil, &CellError{Sheet: sd.name, Row: row, Col: col, Err: invalidRef(err)}
	}
	return sd, nil
}

func (sd *sheetData) put(row, col int, c cell) {
	r, ok := sd.rows[row]
	if !ok {
		r = make(map[int]cell)
		sd.rows[row] = r
	}
	r[col] = c
}

// WriteNumber stores a number. NaN and infinities are rejected.
func (ws Worksheet) WriteNumber(row, col int, v float64) error {
	sd, err := ws.writable(row, col)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &CellError{Sheet: sd.name, Row: row, Col: col, Err: fmt.Errorf("%w: %v", ErrInvalidValue, v)}
	}
	sd.put(row, col, cell{kind: CellNumber, number: v})
	return nil
}

// WriteString stores a string through the workbook's shared string table.
func (ws Worksheet) WriteString(row, col int, s string) error {
	sd, err := ws.writable(row, col)
	if err != nil {
		return err
	}
	if utf8.RuneCountInString(s) > maxStringLength {
		return &CellError{Sheet: sd.name, Row: row, Col: col,
			Err: fmt.Errorf("%w: string longer than %d characters", ErrInvalidValue, maxStringLength)}
	}
	sd.put(row, col, cell{kind: CellString, sst: ws.wb.strings.Add(s)})
	return nil
}

// WriteFormula stores a formula without a cached result. The leading '=' is
// optional.
func (ws Worksheet) WriteFormula(row, col int, formula string) error {
	return ws.writeFormula(row, col, formula, 0, false)
}

// WriteFormulaNum stores a formula together with its cached numeric result.
func (ws Worksheet) WriteFormulaNum(row, col int, formula string, value float64) error {
	return ws.writeFormula(row, col, formula, value, true)
}

func (ws Worksheet) writeFormula(row, col int, formula string, value float64, cached bool) error {
	sd, err := ws.writable(row, col)
	if err != nil {
		return err
	}
	f := ref.StripEquals(strings.TrimSpace(formula))
	if f == "" {
		return &CellError{Sheet: sd.name, Row: row, Col: col, Err: fmt.Errorf("%w: empty formula", ErrInvalidValue)}
	}
	if cached && (math.IsNaN(value) || math.IsInf(value, 0)) {
		return &CellError{Sheet: sd.name, Row: row, Col: col, Err: fmt.Errorf("%w: %v", ErrInvalidValue, value)}
	}
	sd.put(row, col, cell{kind: CellFormula, formula: f, number: value, cached: cached})
	return nil
}

// WriteBoolean stores a boolean.
func (ws Worksheet) WriteBoolean(row, col int, b bool) error {
	sd, err := ws.writable(row, col)
	if err != nil {
		return err
	}
	sd.put(row, col, cell{kind: CellBoolean, boolean: b})
	return nil
}

// WriteBlank stores an explicit blank cell.
func (ws Worksheet) WriteBlank(row, col int) error {
	sd, err := ws.writable(row, col)
	if err != nil {
		return err
	}
	sd.put(row, col, cell{kind: CellBlank})
	return nil
}

// Cell returns the value stored at (row, col).
func (ws Worksheet) Cell(row, col int) (CellValue, bool) {
	sd, err := ws.data()
	if err != nil {
		return CellValue{}, false
	}
	c, ok := sd.rows[row][col]
	if !ok {
		return CellValue{}, false
	}
	v := CellValue{Kind: c.kind}
	switch c.kind {
	case CellNumber:
		v.Number = c.number
	case CellString:
		v.StringIndex = c.sst
		v.String, _ = ws.wb.strings.Get(c.sst)
	case CellFormula:
		v.Formula = c.formula
		v.Number = c.number
		v.Cached = c.cached
	case CellBoolean:
		v.Bool = c.boolean
	}
	return v, true
}

// SetColumnWidth sets the width, in characters, of columns firstCol..lastCol.
func (ws Worksheet) SetColumnWidth(firstCol, lastCol int, width float64) error {
	sd, err := ws.writable(0, firstCol)
	if err != nil {
		return err
	}
	if err := ref.CheckCell(0, lastCol); err != nil {
		return &CellError{Sheet: sd.name, Row: 0, Col: lastCol, Err: invalidRef(err)}
	}
	if width < 0 || width > 255 || math.IsNaN(width) {
		return &CellError{Sheet: sd.name, Row: 0, Col: firstCol, Err: fmt.Errorf("%w: column width %v", ErrInvalidValue, width)}
	}
	if firstCol > lastCol {
		firstCol, lastCol = lastCol, firstCol
	}
	for c := firstCol; c <= lastCol; c++ {
		sd.colWidths[c] = width
	}
	return nil
}

// SetRowHeight sets the height of a row in points.
func (ws Worksheet) SetRowHeight(row int, height float64) error {
	sd, err := ws.writable(row, 0)
	if err != nil {
		return err
	}
	if height < 0 || height > 409 || math.IsNaN(height) {
		return &CellError{Sheet: sd.name, Row: row, Col: 0, Err: fmt.Errorf("%w: row height %v", ErrInvalidValue, height)}
	}
	sd.rowHeights[row] = height
	return nil
}

// SetPrintArea sets the printed range of the worksheet.
func (ws Worksheet) SetPrintArea(firstRow, firstCol, lastRow, lastCol int) error {
	sd, err := ws.writable(firstRow, firstCol)
	if err != nil {
		return err
	}
	if err := ref.CheckCell(lastRow, lastCol); err != nil {
		return &CellError{Sheet: sd.name, Row: lastRow, Col: lastCol, Err: invalidRef(err)}
	}
	if firstRow > lastRow {
		firstRow, lastRow = lastRow, firstRow
	}
	if firstCol > lastCol {
		firstCol, lastCol = lastCol, firstCol
	}
	sd.printArea = &ref.Range{
		Sheet:    sd.name,
		FirstRow: firstRow,
		FirstCol: firstCol,
		LastRow:  lastRow,
		LastCol:  lastCol,
	}
	return nil
}

// InsertChart anchors a chart's top-left corner at (row, col).
func (ws Worksheet) InsertChart(row, col int, c Chart) error {
	return ws.InsertChartOpt(row, col, c, ChartOptions{})
}

// InsertChartOpt anchors a chart with offsets and scaling. The same chart may
// be inserted any number of times; each insertion is written as its own
// chart part.
func (ws Worksheet) InsertChartOpt(row, col int, c Chart, opts ChartOptions) error {
	sd, err := ws.writable(row, col)
	if err != nil {
		return err
	}
	if c.wb != ws.wb {
		return fmt.Errorf("%w: chart belongs to another workbook", ErrInvalidHandle)
	}
	cd, err := c.data()
	if err != nil {
		return err
	}
	if cd.parent >= 0 {
		return fmt.Errorf("%w: chart %d is combined into another chart", ErrInvalidChart, cd.id)
	}
	if opts.XOffset < 0 || opts.YOffset < 0 || opts.XScale < 0 || opts.YScale < 0 {
		return fmt.Errorf("%w: negative chart offset or scale", ErrInvalidValue)
	}
	sd.anchors = append(sd.anchors, chartAnchor{chart: c.index, row: row, col: col, opts: opts})
	return nil
}

// Anchors returns the chart insertions of this worksheet in insertion order.
func (ws Worksheet) Anchors() []Anchor {
	sd, err := ws.data()
	if err != nil {
		return nil
	}
	out := make([]Anchor, len(sd.anchors))
	for i, a := range sd.anchors {
		out[i] = Anchor{Chart: Chart{wb: ws.wb, index: a.chart}, Row: a.row, Col: a.col, Options: a.opts}
	}
	return out
}

// sortedRows returns the row numbers that hold cells or a custom height.
func (sd *sheetData) sortedRows() []int {
	seen := make(map[int]struct{}, len(sd.rows)+len(sd.rowHeights))
	rows := make([]int, 0, len(sd.rows)+len(sd.rowHeights))
	for r := range sd.rows {
		seen[r] = struct{}{}
		rows = append(rows, r)
	}
	for r := range sd.rowHeights {
		if _, ok := seen[r]; !ok {
			rows = append(rows, r)
		}
	}
	sort.Ints(rows)
	return rows
}

func sortedCols(cells map[int]cell) []int {
	cols := make([]int, 0, len(cells))
	for c := range cells {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

// dimension returns the used cell range, or ok=false for an empty sheet.
func (sd *sheetData) dimension() (minRow, minCol, maxRow, maxCol int, ok bool) {
	for r, cells := range sd.rows {
		for c := range cells {
			if !ok {
				minRow, maxRow, minCol, maxCol = r, r, c, c
				ok = true
				continue
			}
			minRow = min(minRow, r)
			maxRow = max(maxRow, r)
			minCol = min(minCol, c)
			maxCol = max(maxCol, c)
		}
	}
	return
}
