package xlsxwriter

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/packager"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/parser"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/xmlwriter"
)

// worksheetXML serializes one worksheet. drawingRel is the relationship id
// of the sheet's drawing, or "" when it has no charts.
func (wb *Workbook) worksheetXML(index int, drawingRel string) ([]byte, error) {
	sd := wb.sheets[index]
	part := fmt.Sprintf("xl/worksheets/sheet%d.xml", sd.id)

	w := xmlwriter.New()
	w.Declaration()
	w.Start("worksheet",
		xmlwriter.A("xmlns", packager.NSSpreadsheet),
		xmlwriter.A("xmlns:r", packager.NSRelationship),
	)

	dim := "A1"
	if r1, c1, r2, c2, ok := sd.dimension(); ok {
		first, _ := ref.CellName(r1, c1)
		last, _ := ref.CellName(r2, c2)
		dim = first
		if first != last {
			dim = first + ":" + last
		}
	}
	w.Empty("dimension", xmlwriter.A("ref", dim))

	w.Start("sheetViews")
	if index == 0 {
		w.Empty("sheetView", xmlwriter.A("tabSelected", "1"), xmlwriter.A("workbookViewId", "0"))
	} else {
		w.Empty("sheetView", xmlwriter.A("workbookViewId", "0"))
	}
	w.End("sheetViews")

	if wb.opts.DefaultRowHeight > 0 {
		w.Empty("sheetFormatPr",
			xmlwriter.AFloat("defaultRowHeight", wb.opts.RowHeight()),
			xmlwriter.A("customHeight", "1"),
		)
	} else {
		w.Empty("sheetFormatPr", xmlwriter.AFloat("defaultRowHeight", wb.opts.RowHeight()))
	}

	if runs := sd.colRuns(); len(runs) > 0 {
		w.Start("cols")
		for _, run := range runs {
			attrs := []xmlwriter.Attr{
				xmlwriter.AInt("min", run.first+1),
				xmlwriter.AInt("max", run.last+1),
				xmlwriter.AFloat("width", colXMLWidth(run.width)),
			}
			if run.width == 0 {
				attrs = append(attrs, xmlwriter.A("hidden", "1"))
			}
			attrs = append(attrs, xmlwriter.A("customWidth", "1"))
			w.Empty("col", attrs...)
		}
		w.End("cols")
	}

	rows := sd.sortedRows()
	if len(rows) == 0 {
		w.Empty("sheetData")
	} else {
		w.Start("sheetData")
		for _, r := range rows {
			if err := wb.writeRow(w, sd, r); err != nil {
				w.Bytes() // return the buffer to the pool
				return nil, &PartError{Part: part, Kind: ErrSchemaViolation, Err: err}
			}
		}
		w.End("sheetData")
	}

	w.Empty("pageMargins",
		xmlwriter.A("left", "0.7"),
		xmlwriter.A("right", "0.7"),
		xmlwriter.A("top", "0.75"),
		xmlwriter.A("bottom", "0.75"),
		xmlwriter.A("header", "0.3"),
		xmlwriter.A("footer", "0.3"),
	)
	if drawingRel != "" {
		w.Empty("drawing", xmlwriter.A("r:id", drawingRel))
	}
	w.End("worksheet")
	return w.Bytes(), nil
}

func (wb *Workbook) writeRow(w *xmlwriter.Writer, sd *sheetData, r int) error {
	attrs := []xmlwriter.Attr{xmlwriter.AInt("r", r+1)}
	if h, ok := sd.rowHeights[r]; ok {
		attrs = append(attrs, xmlwriter.AFloat("ht", h))
		if h == 0 {
			attrs = append(attrs, xmlwriter.A("hidden", "1"))
		}
		attrs = append(attrs, xmlwriter.A("customHeight", "1"))
	}

	cells := sd.rows[r]
	if len(cells) == 0 {
		w.Empty("row", attrs...)
		return nil
	}

	w.Start("row", attrs...)
	for _, c := range sortedCols(cells) {
		name, err := ref.CellName(r, c)
		if err != nil {
			return err
		}
		if err := wb.writeCell(w, name, cells[c]); err != nil {
			return err
		}
	}
	w.End("row")
	return nil
}

func (wb *Workbook) writeCell(w *xmlwriter.Writer, name string, c cell) error {
	switch c.kind {
	case CellNumber:
		w.Start("c", xmlwriter.A("r", name))
		w.Element("v", xmlwriter.FormatFloat(c.number))
		w.End("c")
	case CellString:
		if c.sst < 0 || c.sst >= wb.strings.Len() {
			return fmt.Errorf("cell %s references shared string %d of %d", name, c.sst, wb.strings.Len())
		}
		w.Start("c", xmlwriter.A("r", name), xmlwriter.A("t", "s"))
		w.Element("v", strconv.Itoa(c.sst))
		w.End("c")
	case CellFormula:
		w.Start("c", xmlwriter.A("r", name))
		w.Element("f", c.formula)
		if c.cached {
			w.Element("v", xmlwriter.FormatFloat(c.number))
		}
		w.End("c")
	case CellBoolean:
		v := "0"
		if c.boolean {
			v = "1"
		}
		w.Start("c", xmlwriter.A("r", name), xmlwriter.A("t", "b"))
		w.Element("v", v)
		w.End("c")
	default:
		w.Empty("c", xmlwriter.A("r", name))
	}
	return nil
}

// colXMLWidth converts a width in characters to the stored width, which
// includes the column padding and is truncated to 1/256 of a character.
func colXMLWidth(width float64) float64 {
	if width <= 0 {
		return 0
	}
	px := parser.ColumnWidthToPixels(width)
	return float64(int(float64(px)/7*256)) / 256
}

func sharedStringsXML(strs []string, count int) []byte {
	w := xmlwriter.New()
	w.Declaration()
	w.Start("sst",
		xmlwriter.A("xmlns", packager.NSSpreadsheet),
		xmlwriter.AInt("count", count),
		xmlwriter.AInt("uniqueCount", len(strs)),
	)
	for _, s := range strs {
		w.Start("si")
		if preserveSpace(s) {
			w.Element("t", xmlwriter.EscapeControl(s), xmlwriter.A("xml:space", "preserve"))
		} else {
			w.Element("t", xmlwriter.EscapeControl(s))
		}
		w.End("si")
	}
	w.End("sst")
	return w.Bytes()
}

func preserveSpace(s string) bool {
	if s == "" {
		return false
	}
	return isSpace(s[0]) || isSpace(s[len(s)-1])
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
