// Package layout builds workbooks from YAML documents.
//
// A document lists worksheets with their cells, column widths, row heights,
// print area and charts:
//
//	properties:
//	  title: Quarterly report
//	sheets:
//	  - name: Sales
//	    columns:
//	      - range: A:A
//	        width: 18
//	    cells:
//	      - at: A1
//	        value: Region
//	      - at: B4
//	        formula: =SUM(B2:B3)
//	        result: 30
//	    charts:
//	      - type: column
//	        at: D2
//	        title: Revenue
//	        series:
//	          - categories: =Sales!$A$2:$A$3
//	            values: =Sales!$B$2:$B$3
package layout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
	"github.com/xuri/excelize/v2"
	"go.alis.build/alog"
	"gopkg.in/yaml.v3"
)

// Document is the root of a layout file.
type Document struct {
	Properties   Properties    `yaml:"properties"`
	DefinedNames []DefinedName `yaml:"defined_names"`
	Sheets       []Sheet       `yaml:"sheets"`
}

// Properties maps onto xlsxwriter.DocProperties.
type Properties struct {
	Title    string `yaml:"title"`
	Subject  string `yaml:"subject"`
	Author   string `yaml:"author"`
	Manager  string `yaml:"manager"`
	Company  string `yaml:"company"`
	Category string `yaml:"category"`
	Keywords string `yaml:"keywords"`
	Comments string `yaml:"comments"`
	Status   string `yaml:"status"`
}

type DefinedName struct {
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
}

// Sheet describes one worksheet. An empty name selects the next SheetN.
type Sheet struct {
	Name      string   `yaml:"name"`
	Columns   []Column `yaml:"columns"`
	Rows      []Row    `yaml:"rows"`
	PrintArea string   `yaml:"print_area"`
	Cells     []Cell   `yaml:"cells"`
	Charts    []Chart  `yaml:"charts"`
}

// Column sets the width of a column span such as "B" or "B:D".
type Column struct {
	Range string  `yaml:"range"`
	Width float64 `yaml:"width"`
}

// Row sets the height of a 1-based row.
type Row struct {
	Row    int     `yaml:"row"`
	Height float64 `yaml:"height"`
}

// Cell is a value or a formula at an A1 cell name. A formula may carry a
// cached numeric result.
type Cell struct {
	At      string   `yaml:"at"`
	Value   any      `yaml:"value"`
	Formula string   `yaml:"formula"`
	Result  *float64 `yaml:"result"`
}

// Chart describes a chart inserted at one or more cells. Combine names a
// secondary chart drawn on the same axes.
type Chart struct {
	Type    string   `yaml:"type"`
	At      CellList `yaml:"at"`
	Title   string   `yaml:"title"`
	XAxis   string   `yaml:"x_axis"`
	YAxis   string   `yaml:"y_axis"`
	Style   int      `yaml:"style"`
	Legend  string   `yaml:"legend"`
	XOffset int      `yaml:"x_offset"`
	YOffset int      `yaml:"y_offset"`
	XScale  float64  `yaml:"x_scale"`
	YScale  float64  `yaml:"y_scale"`
	Series  []Series `yaml:"series"`
	Combine *Chart   `yaml:"combine"`
}

type Series struct {
	Name       string `yaml:"name"`
	Categories string `yaml:"categories"`
	Values     string `yaml:"values"`
}

// CellList is one A1 cell name or a list of them.
type CellList []string

// UnmarshalYAML accepts a scalar or a sequence.
func (l *CellList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = CellList{node.Value}
		return nil
	}
	var cells []string
	if err := node.Decode(&cells); err != nil {
		return err
	}
	*l = cells
	return nil
}

var legends = map[string]xlsxwriter.LegendPosition{
	"":          xlsxwriter.LegendRight,
	"right":     xlsxwriter.LegendRight,
	"left":      xlsxwriter.LegendLeft,
	"top":       xlsxwriter.LegendTop,
	"bottom":    xlsxwriter.LegendBottom,
	"top_right": xlsxwriter.LegendTopRight,
	"none":      xlsxwriter.LegendNone,
}

// Parse decodes a layout document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return &doc, nil
}

// Load reads and parses a layout file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Build writes doc to a new workbook at path.
func Build(ctx context.Context, doc *Document, path string) error {
	wb := xlsxwriter.New(path)
	if err := Apply(ctx, wb, doc); err != nil {
		return err
	}
	if err := wb.Close(); err != nil {
		return err
	}
	alog.Infof(ctx, "wrote %s: %d sheets", path, len(doc.Sheets))
	return nil
}

// Apply adds the contents of doc to wb. Sheets are created first so that
// defined names and series may refer to any of them.
func Apply(ctx context.Context, wb *xlsxwriter.Workbook, doc *Document) error {
	p := doc.Properties
	if p != (Properties{}) {
		if err := wb.SetProperties(xlsxwriter.DocProperties{
			Title:    p.Title,
			Subject:  p.Subject,
			Author:   p.Author,
			Manager:  p.Manager,
			Company:  p.Company,
			Category: p.Category,
			Keywords: p.Keywords,
			Comments: p.Comments,
			Status:   p.Status,
		}); err != nil {
			return err
		}
	}

	sheets := make([]xlsxwriter.Worksheet, len(doc.Sheets))
	for i, s := range doc.Sheets {
		ws, err := wb.AddWorksheet(s.Name)
		if err != nil {
			return fmt.Errorf("sheet %d: %w", i+1, err)
		}
		sheets[i] = ws
	}

	for _, dn := range doc.DefinedNames {
		if err := wb.DefineName(dn.Name, dn.Formula); err != nil {
			return fmt.Errorf("defined name %s: %w", dn.Name, err)
		}
	}

	for i, s := range doc.Sheets {
		if err := applySheet(ctx, wb, sheets[i], s); err != nil {
			return fmt.Errorf("sheet %s: %w", sheets[i].Name(), err)
		}
	}
	return nil
}

func applySheet(ctx context.Context, wb *xlsxwriter.Workbook, ws xlsxwriter.Worksheet, s Sheet) error {
	for _, c := range s.Columns {
		first, last, err := parseColumns(c.Range)
		if err != nil {
			return err
		}
		if err := ws.SetColumnWidth(first, last, c.Width); err != nil {
			return err
		}
	}
	for _, r := range s.Rows {
		if err := ws.SetRowHeight(r.Row-1, r.Height); err != nil {
			return err
		}
	}
	if s.PrintArea != "" {
		r, err := ref.ParseRange(ref.QuoteSheetName(ws.Name()) + "!" + s.PrintArea)
		if err != nil {
			return fmt.Errorf("print area: %w", err)
		}
		if err := ws.SetPrintArea(r.FirstRow, r.FirstCol, r.LastRow, r.LastCol); err != nil {
			return err
		}
	}

	for _, c := range s.Cells {
		if err := writeCell(ws, c); err != nil {
			return fmt.Errorf("cell %s: %w", c.At, err)
		}
	}

	for i, c := range s.Charts {
		if err := addChart(wb, ws, c); err != nil {
			return fmt.Errorf("chart %d: %w", i+1, err)
		}
	}
	alog.Debugf(ctx, "laid out %s: %d cells, %d charts", ws.Name(), len(s.Cells), len(s.Charts))
	return nil
}

func cellPosition(name string) (int, int, error) {
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(name, "$", ""))
	if err != nil {
		return 0, 0, err
	}
	return row - 1, col - 1, nil
}

func parseColumns(span string) (int, int, error) {
	first, last, _ := strings.Cut(span, ":")
	if last == "" {
		last = first
	}
	a, err := excelize.ColumnNameToNumber(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, err
	}
	b, err := excelize.ColumnNameToNumber(strings.TrimSpace(last))
	if err != nil {
		return 0, 0, err
	}
	return a - 1, b - 1, nil
}

func writeCell(ws xlsxwriter.Worksheet, c Cell) error {
	row, col, err := cellPosition(c.At)
	if err != nil {
		return err
	}
	if c.Formula != "" {
		if c.Result != nil {
			return ws.WriteFormulaNum(row, col, c.Formula, *c.Result)
		}
		return ws.WriteFormula(row, col, c.Formula)
	}

	switch v := c.Value.(type) {
	case nil:
		return ws.WriteBlank(row, col)
	case string:
		return ws.WriteString(row, col, v)
	case int:
		return ws.WriteNumber(row, col, float64(v))
	case float64:
		return ws.WriteNumber(row, col, v)
	case bool:
		return ws.WriteBoolean(row, col, v)
	default:
		return fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}

func newChart(wb *xlsxwriter.Workbook, c Chart) (xlsxwriter.Chart, error) {
	kind, err := xlsxwriter.ParseChartKind(c.Type)
	if err != nil {
		return xlsxwriter.Chart{}, err
	}
	chart, err := wb.AddChart(kind)
	if err != nil {
		return xlsxwriter.Chart{}, err
	}

	for _, s := range c.Series {
		series, err := chart.AddSeries(s.Categories, s.Values)
		if err != nil {
			return xlsxwriter.Chart{}, err
		}
		if s.Name != "" {
			if err := series.SetName(s.Name); err != nil {
				return xlsxwriter.Chart{}, err
			}
		}
	}

	if c.Title != "" {
		if err := chart.SetTitle(c.Title); err != nil {
			return xlsxwriter.Chart{}, err
		}
	}
	if c.XAxis != "" {
		if err := chart.SetXAxisName(c.XAxis); err != nil {
			return xlsxwriter.Chart{}, err
		}
	}
	if c.YAxis != "" {
		if err := chart.SetYAxisName(c.YAxis); err != nil {
			return xlsxwriter.Chart{}, err
		}
	}
	if c.Style != 0 {
		if err := chart.SetStyle(c.Style); err != nil {
			return xlsxwriter.Chart{}, err
		}
	}
	legend, ok := legends[c.Legend]
	if !ok {
		return xlsxwriter.Chart{}, fmt.Errorf("%w: unknown legend position %q", xlsxwriter.ErrInvalidChart, c.Legend)
	}
	if err := chart.SetLegendPosition(legend); err != nil {
		return xlsxwriter.Chart{}, err
	}
	return chart, nil
}

func addChart(wb *xlsxwriter.Workbook, ws xlsxwriter.Worksheet, c Chart) error {
	chart, err := newChart(wb, c)
	if err != nil {
		return err
	}
	if c.Combine != nil {
		secondary, err := newChart(wb, *c.Combine)
		if err != nil {
			return fmt.Errorf("combine: %w", err)
		}
		if err := chart.Combine(secondary); err != nil {
			return err
		}
	}

	opts := xlsxwriter.ChartOptions{
		XOffset: c.XOffset,
		YOffset: c.YOffset,
		XScale:  c.XScale,
		YScale:  c.YScale,
	}
	for _, at := range c.At {
		row, col, err := cellPosition(at)
		if err != nil {
			return err
		}
		if err := ws.InsertChartOpt(row, col, chart, opts); err != nil {
			return err
		}
	}
	return nil
}
