package layout

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter"
	"github.com/xuri/excelize/v2"
)

const salesLayout = `
properties:
  title: Quarterly
  author: Finance
defined_names:
  - name: Totals
    formula: =Sales!$B$4
sheets:
  - name: Sales
    columns:
      - range: A
        width: 18
      - range: B:C
        width: 10
    rows:
      - row: 1
        height: 24
    print_area: A1:C4
    cells:
      - at: A1
        value: Region
      - at: B1
        value: Q1
      - at: A2
        value: North
      - at: B2
        value: 10
      - at: A3
        value: South
      - at: B3
        value: 20.5
      - at: B4
        formula: =SUM(B2:B3)
        result: 30.5
      - at: C4
        value: true
    charts:
      - type: column
        at: [E2, E20]
        title: Revenue
        legend: bottom
        series:
          - name: =Sales!$B$1
            categories: =Sales!$A$2:$A$3
            values: =Sales!$B$2:$B$3
        combine:
          type: line
          series:
            - values: =Sales!$B$2:$B$3
  - cells:
      - at: A1
        value: second
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(salesLayout))
	require.NoError(t, err)

	assert.Equal(t, "Quarterly", doc.Properties.Title)
	require.Len(t, doc.Sheets, 2)
	sales := doc.Sheets[0]
	assert.Equal(t, "Sales", sales.Name)
	assert.Len(t, sales.Cells, 8)
	assert.Equal(t, 10, sales.Cells[3].Value)
	require.NotNil(t, sales.Cells[6].Result)
	assert.Equal(t, 30.5, *sales.Cells[6].Result)

	require.Len(t, sales.Charts, 1)
	chart := sales.Charts[0]
	assert.Equal(t, CellList{"E2", "E20"}, chart.At)
	require.NotNil(t, chart.Combine)
	assert.Equal(t, "line", chart.Combine.Type)
}

func TestParseSingleAnchorAndEmpty(t *testing.T) {
	doc, err := Parse([]byte("sheets:\n  - charts:\n      - type: pie\n        at: B2\n"))
	require.NoError(t, err)
	assert.Equal(t, CellList{"B2"}, doc.Sheets[0].Charts[0].At)

	doc, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Sheets)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("sheets:\n  - nmae: Typo\n"))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	doc, err := Parse([]byte(salesLayout))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, Build(context.Background(), doc, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sales", "Sheet2"}, f.GetSheetList())
	v, err := f.GetCellValue("Sales", "B3")
	require.NoError(t, err)
	assert.Equal(t, "20.5", v)
	formula, err := f.GetCellFormula("Sales", "B4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(B2:B3)", formula)
	width, err := f.GetColWidth("Sales", "A")
	require.NoError(t, err)
	assert.InDelta(t, 18.71, width, 0.01)
	v, err = f.GetCellValue("Sheet2", "A1")
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "Quarterly", props.Title)

	names := f.GetDefinedName()
	var found bool
	for _, dn := range names {
		if dn.Name == "Totals" {
			found = true
			assert.Equal(t, "Sales!$B$4", dn.RefersTo)
		}
	}
	assert.True(t, found, "defined name Totals missing from %v", names)
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		target error
	}{
		{"bad sheet name", "sheets:\n  - name: a/b\n", xlsxwriter.ErrInvalidName},
		{"bad chart type", "sheets:\n  - charts:\n      - type: bubble\n", xlsxwriter.ErrInvalidChart},
		{"bad legend", "sheets:\n  - charts:\n      - type: pie\n        legend: middle\n", xlsxwriter.ErrInvalidChart},
		{"bad series", "sheets:\n  - charts:\n      - type: pie\n        series:\n          - values: A1:A3\n", xlsxwriter.ErrInvalidReference},
		{"bad combine", "sheets:\n  - charts:\n      - type: column\n        combine:\n          type: pie\n", xlsxwriter.ErrInvalidChart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.layout))
			require.NoError(t, err)
			wb := xlsxwriter.New(filepath.Join(t.TempDir(), "out.xlsx"))
			err = Apply(context.Background(), wb, doc)
			assert.True(t, errors.Is(err, tt.target), "expected %v, got %v", tt.target, err)
		})
	}

	doc, err := Parse([]byte("sheets:\n  - cells:\n      - at: nowhere\n        value: 1\n"))
	require.NoError(t, err)
	wb := xlsxwriter.New(filepath.Join(t.TempDir(), "out.xlsx"))
	assert.Error(t, Apply(context.Background(), wb, doc))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(salesLayout), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Sheets, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
