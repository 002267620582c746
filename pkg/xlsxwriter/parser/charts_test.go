package parser

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func saveChartFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	values := [][]any{
		{"", "Jan", "Feb", "Mar"},
		{"Apple", 2, 3, 5},
		{"Pear", 4, 1, 6},
	}
	for i, row := range values {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	column := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{Name: "Sheet1!$A$2", Categories: "Sheet1!$B$1:$D$1", Values: "Sheet1!$B$2:$D$2"},
		},
		Title: []excelize.RichTextRun{{Text: "Fruit"}},
	}
	line := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{Name: "Sheet1!$A$3", Categories: "Sheet1!$B$1:$D$1", Values: "Sheet1!$B$3:$D$3"},
		},
	}
	if err := f.AddChart("Sheet1", "F2", column, line); err != nil {
		t.Fatalf("AddChart failed: %v", err)
	}
	pie := &excelize.Chart{
		Type:   excelize.Pie,
		Series: []excelize.ChartSeries{{Categories: "Sheet1!$B$1:$D$1", Values: "Sheet1!$B$2:$D$2"}},
	}
	if err := f.AddChart("Sheet1", "F20", pie); err != nil {
		t.Fatalf("AddChart failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "charts.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

func TestExtractCharts(t *testing.T) {
	path := saveChartFixture(t)

	charts, err := ExtractCharts(path, "verbose")
	if err != nil {
		t.Fatalf("ExtractCharts failed: %v", err)
	}
	sheet := charts["Sheet1"]
	if len(sheet) != 2 {
		t.Fatalf("Expected 2 charts, got %d", len(sheet))
	}

	combo := sheet[0]
	if combo.ChartType != "Bar" {
		t.Errorf("Expected Bar, got %s", combo.ChartType)
	}
	if len(combo.Plots) != 2 || combo.Plots[1] != "Line" {
		t.Errorf("Expected Bar and Line plots, got %v", combo.Plots)
	}
	if combo.Title != "Fruit" {
		t.Errorf("Expected title 'Fruit', got %q", combo.Title)
	}
	if len(combo.Series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(combo.Series))
	}
	if combo.Series[0].NameRange != "Sheet1!$A$2" || combo.Series[0].YRange != "Sheet1!$B$2:$D$2" {
		t.Errorf("Unexpected first series: %+v", combo.Series[0])
	}
	if combo.Series[1].XRange != "Sheet1!$B$1:$D$1" || combo.Series[1].YRange != "Sheet1!$B$3:$D$3" {
		t.Errorf("Unexpected second series: %+v", combo.Series[1])
	}
	if combo.Anchor == nil || combo.Anchor.Cell != "F2" || combo.Anchor.Col != 5 || combo.Anchor.Row != 1 {
		t.Errorf("Expected anchor at F2, got %+v", combo.Anchor)
	}
	if combo.W == nil || combo.H == nil {
		t.Error("Expected a size in verbose mode")
	}

	pie := sheet[1]
	if pie.ChartType != "Pie" || pie.Anchor == nil || pie.Anchor.Cell != "F20" {
		t.Errorf("Unexpected second chart: %+v", pie)
	}
	if pie.Part == combo.Part {
		t.Errorf("Charts share part %s", pie.Part)
	}
}

func TestExtractChartsModes(t *testing.T) {
	path := saveChartFixture(t)

	charts, err := ExtractCharts(path, "light")
	if err != nil {
		t.Fatalf("ExtractCharts failed: %v", err)
	}
	if len(charts) != 0 {
		t.Errorf("Expected no charts in light mode, got %d sheets", len(charts))
	}

	charts, err = ExtractCharts(path, "standard")
	if err != nil {
		t.Fatalf("ExtractCharts failed: %v", err)
	}
	for _, c := range charts["Sheet1"] {
		if c.W != nil || c.H != nil {
			t.Errorf("Expected no size outside verbose mode for %s", c.Name)
		}
	}
}

func TestParseDrawingObjects(t *testing.T) {
	drawing := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<xdr:wsDr xmlns:xdr="http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<xdr:twoCellAnchor editAs="oneCell">
<xdr:from><xdr:col>3</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>1</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
<xdr:to><xdr:col>10</xdr:col><xdr:colOff>304800</xdr:colOff><xdr:row>15</xdr:row><xdr:rowOff>76200</xdr:rowOff></xdr:to>
<xdr:graphicFrame macro=""><xdr:nvGraphicFramePr><xdr:cNvPr id="2" name="Chart 1"/><xdr:cNvGraphicFramePr/></xdr:nvGraphicFramePr>
<xdr:xfrm><a:off x="1828800" y="190500"/><a:ext cx="4572000" cy="2743200"/></xdr:xfrm>
<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" r:id="rId2"/></a:graphicData></a:graphic>
</xdr:graphicFrame><xdr:clientData/></xdr:twoCellAnchor>
<xdr:twoCellAnchor>
<xdr:from><xdr:col>0</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>0</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
<xdr:to><xdr:col>1</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>1</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:to>
<xdr:sp><xdr:nvSpPr><xdr:cNvPr id="3" name="Box"/><xdr:cNvSpPr/></xdr:nvSpPr></xdr:sp><xdr:clientData/></xdr:twoCellAnchor>
<xdr:twoCellAnchor editAs="oneCell">
<xdr:from><xdr:col>0</xdr:col><xdr:colOff>9525</xdr:colOff><xdr:row>20</xdr:row><xdr:rowOff>19050</xdr:rowOff></xdr:from>
<xdr:to><xdr:col>7</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>35</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:to>
<xdr:graphicFrame macro=""><xdr:nvGraphicFramePr><xdr:cNvPr id="4" name="Chart 2"/><xdr:cNvGraphicFramePr/></xdr:nvGraphicFramePr>
<xdr:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/></xdr:xfrm>
<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" r:id="rId1"/></a:graphicData></a:graphic>
</xdr:graphicFrame><xdr:clientData/></xdr:twoCellAnchor>
</xdr:wsDr>`

	objects := parseDrawingObjects([]byte(drawing))
	if len(objects) != 2 {
		t.Fatalf("Expected 2 chart frames, got %d", len(objects))
	}

	first := objects[0]
	if first.name != "Chart 1" || first.rID != "rId2" {
		t.Errorf("Unexpected first frame: %+v", first)
	}
	if first.anchor == nil || first.anchor.Cell != "D2" || first.anchor.To != "K16" {
		t.Errorf("Expected anchor D2 to K16, got %+v", first.anchor)
	}
	if first.left != 192 || first.top != 20 || first.width != 480 || first.height != 288 {
		t.Errorf("Expected 192,20 480x288, got %d,%d %dx%d", first.left, first.top, first.width, first.height)
	}

	second := objects[1]
	if second.rID != "rId1" || second.anchor.Cell != "A21" {
		t.Errorf("Unexpected second frame: %+v", second)
	}
	if second.anchor.ColOff != 9525 || second.anchor.RowOff != 19050 {
		t.Errorf("Expected offsets 9525/19050, got %d/%d", second.anchor.ColOff, second.anchor.RowOff)
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		source, target, expected string
	}{
		{"xl/workbook.xml", "worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets/sheet1.xml", "../drawings/drawing1.xml", "xl/drawings/drawing1.xml"},
		{"xl/drawings/drawing1.xml", "../charts/chart2.xml", "xl/charts/chart2.xml"},
		{"xl/workbook.xml", "/xl/worksheets/sheet2.xml", "xl/worksheets/sheet2.xml"},
	}
	for _, tt := range tests {
		if got := resolveTarget(tt.source, tt.target); got != tt.expected {
			t.Errorf("resolveTarget(%q, %q) = %q, expected %q", tt.source, tt.target, got, tt.expected)
		}
	}
	if got := relsPartName("xl/worksheets/sheet1.xml"); got != "xl/worksheets/_rels/sheet1.xml.rels" {
		t.Errorf("relsPartName = %q", got)
	}
}

func TestUnitConversions(t *testing.T) {
	if got := ColumnWidthToPixels(8.43); got != 64 {
		t.Errorf("ColumnWidthToPixels(8.43) = %d, expected 64", got)
	}
	if got := ColumnWidthToPixels(0.5); got != 6 {
		t.Errorf("ColumnWidthToPixels(0.5) = %d, expected 6", got)
	}
	if got := RowHeightToPixels(15); got != 20 {
		t.Errorf("RowHeightToPixels(15) = %d, expected 20", got)
	}
	if got := EMUToPixels(PixelsToEMU(480)); got != 480 {
		t.Errorf("EMU round trip = %d, expected 480", got)
	}
}
