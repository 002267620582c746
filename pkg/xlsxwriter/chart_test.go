package xlsxwriter

import (
	"errors"
	"testing"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
)

func TestSeriesRangeRoundTrip(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	c := mustChart(t, wb, ChartLine)
	s, err := c.AddSeries("", "")
	if err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}

	rows := []int{0, 1, 9, 99, 65535, 65536, 1048574, ref.MaxRows - 1}
	cols := []int{0, 1, 25, 26, 701, 702, 16383}
	for _, sheet := range []string{"Sheet1", "My Data", "2024", "O'Brien"} {
		for _, r := range rows {
			for _, col := range cols {
				lastRow := min(r+3, ref.MaxRows-1)
				if err := s.SetValues(sheet, r, col, lastRow, col); err != nil {
					t.Fatalf("SetValues(%q, %d, %d) failed: %v", sheet, r, col, err)
				}
				got, err := ref.ParseRange(s.Values())
				if err != nil {
					t.Fatalf("ParseRange(%q) failed: %v", s.Values(), err)
				}
				want := ref.Range{Sheet: sheet, FirstRow: r, FirstCol: col, LastRow: lastRow, LastCol: col}
				if got != want {
					t.Errorf("Round trip of %q = %+v, expected %+v", s.Values(), got, want)
				}

				if err := s.SetCategories(sheet, r, col, r, col); err != nil {
					t.Fatalf("SetCategories failed: %v", err)
				}
				got, err = ref.ParseRange(s.Categories())
				if err != nil {
					t.Fatalf("ParseRange(%q) failed: %v", s.Categories(), err)
				}
				want = ref.Range{Sheet: sheet, FirstRow: r, FirstCol: col, LastRow: r, LastCol: col}
				if got != want {
					t.Errorf("Round trip of %q = %+v, expected %+v", s.Categories(), got, want)
				}
			}
		}
	}
}

func TestSeriesSettersRejectOutOfRange(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	c := mustChart(t, wb, ChartColumn)
	s, err := c.AddSeries("=Sheet1!$A$1:$A$5", "=Sheet1!$B$1:$B$5")
	if err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}

	tests := []struct {
		firstRow, firstCol, lastRow, lastCol int
	}{
		{-1, 0, 4, 0},
		{0, -1, 4, 0},
		{0, 0, ref.MaxRows, 0},
		{0, 0, 4, ref.MaxCols},
		{ref.MaxRows, ref.MaxCols, ref.MaxRows, ref.MaxCols},
	}
	for _, tt := range tests {
		err := s.SetValues("Sheet1", tt.firstRow, tt.firstCol, tt.lastRow, tt.lastCol)
		if !errors.Is(err, ErrInvalidReference) {
			t.Errorf("SetValues(%+v): expected ErrInvalidReference, got %v", tt, err)
		}
		err = s.SetCategories("Sheet1", tt.firstRow, tt.firstCol, tt.lastRow, tt.lastCol)
		if !errors.Is(err, ErrInvalidReference) {
			t.Errorf("SetCategories(%+v): expected ErrInvalidReference, got %v", tt, err)
		}
	}
	if s.Values() != "=Sheet1!$B$1:$B$5" {
		t.Errorf("Values mutated to %q", s.Values())
	}
	if s.Categories() != "=Sheet1!$A$1:$A$5" {
		t.Errorf("Categories mutated to %q", s.Categories())
	}
}

func TestSingleCellRanges(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	c := mustChart(t, wb, ChartColumn)
	s, _ := c.AddSeries("", "")

	if err := s.SetCategories("Sheet1", 0, 0, 0, 0); err != nil {
		t.Fatalf("SetCategories failed: %v", err)
	}
	if err := s.SetValues("Sheet1", 0, 1, 0, 1); err != nil {
		t.Fatalf("SetValues failed: %v", err)
	}
	if s.Categories() != "=Sheet1!$A$1" {
		t.Errorf("Expected collapsed category, got %q", s.Categories())
	}
	if s.Values() != "=Sheet1!$B$1:$B$1" {
		t.Errorf("Expected range form for values, got %q", s.Values())
	}
}

func TestAddSeriesValidatesFormulas(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	c := mustChart(t, wb, ChartLine)

	invalid := []struct {
		categories, values string
	}{
		{"", "Sheet1!$A$1:$A$5"},
		{"", "=$A$1:$A$5"},
		{"=Sheet1!", ""},
		{"", "=(Sheet1!$A$1,)"},
		{"", "=Sheet1!$A$1:$A$1048577"},
	}
	for _, tt := range invalid {
		if _, err := c.AddSeries(tt.categories, tt.values); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("AddSeries(%q, %q): expected ErrInvalidReference, got %v", tt.categories, tt.values, err)
		}
	}
	if len(c.Series()) != 0 {
		t.Fatalf("Expected no series after rejected formulas, got %d", len(c.Series()))
	}

	// Sheets are not required to exist.
	s, err := c.AddSeries("='Not Yet'!$A$1:$A$3", "=Other!$B$1:$B$3")
	if err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}
	if s.Chart().ID() != c.ID() {
		t.Errorf("Series belongs to chart %d, expected %d", s.Chart().ID(), c.ID())
	}
}

func TestSeriesOrderAndInterning(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	c := mustChart(t, wb, ChartColumn)

	formulas := []string{"=Sheet1!$A$1:$A$5", "=Sheet1!$B$1:$B$5", "=Sheet1!$C$1:$C$5"}
	for _, f := range formulas {
		if _, err := c.AddSeries("", f); err != nil {
			t.Fatalf("AddSeries(%q) failed: %v", f, err)
		}
	}

	series := c.Series()
	if len(series) != len(formulas) {
		t.Fatalf("Expected %d series, got %d", len(formulas), len(series))
	}
	for i, s := range series {
		if s.Values() != formulas[i] {
			t.Errorf("Series %d values = %q, expected %q", i, s.Values(), formulas[i])
		}
		if !wb.formulas.Contains(formulas[i]) {
			t.Errorf("Formula %q not interned", formulas[i])
		}
	}
}

func TestSeriesName(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	c := mustChart(t, wb, ChartPie)
	s, _ := c.AddSeries("", "=Sheet1!$B$2:$B$4")

	if err := s.SetName("Revenue"); err != nil {
		t.Fatalf("SetName failed: %v", err)
	}
	if s.Name() != "Revenue" {
		t.Errorf("Expected literal name, got %q", s.Name())
	}
	if err := s.SetNameRange("Sheet1", 0, 1); err != nil {
		t.Fatalf("SetNameRange failed: %v", err)
	}
	if s.Name() != "=Sheet1!$B$1" {
		t.Errorf("Expected name reference, got %q", s.Name())
	}
	if err := s.SetName("=not a ref"); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Expected ErrInvalidReference, got %v", err)
	}
	if s.Name() != "=Sheet1!$B$1" {
		t.Errorf("Name mutated to %q", s.Name())
	}
}

func TestChartSettings(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	c := mustChart(t, wb, ChartBar)

	if err := c.SetStyle(0); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for style 0, got %v", err)
	}
	if err := c.SetStyle(49); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for style 49, got %v", err)
	}
	if err := c.SetStyle(10); err != nil {
		t.Errorf("SetStyle failed: %v", err)
	}
	if err := c.SetLegendPosition(LegendPosition(42)); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for unknown legend position, got %v", err)
	}
	if err := c.SetLegendPosition(LegendNone); err != nil {
		t.Errorf("SetLegendPosition failed: %v", err)
	}
	if err := c.SetTitle("=Sheet1"); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Expected ErrInvalidReference for title reference, got %v", err)
	}
	if err := c.SetXAxisName("Month"); err != nil {
		t.Errorf("SetXAxisName failed: %v", err)
	}
	if err := c.SetYAxisName("=Sheet1!$C$1"); err != nil {
		t.Errorf("SetYAxisName failed: %v", err)
	}

	cd := wb.charts[0]
	if cd.style != 10 || cd.legend != LegendNone || cd.xAxisName != "Month" || cd.yAxisName != "=Sheet1!$C$1" {
		t.Errorf("Unexpected chart state: %+v", cd)
	}
}

func TestCombine(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	ws := mustSheet(t, wb, "")
	column := mustChart(t, wb, ChartColumn)
	line := mustChart(t, wb, ChartLine)
	pie := mustChart(t, wb, ChartPie)
	bar := mustChart(t, wb, ChartBar)
	scatter := mustChart(t, wb, ChartScatter)

	if err := column.Combine(pie); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for column+pie, got %v", err)
	}
	if err := column.Combine(bar); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for column+bar, got %v", err)
	}
	if err := column.Combine(scatter); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for column+scatter, got %v", err)
	}
	if err := column.Combine(column); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for self combine, got %v", err)
	}
	if err := column.Combine(line); err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if err := column.Combine(line); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for second combine, got %v", err)
	}
	if err := ws.InsertChart(0, 0, line); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart inserting a combined chart, got %v", err)
	}

	area := mustChart(t, wb, ChartArea)
	lineTwo := mustChart(t, wb, ChartLine)
	if err := ws.InsertChart(0, 0, lineTwo); err != nil {
		t.Fatalf("InsertChart failed: %v", err)
	}
	if err := area.Combine(lineTwo); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart combining an inserted chart, got %v", err)
	}
}
