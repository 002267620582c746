package xlsxwriter

import (
	"errors"
	"strings"
	"testing"
)

func TestAddWorksheetGeneratesNames(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	first := mustSheet(t, wb, "")
	second := mustSheet(t, wb, "")
	if first.Name() != "Sheet1" || second.Name() != "Sheet2" {
		t.Errorf("Expected Sheet1, Sheet2, got %s, %s", first.Name(), second.Name())
	}
	if first.ID() != 1 || second.ID() != 2 {
		t.Errorf("Expected ids 1, 2, got %d, %d", first.ID(), second.ID())
	}
}

func TestAddWorksheetSkipsTakenNames(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	mustSheet(t, wb, "Data")
	mustSheet(t, wb, "Sheet2")
	ws := mustSheet(t, wb, "")
	if ws.Name() != "Sheet3" {
		t.Errorf("Expected Sheet3, got %s", ws.Name())
	}
}

func TestAddWorksheetDuplicateIgnoresCase(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	mustSheet(t, wb, "Sales")

	for _, name := range []string{"Sales", "SALES", "sales"} {
		_, err := wb.AddWorksheet(name)
		if !errors.Is(err, ErrDuplicateName) {
			t.Errorf("AddWorksheet(%q): expected ErrDuplicateName, got %v", name, err)
		}
	}
	if len(wb.Worksheets()) != 1 {
		t.Errorf("Expected 1 worksheet after rejected duplicates, got %d", len(wb.Worksheets()))
	}

	// The workbook stays usable after a rejected name.
	if _, err := wb.AddWorksheet("Costs"); err != nil {
		t.Errorf("AddWorksheet after duplicate failed: %v", err)
	}
}

func TestAddWorksheetInvalidNames(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	tests := []string{
		"   ",
		strings.Repeat("x", 32),
		"a/b",
		"a[b]",
		"what?",
		"'quoted'",
		"history",
		"bad\x01name",
		"bad\xffname",
		"tab\tname",
	}
	for _, name := range tests {
		_, err := wb.AddWorksheet(name)
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("AddWorksheet(%q): expected ErrInvalidName, got %v", name, err)
		}
	}

	if _, err := wb.AddWorksheet(strings.Repeat("x", 31)); err != nil {
		t.Errorf("31 character name rejected: %v", err)
	}
}

func TestWorksheetLookup(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	mustSheet(t, wb, "Summary")

	ws, ok := wb.Worksheet("summary")
	if !ok {
		t.Fatal("Expected to find worksheet ignoring case")
	}
	if ws.Name() != "Summary" {
		t.Errorf("Expected Summary, got %s", ws.Name())
	}
	if _, ok := wb.Worksheet("Missing"); ok {
		t.Error("Expected no worksheet named Missing")
	}
}

func TestAddChartRejectsUnknownKind(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	if _, err := wb.AddChart(ChartKind(0)); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart, got %v", err)
	}
	c := mustChart(t, wb, ChartColumn)
	if c.ID() != 1 || c.Kind() != ChartColumn {
		t.Errorf("Unexpected chart id %d kind %v", c.ID(), c.Kind())
	}
	if len(wb.Charts()) != 1 {
		t.Errorf("Expected 1 chart, got %d", len(wb.Charts()))
	}
}

func TestParseChartKind(t *testing.T) {
	for kind := range chartKinds {
		got, err := ParseChartKind(kind.String())
		if err != nil {
			t.Errorf("ParseChartKind(%q) failed: %v", kind.String(), err)
			continue
		}
		if got != kind {
			t.Errorf("ParseChartKind(%q) = %v, expected %v", kind.String(), got, kind)
		}
	}
	if _, err := ParseChartKind("bubble"); !errors.Is(err, ErrInvalidChart) {
		t.Errorf("Expected ErrInvalidChart for bubble, got %v", err)
	}
}

func TestDefineName(t *testing.T) {
	wb, _ := newTestWorkbook(t)

	if err := wb.DefineName("Sales", "=Sheet1!$A$1:$A$10"); err != nil {
		t.Fatalf("DefineName failed: %v", err)
	}
	if err := wb.DefineName("sales", "=Sheet1!$B$1"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}

	invalid := []string{"", "1abc", "A1", "has space", "_xlnm.Print_Area"}
	for _, name := range invalid {
		if err := wb.DefineName(name, "=Sheet1!$A$1"); !errors.Is(err, ErrInvalidName) {
			t.Errorf("DefineName(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
	if err := wb.DefineName("Empty", "="); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Expected ErrInvalidReference for empty formula, got %v", err)
	}
	if !wb.formulas.Contains("Sheet1!$A$1:$A$10") {
		t.Error("Expected defined name formula to be interned")
	}
}

func TestMutationsAfterClose(t *testing.T) {
	wb, _ := newTestWorkbook(t)
	ws := mustSheet(t, wb, "")
	c := mustChart(t, wb, ChartLine)
	s, err := c.AddSeries("", "=Sheet1!$A$1:$A$3")
	if err != nil {
		t.Fatalf("AddSeries failed: %v", err)
	}
	if err := wb.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	calls := map[string]error{
		"AddWorksheet":  func() error { _, err := wb.AddWorksheet(""); return err }(),
		"AddChart":      func() error { _, err := wb.AddChart(ChartPie); return err }(),
		"WriteNumber":   ws.WriteNumber(0, 0, 1),
		"WriteString":   ws.WriteString(0, 0, "x"),
		"InsertChart":   ws.InsertChart(0, 0, c),
		"AddSeries":     func() error { _, err := c.AddSeries("", ""); return err }(),
		"SetValues":     s.SetValues("Sheet1", 0, 0, 1, 0),
		"SetTitle":      c.SetTitle("late"),
		"DefineName":    wb.DefineName("Late", "=Sheet1!$A$1"),
		"SetProperties": wb.SetProperties(DocProperties{Title: "late"}),
	}
	for name, err := range calls {
		if !errors.Is(err, ErrAlreadyClosed) {
			t.Errorf("%s after Close: expected ErrAlreadyClosed, got %v", name, err)
		}
	}
	if s.Values() != "=Sheet1!$A$1:$A$3" {
		t.Errorf("Series changed after Close: %s", s.Values())
	}
}

func TestZeroHandles(t *testing.T) {
	var ws Worksheet
	if err := ws.WriteNumber(0, 0, 1); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Expected ErrInvalidHandle, got %v", err)
	}
	var c Chart
	if _, err := c.AddSeries("", ""); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Expected ErrInvalidHandle, got %v", err)
	}
	var s ChartSeries
	if err := s.SetValues("Sheet1", 0, 0, 0, 0); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("Expected ErrInvalidHandle, got %v", err)
	}
	if ws.Name() != "" || c.ID() != 0 || s.Values() != "" {
		t.Error("Expected zero values from zero handles")
	}
}
