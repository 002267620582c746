package xlsxwriter

import (
	"archive/zip"
	"io"
	"path/filepath"
	"testing"
	"time"
)

// newTestWorkbook returns a workbook writing into a temporary directory
// with a fixed creation time.
func newTestWorkbook(t *testing.T) (*Workbook, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")
	opts := DefaultOptions()
	opts.Created = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	return NewWithOptions(path, opts), path
}

// readPart returns the contents of one part of a written package.
func readPart(t *testing.T, path, name string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open package: %v", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open part %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("Failed to read part %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("Part %s not found in package", name)
	return ""
}

// partNames lists the parts of a written package in archive order.
func partNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open package: %v", err)
	}
	defer r.Close()

	names := make([]string, len(r.File))
	for i, f := range r.File {
		names[i] = f.Name
	}
	return names
}

func mustSheet(t *testing.T, wb *Workbook, name string) Worksheet {
	t.Helper()
	ws, err := wb.AddWorksheet(name)
	if err != nil {
		t.Fatalf("AddWorksheet(%q) failed: %v", name, err)
	}
	return ws
}

func mustChart(t *testing.T, wb *Workbook, kind ChartKind) Chart {
	t.Helper()
	c, err := wb.AddChart(kind)
	if err != nil {
		t.Fatalf("AddChart(%v) failed: %v", kind, err)
	}
	return c
}
