package packager

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

func TestPackageWritesPartsInOrder(t *testing.T) {
	p := New()
	names := []string{ContentTypesPart, "_rels/.rels", "xl/workbook.xml"}
	for i, name := range names {
		if err := p.Add(name, []byte(strings.Repeat("x", i+1))); err != nil {
			t.Fatalf("Add(%q) failed: %v", name, err)
		}
	}

	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if len(r.File) != len(names) {
		t.Fatalf("Expected %d entries, got %d", len(names), len(r.File))
	}
	for i, f := range r.File {
		if f.Name != names[i] {
			t.Errorf("Entry %d = %q, expected %q", i, f.Name, names[i])
		}
		if f.Method != zip.Deflate {
			t.Errorf("Entry %q is not deflated", f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open(%q) failed: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		if len(data) != i+1 {
			t.Errorf("Entry %q has %d bytes, expected %d", f.Name, len(data), i+1)
		}
	}
}

func TestPackageRejectsDuplicateParts(t *testing.T) {
	p := New()
	if err := p.Add("a.xml", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := p.Add("a.xml", nil); err == nil {
		t.Error("Expected error for duplicate part")
	}
}

func TestPackageDeterministic(t *testing.T) {
	build := func() []byte {
		p := New()
		p.Add("a.xml", []byte("<a/>"))
		p.Add("b.xml", []byte("<b/>"))
		var buf bytes.Buffer
		if err := p.Write(&buf); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		return buf.Bytes()
	}
	if !bytes.Equal(build(), build()) {
		t.Error("Two identical packages produced different bytes")
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	p := New()
	p.Add("a.xml", []byte("<a/>"))

	err := p.WriteFile(filepath.Join(t.TempDir(), "missing", "out.xlsx"))
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("Expected WriteError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestRelationships(t *testing.T) {
	var rels Relationships
	id1 := rels.Add(RelWorksheet, "worksheets/sheet1.xml")
	id2 := rels.Add(RelStyles, "styles.xml")
	if id1 != "rId1" || id2 != "rId2" {
		t.Errorf("Unexpected ids %q, %q", id1, id2)
	}

	got := string(rels.Bytes())
	expected := `<Relationship Id="rId1" Type="` + RelWorksheet + `" Target="worksheets/sheet1.xml"/>`
	if !strings.Contains(got, expected) {
		t.Errorf("Relationships XML missing %s:\n%s", expected, got)
	}
}

func TestRelsPartName(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"xl/workbook.xml", "xl/_rels/workbook.xml.rels"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/_rels/sheet1.xml.rels"},
		{"xl/drawings/drawing2.xml", "xl/drawings/_rels/drawing2.xml.rels"},
		{"", "_rels/.rels"},
	}

	for _, tt := range tests {
		if got := RelsPartName(tt.source); got != tt.expected {
			t.Errorf("RelsPartName(%q) = %q, expected %q", tt.source, got, tt.expected)
		}
	}
}

func TestContentTypes(t *testing.T) {
	ct := NewContentTypes()
	ct.AddDefault("xml", "ignored/duplicate")
	ct.AddOverride("xl/workbook.xml", ContentTypeWorkbook)

	if got, ok := ct.Override("/xl/workbook.xml"); !ok || got != ContentTypeWorkbook {
		t.Errorf("Override lookup = (%q, %v)", got, ok)
	}

	out := string(ct.Bytes())
	if strings.Count(out, `Extension="xml"`) != 1 {
		t.Errorf("Expected a single xml default:\n%s", out)
	}
	if !strings.Contains(out, `<Override PartName="/xl/workbook.xml" ContentType="`+ContentTypeWorkbook+`"/>`) {
		t.Errorf("Missing workbook override:\n%s", out)
	}
}
