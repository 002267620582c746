package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strings"
)

// Relationship types this package follows.
const (
	relWorksheet = "/worksheet"
	relDrawing   = "/drawing"
	relChart     = "/chart"
)

// sheetPart is a worksheet name and its part name, in workbook order.
type sheetPart struct {
	name string
	part string
}

// relationship is one entry of a relationship part with its target resolved
// to a part name.
type relationship struct {
	id     string
	typ    string
	target string
}

// PartNames lists the parts of a package in archive order.
func PartNames(xlsxPath string) ([]string, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	names := make([]string, len(r.File))
	for i, f := range r.File {
		names[i] = f.Name
	}
	return names, nil
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

// relsPartName returns "xl/worksheets/_rels/sheet1.xml.rels" for
// "xl/worksheets/sheet1.xml".
func relsPartName(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget resolves a relationship target against the directory of
// its source part.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

// readRelationships returns the relationships of a part in document order.
// A part without a relationship part has none.
func readRelationships(r *zip.Reader, source string) ([]relationship, error) {
	data, err := readZipFile(r, relsPartName(source))
	if err != nil || data == nil {
		return nil, err
	}

	var rels []relationship
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			if attrValue(se, "TargetMode") == "External" {
				continue
			}
			rels = append(rels, relationship{
				id:     attrValue(se, "Id"),
				typ:    attrValue(se, "Type"),
				target: resolveTarget(source, attrValue(se, "Target")),
			})
		}
	}
	return rels, nil
}

func findRelationship(rels []relationship, typeSuffix string) (relationship, bool) {
	for _, rel := range rels {
		if strings.HasSuffix(rel.typ, typeSuffix) {
			return rel, true
		}
	}
	return relationship{}, false
}

// workbookSheets returns the worksheets in workbook order with their part
// names.
func workbookSheets(r *zip.Reader) ([]sheetPart, error) {
	data, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || data == nil {
		return nil, err
	}
	rels, err := readRelationships(r, "xl/workbook.xml")
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		if strings.HasSuffix(rel.typ, relWorksheet) {
			targets[rel.id] = rel.target
		}
	}

	var sheets []sheetPart
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attrValue(se, "name"), attrValue(se, "id")
			if part, ok := targets[rID]; ok && name != "" {
				sheets = append(sheets, sheetPart{name: name, part: part})
			}
		}
	}
	return sheets, nil
}
