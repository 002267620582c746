package parser

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/models"
	"github.com/xuri/excelize/v2"
)

// drawingObject is one graphic frame of a drawing part.
type drawingObject struct {
	name   string
	rID    string
	anchor *models.Anchor
	left   int
	top    int
	width  int
	height int
}

// marker is an xdr:from or xdr:to position.
type marker struct {
	col, row       int
	colOff, rowOff int64
}

// parseDrawingObjects returns the graphic frames of a drawing in document
// order, which is the order their anchors were written.
func parseDrawingObjects(data []byte) []drawingObject {
	var objects []drawingObject
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
				if obj, ok := parseAnchor(decoder); ok {
					objects = append(objects, obj)
				}
			}
		}
	}
	return objects
}

// parseAnchor parses an anchor element and its graphic frame.
func parseAnchor(decoder *xml.Decoder) (drawingObject, bool) {
	var obj drawingObject
	var from, to *marker
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				m := parseMarker(decoder)
				from = &m
				depth--
			case "to":
				m := parseMarker(decoder)
				to = &m
				depth--
			case "graphicFrame":
				parseGraphicFrame(decoder, &obj)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if obj.rID == "" {
		return obj, false
	}
	if from != nil {
		cell, _ := excelize.CoordinatesToCellName(from.col+1, from.row+1)
		obj.anchor = &models.Anchor{
			Cell:   cell,
			Row:    from.row,
			Col:    from.col,
			RowOff: from.rowOff,
			ColOff: from.colOff,
		}
		if to != nil {
			obj.anchor.To, _ = excelize.CoordinatesToCellName(to.col+1, to.row+1)
		}
	}
	return obj, true
}

func parseMarker(decoder *xml.Decoder) marker {
	var m marker
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			name := t.Name.Local
			txt, err := readElementText(decoder)
			depth--
			if err != nil {
				continue
			}
			txt = strings.TrimSpace(txt)
			switch name {
			case "col":
				m.col, _ = strconv.Atoi(txt)
			case "row":
				m.row, _ = strconv.Atoi(txt)
			case "colOff":
				m.colOff, _ = strconv.ParseInt(txt, 10, 64)
			case "rowOff":
				m.rowOff, _ = strconv.ParseInt(txt, 10, 64)
			}
		case xml.EndElement:
			depth--
		}
	}
	return m
}

// parseGraphicFrame reads the name, position and chart relationship of a
// graphic frame.
func parseGraphicFrame(decoder *xml.Decoder, obj *drawingObject) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				obj.name = attrValue(t, "name")
			case "xfrm":
				obj.left, obj.top, obj.width, obj.height = parseXfrm(decoder)
				depth--
			case "chart":
				obj.rID = attrValue(t, "id")
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseXfrm parses an xfrm element for position and size in pixels.
func parseXfrm(decoder *xml.Decoder) (left, top, width, height int) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "off":
				left = emuAttr(t, "x")
				top = emuAttr(t, "y")
			case "ext":
				width = emuAttr(t, "cx")
				height = emuAttr(t, "cy")
			}
		case xml.EndElement:
			depth--
		}
	}
	return
}

func emuAttr(se xml.StartElement, local string) int {
	v, err := strconv.ParseInt(attrValue(se, local), 10, 64)
	if err != nil {
		return 0
	}
	return EMUToPixels(v)
}
