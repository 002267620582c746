package xlsxwriter

import (
	"strconv"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/packager"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/xmlwriter"
)

// drawingXML serializes the chart anchors of one worksheet. Anchor i
// refers to its chart through relationship rId(i+1).
func (wb *Workbook) drawingXML(sd *sheetData) []byte {
	w := xmlwriter.New()
	w.Declaration()
	w.Start("xdr:wsDr",
		xmlwriter.A("xmlns:xdr", packager.NSSheetDrawing),
		xmlwriter.A("xmlns:a", packager.NSDrawingML),
	)
	for i, a := range sd.anchors {
		g := sd.position(a, wb.opts)

		w.Start("xdr:twoCellAnchor", xmlwriter.A("editAs", "oneCell"))
		writeMarker(w, "xdr:from", g.fromCol, g.fromColOff, g.fromRow, g.fromRowOff)
		writeMarker(w, "xdr:to", g.toCol, g.toColOff, g.toRow, g.toRowOff)

		w.Start("xdr:graphicFrame", xmlwriter.A("macro", ""))
		w.Start("xdr:nvGraphicFramePr")
		w.Empty("xdr:cNvPr", xmlwriter.AInt("id", i+2), xmlwriter.A("name", "Chart "+strconv.Itoa(i+1)))
		w.Empty("xdr:cNvGraphicFramePr")
		w.End("xdr:nvGraphicFramePr")

		w.Start("xdr:xfrm")
		w.Empty("a:off", xmlwriter.A("x", strconv.FormatInt(g.x, 10)), xmlwriter.A("y", strconv.FormatInt(g.y, 10)))
		w.Empty("a:ext", xmlwriter.A("cx", strconv.FormatInt(g.cx, 10)), xmlwriter.A("cy", strconv.FormatInt(g.cy, 10)))
		w.End("xdr:xfrm")

		w.Start("a:graphic")
		w.Start("a:graphicData", xmlwriter.A("uri", packager.NSChart))
		w.Empty("c:chart",
			xmlwriter.A("xmlns:c", packager.NSChart),
			xmlwriter.A("xmlns:r", packager.NSRelationship),
			xmlwriter.A("r:id", "rId"+strconv.Itoa(i+1)),
		)
		w.End("a:graphicData")
		w.End("a:graphic")
		w.End("xdr:graphicFrame")

		w.Empty("xdr:clientData")
		w.End("xdr:twoCellAnchor")
	}
	w.End("xdr:wsDr")
	return w.Bytes()
}

func writeMarker(w *xmlwriter.Writer, tag string, col int, colOff int64, row int, rowOff int64) {
	w.Start(tag)
	w.Element("xdr:col", strconv.Itoa(col))
	w.Element("xdr:colOff", strconv.FormatInt(colOff, 10))
	w.Element("xdr:row", strconv.Itoa(row))
	w.Element("xdr:rowOff", strconv.FormatInt(rowOff, 10))
	w.End(tag)
}
