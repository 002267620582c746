package xlsxwriter

import (
	"context"
	"errors"
	"fmt"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/packager"
	"go.alis.build/alog"
)

// Close serializes the workbook and writes the package to its path. It runs
// once: later calls, and any mutation after it, return ErrAlreadyClosed.
// A workbook without worksheets gets an empty Sheet1.
// Errors are *PartError values matching ErrIO or ErrSchemaViolation; on a
// schema violation no file is created.
func (wb *Workbook) Close() error {
	if err := wb.checkOpen(); err != nil {
		return err
	}
	ctx := context.Background()
	if len(wb.sheets) == 0 {
		wb.appendSheet(wb.nextSheetName())
		alog.Debugf(ctx, "workbook %s has no worksheets, added %s", wb.path, wb.sheets[0].name)
	}
	wb.closed = true

	pkg, err := wb.assemble()
	if err != nil {
		alog.Debugf(ctx, "serialize workbook %s: %v", wb.path, err)
		return err
	}
	if err := pkg.WriteFile(wb.path); err != nil {
		part := ""
		var we *packager.WriteError
		if errors.As(err, &we) {
			part = we.Part
		}
		return &PartError{Part: part, Kind: ErrIO, Err: err}
	}

	alog.Debugf(ctx, "closed workbook %s: %d sheets, %d charts, %d shared strings",
		wb.path, len(wb.sheets), len(wb.charts), wb.strings.Len())
	return nil
}

// assemble builds every part in memory, in package order.
func (wb *Workbook) assemble() (*packager.Package, error) {
	ct := packager.NewContentTypes()
	var parts []packager.Part
	add := func(name, ctype string, data []byte) {
		if ctype != "" {
			ct.AddOverride(name, ctype)
		}
		parts = append(parts, packager.Part{Name: name, Data: data})
	}

	root := &packager.Relationships{}
	root.Add(packager.RelOfficeDocument, "xl/workbook.xml")
	root.Add(packager.RelCore, "docProps/core.xml")
	root.Add(packager.RelExtended, "docProps/app.xml")
	add(packager.RelsPartName(""), "", root.Bytes())
	add("docProps/app.xml", packager.ContentTypeExtended, wb.appXML())
	add("docProps/core.xml", packager.ContentTypeCore, wb.coreXML())

	wbRels := &packager.Relationships{}
	for _, sd := range wb.sheets {
		wbRels.Add(packager.RelWorksheet, fmt.Sprintf("worksheets/sheet%d.xml", sd.id))
	}
	wbRels.Add(packager.RelStyles, "styles.xml")
	if wb.strings.Len() > 0 {
		wbRels.Add(packager.RelSharedStrings, "sharedStrings.xml")
	}
	add(packager.RelsPartName("xl/workbook.xml"), "", wbRels.Bytes())
	add("xl/workbook.xml", packager.ContentTypeWorkbook, wb.workbookXML())

	// Every primary chart owns a part numbered in creation order, inserted or
	// not. Repeated insertions of a chart get extra parts numbered after those.
	chartParts := make(map[int]int)
	var chartOrder []int
	for i, cd := range wb.charts {
		if cd.parent < 0 {
			chartOrder = append(chartOrder, i)
			chartParts[i] = len(chartOrder)
		}
	}
	firstUse := make(map[int]bool)

	var drawings []packager.Part
	drawingID := 0
	for i, sd := range wb.sheets {
		sheetPart := fmt.Sprintf("xl/worksheets/sheet%d.xml", sd.id)

		drawingRel := ""
		if len(sd.anchors) > 0 {
			drawingID++
			drawingPart := fmt.Sprintf("xl/drawings/drawing%d.xml", drawingID)

			sheetRels := &packager.Relationships{}
			drawingRel = sheetRels.Add(packager.RelDrawing, fmt.Sprintf("../drawings/drawing%d.xml", drawingID))
			add(packager.RelsPartName(sheetPart), "", sheetRels.Bytes())

			drawingRels := &packager.Relationships{}
			for _, a := range sd.anchors {
				n := chartParts[a.chart]
				if firstUse[a.chart] {
					chartOrder = append(chartOrder, a.chart)
					n = len(chartOrder)
				}
				firstUse[a.chart] = true
				drawingRels.Add(packager.RelChart, fmt.Sprintf("../charts/chart%d.xml", n))
			}
			ct.AddOverride(drawingPart, packager.ContentTypeDrawing)
			drawings = append(drawings,
				packager.Part{Name: drawingPart, Data: wb.drawingXML(sd)},
				packager.Part{Name: packager.RelsPartName(drawingPart), Data: drawingRels.Bytes()},
			)
		}

		data, err := wb.worksheetXML(i, drawingRel)
		if err != nil {
			return nil, err
		}
		add(sheetPart, packager.ContentTypeWorksheet, data)
	}

	charts := make([]packager.Part, 0, len(chartOrder))
	for n, index := range chartOrder {
		chartPart := fmt.Sprintf("xl/charts/chart%d.xml", n+1)
		data, err := wb.chartXML(index)
		if err != nil {
			return nil, &PartError{Part: chartPart, Kind: ErrSchemaViolation, Err: err}
		}
		ct.AddOverride(chartPart, packager.ContentTypeChart)
		charts = append(charts, packager.Part{Name: chartPart, Data: data})
	}
	parts = append(parts, drawings...)
	parts = append(parts, charts...)

	add("xl/styles.xml", packager.ContentTypeStyles, stylesXML())
	if wb.strings.Len() > 0 {
		add("xl/sharedStrings.xml", packager.ContentTypeSharedStrings, sharedStringsXML(wb.strings.Strings(), wb.stringCellCount()))
	}

	pkg := packager.New()
	pkg.Level = wb.opts.Compression()
	if !wb.opts.Created.IsZero() {
		pkg.Modified = wb.opts.Created
	}
	if err := pkg.Add(packager.ContentTypesPart, ct.Bytes()); err != nil {
		return nil, &PartError{Part: packager.ContentTypesPart, Kind: ErrSchemaViolation, Err: err}
	}
	for _, p := range parts {
		if err := pkg.Add(p.Name, p.Data); err != nil {
			return nil, &PartError{Part: p.Name, Kind: ErrSchemaViolation, Err: err}
		}
	}
	return pkg, nil
}

// stringCellCount returns the number of cells currently holding a shared
// string. Overwritten cells are not counted.
func (wb *Workbook) stringCellCount() int {
	n := 0
	for _, sd := range wb.sheets {
		for _, row := range sd.rows {
			for _, c := range row {
				if c.kind == CellString {
					n++
				}
			}
		}
	}
	return n
}
