package inspect

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/models"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/parser"
	"github.com/xuri/excelize/v2"
	"go.alis.build/alog"
)

// Extract reads the package at path. Failures of optional sections are
// logged and leave the section empty; failing to open the file is an error.
func Extract(ctx context.Context, path string, opts Options) (*models.WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	sheets := make(map[string]models.SheetData, len(sheetList))

	for _, sheetName := range sheetList {
		rows, err := parser.ExtractCells(f, sheetName, opts.ShouldIncludeFormulas())
		if err != nil {
			alog.Warnf(ctx, "extract cells of %s: %v", sheetName, err)
			rows = nil
		}

		sheet := models.SheetData{Rows: rows}
		if dim, err := f.GetSheetDimension(sheetName); err == nil {
			sheet.Dimension = dim
		}
		used, err := parser.DetectUsedRange(f, sheetName)
		if err != nil {
			alog.Warnf(ctx, "detect used range of %s: %v", sheetName, err)
		}
		sheet.UsedRange = used.Ref
		sheet.Density = used.Density

		sheets[sheetName] = sheet
	}

	if opts.Mode != ModeLight {
		chartData, err := parser.ExtractCharts(path, string(opts.Mode))
		if err != nil {
			alog.Warnf(ctx, "extract charts of %s: %v", path, err)
		}
		for sheetName, charts := range chartData {
			if sheet, ok := sheets[sheetName]; ok {
				sheet.Charts = charts
				sheets[sheetName] = sheet
			}
		}
	}

	if opts.ShouldIncludePrintAreas() {
		printAreas, err := parser.ExtractPrintAreas(f)
		if err != nil {
			alog.Warnf(ctx, "extract print areas of %s: %v", path, err)
		}
		for sheetName, areas := range printAreas {
			if sheet, ok := sheets[sheetName]; ok {
				sheet.PrintAreas = areas
				sheets[sheetName] = sheet
			}
		}
	}

	wb := &models.WorkbookData{
		BookName:     filepath.Base(path),
		SheetNames:   sheetList,
		Sheets:       sheets,
		DefinedNames: parser.ExtractDefinedNames(f),
	}

	if opts.Mode != ModeLight {
		props, err := f.GetDocProps()
		if err != nil {
			alog.Warnf(ctx, "read document properties of %s: %v", path, err)
		} else {
			wb.Properties = &models.Properties{
				Title:    props.Title,
				Subject:  props.Subject,
				Creator:  props.Creator,
				Keywords: props.Keywords,
				Category: props.Category,
				Created:  props.Created,
			}
		}
	}

	if opts.Mode == ModeVerbose {
		parts, err := parser.PartNames(path)
		if err != nil {
			alog.Warnf(ctx, "list parts of %s: %v", path, err)
		}
		wb.Parts = parts
	}

	alog.Debugf(ctx, "inspected %s: %d sheets", wb.BookName, len(sheetList))
	return wb, nil
}

// PrintAreaViews cuts every print area of every sheet into its own view, in
// workbook sheet order.
func PrintAreaViews(wb *models.WorkbookData) []models.PrintAreaView {
	var views []models.PrintAreaView
	for _, sheetName := range wb.SheetNames {
		sheet := wb.Sheets[sheetName]
		for _, area := range sheet.PrintAreas {
			views = append(views, NewPrintAreaView(wb.BookName, sheetName, sheet, area))
		}
	}
	return views
}

// NewPrintAreaView restricts a sheet to the rows and columns of area. Charts
// are kept when their top-left anchor falls inside the area.
func NewPrintAreaView(bookName, sheetName string, sheet models.SheetData, area models.PrintArea) models.PrintAreaView {
	view := models.PrintAreaView{
		BookName:  bookName,
		SheetName: sheetName,
		Area:      area,
	}

	for _, row := range sheet.Rows {
		if row.R < area.R1 || row.R > area.R2 {
			continue
		}
		if clipped, ok := clipRow(row, area); ok {
			view.Rows = append(view.Rows, clipped)
		}
	}

	for _, chart := range sheet.Charts {
		if chart.Anchor != nil && area.Contains(chart.Anchor.Row+1, chart.Anchor.Col+1) {
			view.Charts = append(view.Charts, chart)
		}
	}

	return view
}

func clipRow(row models.CellRow, area models.PrintArea) (models.CellRow, bool) {
	out := models.CellRow{R: row.R, C: make(map[string]any)}
	for key, v := range row.C {
		if inColumns(key, area) {
			out.C[key] = v
		}
	}
	for key, formula := range row.F {
		if !inColumns(key, area) {
			continue
		}
		if out.F == nil {
			out.F = make(map[string]string)
		}
		out.F[key] = formula
	}
	return out, len(out.C) > 0
}

func inColumns(key string, area models.PrintArea) bool {
	col, err := strconv.Atoi(key)
	if err != nil {
		return false
	}
	return col >= area.C1 && col <= area.C2
}
