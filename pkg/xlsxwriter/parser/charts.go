package parser

import (
	"archive/zip"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/models"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// chartRef is a chart frame of a drawing with its chart part resolved.
type chartRef struct {
	part string
	obj  drawingObject
}

// ExtractCharts extracts the charts of every worksheet. Charts are listed in
// the order their anchors appear in the sheet's drawing.
func ExtractCharts(xlsxPath string, mode string) (map[string][]models.Chart, error) {
	if mode == "light" {
		return make(map[string][]models.Chart), nil
	}

	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheets, err := workbookSheets(&r.Reader)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.Chart)
	for _, sheet := range sheets {
		refs, err := sheetCharts(&r.Reader, sheet.part)
		if err != nil {
			return nil, err
		}
		var charts []models.Chart
		for _, cr := range refs {
			chart, err := parseChartFile(&r.Reader, cr, mode)
			if err != nil {
				return nil, err
			}
			if chart != nil {
				charts = append(charts, *chart)
			}
		}
		if len(charts) > 0 {
			result[sheet.name] = charts
		}
	}
	return result, nil
}

// sheetCharts follows worksheet -> drawing -> chart relationships.
func sheetCharts(r *zip.Reader, sheetPart string) ([]chartRef, error) {
	rels, err := readRelationships(r, sheetPart)
	if err != nil {
		return nil, err
	}
	drawing, ok := findRelationship(rels, relDrawing)
	if !ok {
		return nil, nil
	}

	data, err := readZipFile(r, drawing.target)
	if err != nil || data == nil {
		return nil, err
	}
	drawingRels, err := readRelationships(r, drawing.target)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(drawingRels))
	for _, rel := range drawingRels {
		if strings.HasSuffix(rel.typ, relChart) {
			targets[rel.id] = rel.target
		}
	}

	var refs []chartRef
	for _, obj := range parseDrawingObjects(data) {
		if part, ok := targets[obj.rID]; ok {
			refs = append(refs, chartRef{part: part, obj: obj})
		}
	}
	return refs, nil
}

// parseChartFile parses a chart part.
func parseChartFile(r *zip.Reader, cr chartRef, mode string) (*models.Chart, error) {
	chartXML, err := readZipFile(r, cr.part)
	if err != nil || chartXML == nil {
		return nil, err
	}

	chart := parseChartXML(chartXML)
	chart.Name = cr.obj.name
	chart.Part = cr.part
	chart.Anchor = cr.obj.anchor
	chart.L, chart.T = cr.obj.left, cr.obj.top

	if mode == "verbose" {
		w, h := cr.obj.width, cr.obj.height
		chart.W = &w
		chart.H = &h
	}
	return chart, nil
}

// parseChartXML parses chart XML content.
func parseChartXML(data []byte) *models.Chart {
	chart := &models.Chart{}
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			parseChartElement(decoder, chart)
		}
	}

	if len(chart.Plots) > 0 {
		chart.ChartType = chart.Plots[0]
	} else {
		chart.ChartType = "unknown"
	}
	return chart
}

// parseChartElement parses the c:chart element.
func parseChartElement(decoder *xml.Decoder, chart *models.Chart) {
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
			case "title":
				chart.Title = parseChartTitle(decoder)
				depth--
			case "plotArea":
				parsePlotArea(decoder, chart)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartTitle returns the rich text of a title, or its reference.
func parseChartTitle(decoder *xml.Decoder) string {
	var title, formula string
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
			case "t":
				if txt, err := readElementText(decoder); err == nil {
					title += txt
				}
				depth--
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					formula = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if title == "" && formula != "" {
		return "=" + formula
	}
	return strings.TrimSpace(title)
}

// parsePlotArea collects every plot of the plot area and the axis titles.
func parsePlotArea(decoder *xml.Decoder, chart *models.Chart) {
	hasCategoryAxis := false
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if ct, ok := ChartTypeMap[t.Name.Local]; ok {
				chart.Plots = append(chart.Plots, ct)
				chart.Series = append(chart.Series, parseChartSeries(decoder)...)
				depth--
				continue
			}
			switch t.Name.Local {
			case "catAx", "dateAx":
				hasCategoryAxis = true
				if title, _, _ := parseAxis(decoder); title != "" {
					chart.XAxisTitle = title
				}
				depth--
			case "valAx":
				title, pos, axisRange := parseAxis(decoder)
				// Without a category axis, as in scatter charts, the
				// horizontal value axis is the X axis.
				if !hasCategoryAxis && (pos == "b" || pos == "t") {
					if title != "" {
						chart.XAxisTitle = title
					}
				} else {
					if title != "" {
						chart.YAxisTitle = title
					}
					chart.YAxisRange = axisRange
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartSeries parses series elements within a chart type.
func parseChartSeries(decoder *xml.Decoder) []models.ChartSeries {
	var series []models.ChartSeries
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "ser" {
				series = append(series, parseSingleSeries(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return series
}

// parseSingleSeries parses a single series element.
func parseSingleSeries(decoder *xml.Decoder) models.ChartSeries {
	var s models.ChartSeries
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
			case "tx":
				s.Name, s.NameRange = parseSeriesName(decoder)
				depth--
			case "cat", "xVal":
				s.XRange, _ = parseSeriesRange(decoder)
				depth--
			case "val", "yVal":
				s.YRange, s.Points = parseSeriesRange(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return s
}

// parseSeriesName parses series name from tx element.
func parseSeriesName(decoder *xml.Decoder) (name, nameRange string) {
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
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					nameRange = strings.TrimSpace(txt)
				}
				depth--
			case "v":
				if txt, err := readElementText(decoder); err == nil && nameRange == "" {
					name = strings.TrimSpace(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseSeriesRange returns the reference of a cat or val element and the
// point count of its cache.
func parseSeriesRange(decoder *xml.Decoder) (formula string, points int) {
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
			case "f":
				if txt, err := readElementText(decoder); err == nil {
					formula = strings.TrimSpace(txt)
				}
				depth--
			case "ptCount":
				points, _ = strconv.Atoi(attrValue(t, "val"))
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseAxis parses an axis element.
func parseAxis(decoder *xml.Decoder) (title, pos string, axisRange []float64) {
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
			case "title":
				title = parseChartTitle(decoder)
				depth--
			case "axPos":
				pos = attrValue(t, "val")
			case "scaling":
				axisRange = parseAxisScaling(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseAxisScaling parses axis scaling element.
func parseAxisScaling(decoder *xml.Decoder) []float64 {
	var min, max *float64
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
			case "min", "max":
				v, err := strconv.ParseFloat(attrValue(t, "val"), 64)
				if err != nil {
					continue
				}
				if t.Name.Local == "min" {
					min = &v
				} else {
					max = &v
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	if min != nil && max != nil {
		return []float64{*min, *max}
	}
	return nil
}
