package xlsxwriter

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/packager"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/xmlwriter"
)

// axisBase keeps generated axis ids clear of the ones Excel assigns.
const axisBase = 50010000

type chartWriter struct {
	wb *Workbook
	w  *xmlwriter.Writer
}

// chartXML serializes a chart, together with any chart combined into it.
func (wb *Workbook) chartXML(index int) ([]byte, error) {
	cd := wb.charts[index]
	if cd.kind == ChartStock && len(cd.series) < minStockSeries {
		return nil, fmt.Errorf("stock chart %d has %d series, needs at least %d", cd.id, len(cd.series), minStockSeries)
	}
	cw := chartWriter{wb: wb, w: xmlwriter.New()}
	w := cw.w

	w.Declaration()
	w.Start("c:chartSpace",
		xmlwriter.A("xmlns:c", packager.NSChart),
		xmlwriter.A("xmlns:a", packager.NSDrawingML),
		xmlwriter.A("xmlns:r", packager.NSRelationship),
	)
	w.Empty("c:lang", xmlwriter.A("val", "en-US"))
	if cd.style != 0 && cd.style != 2 {
		w.Empty("c:style", xmlwriter.AInt("val", cd.style))
	}

	w.Start("c:chart")
	if cd.title != "" {
		cw.title(cd.title, false)
	}

	axes := [2]int{axisBase + cd.id*10 + 1, axisBase + cd.id*10 + 2}
	w.Start("c:plotArea")
	w.Empty("c:layout")
	cw.plot(cd, axes, 0)
	if cd.combined >= 0 {
		cw.plot(wb.charts[cd.combined], axes, len(cd.series))
	}
	cw.axes(cd, axes)
	w.End("c:plotArea")

	if cd.legend != LegendNone {
		w.Start("c:legend")
		w.Empty("c:legendPos", xmlwriter.A("val", legendValues[cd.legend]))
		w.Empty("c:layout")
		w.End("c:legend")
	}
	w.Empty("c:plotVisOnly", xmlwriter.A("val", "1"))
	w.Empty("c:dispBlanksAs", xmlwriter.A("val", "gap"))
	w.End("c:chart")

	w.Start("c:printSettings")
	w.Empty("c:headerFooter")
	w.Empty("c:pageMargins",
		xmlwriter.A("b", "0.75"),
		xmlwriter.A("l", "0.7"),
		xmlwriter.A("r", "0.7"),
		xmlwriter.A("t", "0.75"),
		xmlwriter.A("header", "0.3"),
		xmlwriter.A("footer", "0.3"),
	)
	w.Empty("c:pageSetup")
	w.End("c:printSettings")
	w.End("c:chartSpace")
	return w.Bytes(), nil
}

// plot writes the chart type element. offset shifts series idx and order so
// that combined charts never reuse a series index.
func (cw chartWriter) plot(cd *chartData, axes [2]int, offset int) {
	info := chartKinds[cd.kind]
	w := cw.w

	w.Start(info.element)
	switch info.layout {
	case layoutBar:
		w.Empty("c:barDir", xmlwriter.A("val", info.barDir))
		w.Empty("c:grouping", xmlwriter.A("val", info.grouping))
	case layoutLine, layoutArea:
		w.Empty("c:grouping", xmlwriter.A("val", info.grouping))
	case layoutPie:
		w.Empty("c:varyColors", xmlwriter.A("val", "1"))
	case layoutScatter:
		w.Empty("c:scatterStyle", xmlwriter.A("val", info.style))
	case layoutRadar:
		w.Empty("c:radarStyle", xmlwriter.A("val", info.style))
	}

	for i, s := range cd.series {
		cw.series(info, cw.wb.series[s], offset+i)
	}

	switch info.layout {
	case layoutBar:
		if info.grouping != "clustered" {
			w.Empty("c:overlap", xmlwriter.A("val", "100"))
		}
	case layoutLine:
		w.Empty("c:marker", xmlwriter.A("val", "1"))
	case layoutStock:
		w.Empty("c:hiLowLines")
	case layoutPie:
		w.Empty("c:firstSliceAng", xmlwriter.A("val", "0"))
		if cd.kind == ChartDoughnut {
			w.Empty("c:holeSize", xmlwriter.A("val", "50"))
		}
	}
	if info.family != axesNone {
		w.Empty("c:axId", xmlwriter.AInt("val", axes[0]))
		w.Empty("c:axId", xmlwriter.AInt("val", axes[1]))
	}
	w.End(info.element)
}

func (cw chartWriter) series(info kindInfo, sd *seriesData, idx int) {
	w := cw.w
	w.Start("c:ser")
	w.Empty("c:idx", xmlwriter.AInt("val", idx))
	w.Empty("c:order", xmlwriter.AInt("val", idx))
	if sd.name != "" {
		cw.seriesName(sd.name)
	}

	switch info.layout {
	case layoutBar:
		w.Empty("c:invertIfNegative", xmlwriter.A("val", "0"))
	case layoutLine, layoutScatter, layoutRadar, layoutStock:
		if info.noLine {
			w.Start("c:spPr")
			w.Start("a:ln", xmlwriter.A("w", "28575"))
			w.Empty("a:noFill")
			w.End("a:ln")
			w.End("c:spPr")
		}
		if info.noMarker {
			w.Start("c:marker")
			w.Empty("c:symbol", xmlwriter.A("val", "none"))
			w.End("c:marker")
		}
	}

	catTag, valTag := "c:cat", "c:val"
	if info.layout == layoutScatter {
		catTag, valTag = "c:xVal", "c:yVal"
	}
	if sd.categories != "" {
		cw.reference(catTag, sd.categories, true)
	}
	if sd.values != "" {
		cw.reference(valTag, sd.values, false)
	}

	if info.layout == layoutScatter || info.layout == layoutLine {
		if info.smooth {
			w.Empty("c:smooth", xmlwriter.A("val", "1"))
		}
	}
	w.End("c:ser")
}

func (cw chartWriter) seriesName(name string) {
	w := cw.w
	w.Start("c:tx")
	if strings.HasPrefix(name, "=") {
		cw.strRef(name)
	} else {
		w.Element("c:v", name)
	}
	w.End("c:tx")
}

// reference writes a cat/val style element holding a numRef or, for
// categories that contain text, a strRef.
func (cw chartWriter) reference(tag, formula string, categories bool) {
	w := cw.w
	cache, ok := cw.wb.cache(formula, categories)

	w.Start(tag)
	if ok && cache.strings {
		w.Start("c:strRef")
		w.Element("c:f", ref.StripEquals(formula))
		cw.strCache(cache)
		w.End("c:strRef")
	} else {
		w.Start("c:numRef")
		w.Element("c:f", ref.StripEquals(formula))
		if ok {
			w.Start("c:numCache")
			w.Element("c:formatCode", "General")
			w.Empty("c:ptCount", xmlwriter.AInt("val", cache.count))
			for _, p := range cache.points {
				w.Start("c:pt", xmlwriter.AInt("idx", p.idx))
				w.Element("c:v", xmlwriter.FormatFloat(p.num))
				w.End("c:pt")
			}
			w.End("c:numCache")
		}
		w.End("c:numRef")
	}
	w.End(tag)
}

func (cw chartWriter) strRef(formula string) {
	w := cw.w
	w.Start("c:strRef")
	w.Element("c:f", ref.StripEquals(formula))
	if cache, ok := cw.wb.cache(formula, true); ok {
		cw.strCache(cache)
	}
	w.End("c:strRef")
}

func (cw chartWriter) strCache(cache seriesCache) {
	w := cw.w
	w.Start("c:strCache")
	w.Empty("c:ptCount", xmlwriter.AInt("val", cache.count))
	for _, p := range cache.points {
		text := p.text
		if text == "" {
			text = xmlwriter.FormatFloat(p.num)
		}
		w.Start("c:pt", xmlwriter.AInt("idx", p.idx))
		w.Element("c:v", text)
		w.End("c:pt")
	}
	w.End("c:strCache")
}

// title writes a chart or axis title. Titles starting with '=' reference a
// cell; others are rich text.
func (cw chartWriter) title(text string, rotated bool) {
	w := cw.w
	w.Start("c:title")
	w.Start("c:tx")
	if strings.HasPrefix(text, "=") {
		cw.strRef(text)
	} else {
		w.Start("c:rich")
		if rotated {
			w.Empty("a:bodyPr", xmlwriter.A("rot", "-5400000"), xmlwriter.A("vert", "horz"))
		} else {
			w.Empty("a:bodyPr")
		}
		w.Empty("a:lstStyle")
		w.Start("a:p")
		w.Start("a:pPr")
		w.Empty("a:defRPr")
		w.End("a:pPr")
		w.Start("a:r")
		w.Empty("a:rPr", xmlwriter.A("lang", "en-US"))
		w.Element("a:t", text)
		w.End("a:r")
		w.End("a:p")
		w.End("c:rich")
	}
	w.End("c:tx")
	w.Empty("c:layout")
	w.Empty("c:overlay", xmlwriter.A("val", "0"))
	w.End("c:title")
}

func (cw chartWriter) axes(cd *chartData, axes [2]int) {
	switch chartKinds[cd.kind].family {
	case axesCategory:
		cw.catAx(axes[0], axes[1], "b", cd.xAxisName, false)
		cw.valAx(axes[1], axes[0], "l", cd.yAxisName, true, "between")
	case axesHorizontal:
		cw.catAx(axes[0], axes[1], "l", cd.xAxisName, false)
		cw.valAx(axes[1], axes[0], "b", cd.yAxisName, true, "between")
	case axesScatter:
		cw.valAx(axes[0], axes[1], "b", cd.xAxisName, false, "midCat")
		cw.valAx(axes[1], axes[0], "l", cd.yAxisName, true, "midCat")
	case axesRadar:
		cw.catAx(axes[0], axes[1], "b", cd.xAxisName, true)
		cw.valAx(axes[1], axes[0], "l", cd.yAxisName, true, "between")
	case axesDate:
		cw.dateAx(axes[0], axes[1], cd.xAxisName)
		cw.valAx(axes[1], axes[0], "l", cd.yAxisName, true, "between")
	}
}

func (cw chartWriter) dateAx(id, cross int, title string) {
	w := cw.w
	w.Start("c:dateAx")
	w.Empty("c:axId", xmlwriter.AInt("val", id))
	w.Start("c:scaling")
	w.Empty("c:orientation", xmlwriter.A("val", "minMax"))
	w.End("c:scaling")
	w.Empty("c:axPos", xmlwriter.A("val", "b"))
	if title != "" {
		cw.title(title, false)
	}
	w.Empty("c:numFmt", xmlwriter.A("formatCode", "dd/mm/yyyy"), xmlwriter.A("sourceLinked", "1"))
	w.Empty("c:tickLblPos", xmlwriter.A("val", "nextTo"))
	w.Empty("c:crossAx", xmlwriter.AInt("val", cross))
	w.Empty("c:crosses", xmlwriter.A("val", "autoZero"))
	w.Empty("c:auto", xmlwriter.A("val", "1"))
	w.Empty("c:lblOffset", xmlwriter.A("val", "100"))
	w.End("c:dateAx")
}

func (cw chartWriter) catAx(id, cross int, pos, title string, gridlines bool) {
	w := cw.w
	w.Start("c:catAx")
	w.Empty("c:axId", xmlwriter.AInt("val", id))
	w.Start("c:scaling")
	w.Empty("c:orientation", xmlwriter.A("val", "minMax"))
	w.End("c:scaling")
	w.Empty("c:axPos", xmlwriter.A("val", pos))
	if gridlines {
		w.Empty("c:majorGridlines")
	}
	if title != "" {
		cw.title(title, pos == "l")
	}
	w.Empty("c:numFmt", xmlwriter.A("formatCode", "General"), xmlwriter.A("sourceLinked", "1"))
	w.Empty("c:tickLblPos", xmlwriter.A("val", "nextTo"))
	w.Empty("c:crossAx", xmlwriter.AInt("val", cross))
	w.Empty("c:crosses", xmlwriter.A("val", "autoZero"))
	w.Empty("c:auto", xmlwriter.A("val", "1"))
	w.Empty("c:lblAlgn", xmlwriter.A("val", "ctr"))
	w.Empty("c:lblOffset", xmlwriter.A("val", "100"))
	w.End("c:catAx")
}

func (cw chartWriter) valAx(id, cross int, pos, title string, gridlines bool, between string) {
	w := cw.w
	w.Start("c:valAx")
	w.Empty("c:axId", xmlwriter.AInt("val", id))
	w.Start("c:scaling")
	w.Empty("c:orientation", xmlwriter.A("val", "minMax"))
	w.End("c:scaling")
	w.Empty("c:axPos", xmlwriter.A("val", pos))
	if gridlines {
		w.Empty("c:majorGridlines")
	}
	if title != "" {
		cw.title(title, pos == "l")
	}
	w.Empty("c:numFmt", xmlwriter.A("formatCode", "General"), xmlwriter.A("sourceLinked", "1"))
	w.Empty("c:tickLblPos", xmlwriter.A("val", "nextTo"))
	w.Empty("c:crossAx", xmlwriter.AInt("val", cross))
	w.Empty("c:crosses", xmlwriter.A("val", "autoZero"))
	w.Empty("c:crossBetween", xmlwriter.A("val", between))
	w.End("c:valAx")
}
