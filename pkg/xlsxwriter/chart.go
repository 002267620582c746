package xlsxwriter

import (
	"fmt"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
)

// ChartKind is the chart type.
type ChartKind int

const (
	ChartArea ChartKind = iota + 1
	ChartAreaStacked
	ChartAreaStackedPercent
	ChartBar
	ChartBarStacked
	ChartBarStackedPercent
	ChartColumn
	ChartColumnStacked
	ChartColumnStackedPercent
	ChartLine
	ChartLineStacked
	ChartLineStackedPercent
	ChartPie
	ChartDoughnut
	ChartScatter
	ChartScatterStraight
	ChartScatterStraightWithMarkers
	ChartScatterSmooth
	ChartScatterSmoothWithMarkers
	ChartRadar
	ChartRadarWithMarkers
	ChartRadarFilled
	ChartStock
)

// Stock charts plot high-low-close or open-high-low-close series.
const (
	minStockSeries = 3
	maxStockSeries = 4
)

// axisFamily groups chart kinds by the axes they plot on.
type axisFamily int

const (
	axesNone axisFamily = iota
	axesCategory
	axesHorizontal
	axesScatter
	axesRadar
	axesDate
)

// seriesLayout selects the child element sequence of c:ser.
type seriesLayout int

const (
	layoutBar seriesLayout = iota
	layoutLine
	layoutArea
	layoutPie
	layoutScatter
	layoutRadar
	layoutStock
)

type kindInfo struct {
	name     string
	element  string
	family   axisFamily
	layout   seriesLayout
	barDir   string
	grouping string
	style    string // scatterStyle or radarStyle
	// noLine hides series lines, noMarker hides markers.
	noLine   bool
	noMarker bool
	smooth   bool
}

var chartKinds = map[ChartKind]kindInfo{
	ChartArea:                       {name: "area", element: "c:areaChart", family: axesCategory, layout: layoutArea, grouping: "standard"},
	ChartAreaStacked:                {name: "area_stacked", element: "c:areaChart", family: axesCategory, layout: layoutArea, grouping: "stacked"},
	ChartAreaStackedPercent:         {name: "area_stacked_percent", element: "c:areaChart", family: axesCategory, layout: layoutArea, grouping: "percentStacked"},
	ChartBar:                        {name: "bar", element: "c:barChart", family: axesHorizontal, layout: layoutBar, barDir: "bar", grouping: "clustered"},
	ChartBarStacked:                 {name: "bar_stacked", element: "c:barChart", family: axesHorizontal, layout: layoutBar, barDir: "bar", grouping: "stacked"},
	ChartBarStackedPercent:          {name: "bar_stacked_percent", element: "c:barChart", family: axesHorizontal, layout: layoutBar, barDir: "bar", grouping: "percentStacked"},
	ChartColumn:                     {name: "column", element: "c:barChart", family: axesCategory, layout: layoutBar, barDir: "col", grouping: "clustered"},
	ChartColumnStacked:              {name: "column_stacked", element: "c:barChart", family: axesCategory, layout: layoutBar, barDir: "col", grouping: "stacked"},
	ChartColumnStackedPercent:       {name: "column_stacked_percent", element: "c:barChart", family: axesCategory, layout: layoutBar, barDir: "col", grouping: "percentStacked"},
	ChartLine:                       {name: "line", element: "c:lineChart", family: axesCategory, layout: layoutLine, grouping: "standard"},
	ChartLineStacked:                {name: "line_stacked", element: "c:lineChart", family: axesCategory, layout: layoutLine, grouping: "stacked"},
	ChartLineStackedPercent:         {name: "line_stacked_percent", element: "c:lineChart", family: axesCategory, layout: layoutLine, grouping: "percentStacked"},
	ChartPie:                        {name: "pie", element: "c:pieChart", family: axesNone, layout: layoutPie},
	ChartDoughnut:                   {name: "doughnut", element: "c:doughnutChart", family: axesNone, layout: layoutPie},
	ChartScatter:                    {name: "scatter", element: "c:scatterChart", family: axesScatter, layout: layoutScatter, style: "lineMarker", noLine: true},
	ChartScatterStraight:            {name: "scatter_straight", element: "c:scatterChart", family: axesScatter, layout: layoutScatter, style: "lineMarker", noMarker: true},
	ChartScatterStraightWithMarkers: {name: "scatter_straight_with_markers", element: "c:scatterChart", family: axesScatter, layout: layoutScatter, style: "lineMarker"},
	ChartScatterSmooth:              {name: "scatter_smooth", element: "c:scatterChart", family: axesScatter, layout: layoutScatter, style: "smoothMarker", noMarker: true, smooth: true},
	ChartScatterSmoothWithMarkers:   {name: "scatter_smooth_with_markers", element: "c:scatterChart", family: axesScatter, layout: layoutScatter, style: "smoothMarker", smooth: true},
	ChartRadar:                      {name: "radar", element: "c:radarChart", family: axesRadar, layout: layoutRadar, style: "marker", noMarker: true},
	ChartRadarWithMarkers:           {name: "radar_with_markers", element: "c:radarChart", family: axesRadar, layout: layoutRadar, style: "marker"},
	ChartRadarFilled:                {name: "radar_filled", element: "c:radarChart", family: axesRadar, layout: layoutRadar, style: "filled"},
	ChartStock:                      {name: "stock", element: "c:stockChart", family: axesDate, layout: layoutStock, noLine: true, noMarker: true},
}

// String returns the snake_case name of the kind, e.g. "column_stacked".
func (k ChartKind) String() string {
	if info, ok := chartKinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("ChartKind(%d)", int(k))
}

// ParseChartKind returns the kind named by String.
func ParseChartKind(name string) (ChartKind, error) {
	for k, info := range chartKinds {
		if info.name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown chart kind %q", ErrInvalidChart, name)
}

// LegendPosition places the chart legend. The zero value is the right side.
type LegendPosition int

const (
	LegendRight LegendPosition = iota
	LegendLeft
	LegendTop
	LegendBottom
	LegendTopRight
	LegendNone
)

var legendValues = map[LegendPosition]string{
	LegendRight:    "r",
	LegendLeft:     "l",
	LegendTop:      "t",
	LegendBottom:   "b",
	LegendTopRight: "tr",
}

// Chart is a handle to a chart owned by a Workbook.
type Chart struct {
	wb    *Workbook
	index int
}

type chartData struct {
	id     int
	kind   ChartKind
	series []int // indexes into the workbook series arena, in insertion order

	title     string
	xAxisName string
	yAxisName string
	style     int
	legend    LegendPosition

	// combined is the arena index of a chart drawn in this chart's plot area,
	// parent the index of the chart this one is drawn into; -1 when unset.
	combined int
	parent   int
}

func (c Chart) data() (*chartData, error) {
	if c.wb == nil || c.index < 0 || c.index >= len(c.wb.charts) {
		return nil, ErrInvalidHandle
	}
	return c.wb.charts[c.index], nil
}

func (c Chart) mutable() (*chartData, error) {
	if c.wb == nil {
		return nil, ErrInvalidHandle
	}
	if err := c.wb.checkOpen(); err != nil {
		return nil, err
	}
	return c.data()
}

// ID returns the 1-based chart identifier in creation order.
func (c Chart) ID() int {
	cd, err := c.data()
	if err != nil {
		return 0
	}
	return cd.id
}

// Kind returns the chart kind.
func (c Chart) Kind() ChartKind {
	cd, err := c.data()
	if err != nil {
		return 0
	}
	return cd.kind
}

// AddSeries appends a series. Empty strings leave categories or values unset
// so they can be supplied later with SetCategories and SetValues.
// Non-empty formulas must be a sheet qualified range such as
// "=Sheet1!$A$1:$A$5" or a union such as "=(Sheet1!$A$1:$A$5,Sheet1!$A$10:$A$18)".
// The referenced sheets and cells are not required to exist. A stock chart
// holds at most four series.
func (c Chart) AddSeries(categories, values string) (ChartSeries, error) {
	cd, err := c.mutable()
	if err != nil {
		return ChartSeries{}, err
	}
	if cd.kind == ChartStock && len(cd.series) == maxStockSeries {
		return ChartSeries{}, fmt.Errorf("%w: stock chart already has %d series", ErrInvalidChart, maxStockSeries)
	}
	for _, f := range []string{categories, values} {
		if f == "" {
			continue
		}
		if err := ref.Validate(f); err != nil {
			return ChartSeries{}, invalidRef(err)
		}
	}

	sd := &seriesData{
		chart:      c.index,
		categories: c.wb.formulas.Intern(categories),
		values:     c.wb.formulas.Intern(values),
	}
	c.wb.series = append(c.wb.series, sd)
	cd.series = append(cd.series, len(c.wb.series)-1)
	return ChartSeries{wb: c.wb, index: len(c.wb.series) - 1}, nil
}

// Series returns the chart's series in insertion order.
func (c Chart) Series() []ChartSeries {
	cd, err := c.data()
	if err != nil {
		return nil
	}
	out := make([]ChartSeries, len(cd.series))
	for i, s := range cd.series {
		out[i] = ChartSeries{wb: c.wb, index: s}
	}
	return out
}

// SetTitle sets the chart title. A title starting with '=' is a cell
// reference such as "=Sheet1!$A$1".
func (c Chart) SetTitle(title string) error {
	cd, err := c.mutable()
	if err != nil {
		return err
	}
	v, err := c.wb.label(title)
	if err != nil {
		return err
	}
	cd.title = v
	return nil
}

// SetXAxisName sets the category (or X value) axis title.
func (c Chart) SetXAxisName(name string) error {
	cd, err := c.mutable()
	if err != nil {
		return err
	}
	v, err := c.wb.label(name)
	if err != nil {
		return err
	}
	cd.xAxisName = v
	return nil
}

// SetYAxisName sets the value axis title.
func (c Chart) SetYAxisName(name string) error {
	cd, err := c.mutable()
	if err != nil {
		return err
	}
	v, err := c.wb.label(name)
	if err != nil {
		return err
	}
	cd.yAxisName = v
	return nil
}

// SetStyle selects one of Excel's 48 built-in chart styles.
func (c Chart) SetStyle(style int) error {
	cd, err := c.mutable()
	if err != nil {
		return err
	}
	if style < 1 || style > 48 {
		return fmt.Errorf("%w: style %d outside 1..48", ErrInvalidChart, style)
	}
	cd.style = style
	return nil
}

// SetLegendPosition places or hides the legend.
func (c Chart) SetLegendPosition(pos LegendPosition) error {
	cd, err := c.mutable()
	if err != nil {
		return err
	}
	if _, ok := legendValues[pos]; !ok && pos != LegendNone {
		return fmt.Errorf("%w: legend position %d", ErrInvalidChart, pos)
	}
	cd.legend = pos
	return nil
}

// Combine draws other in this chart's plot area, sharing its axes. Both
// charts must plot on the same kind of axes, e.g. a column chart combined
// with a line chart.
func (c Chart) Combine(other Chart) error {
	cd, err := c.mutable()
	if err != nil {
		return err
	}
	if other.wb != c.wb {
		return fmt.Errorf("%w: chart belongs to another workbook", ErrInvalidHandle)
	}
	od, err := other.data()
	if err != nil {
		return err
	}
	if other.index == c.index {
		return fmt.Errorf("%w: chart cannot be combined with itself", ErrInvalidChart)
	}
	if cd.combined >= 0 || cd.parent >= 0 || od.combined >= 0 || od.parent >= 0 {
		return fmt.Errorf("%w: chart already combined", ErrInvalidChart)
	}
	if c.wb.inserted(other.index) {
		return fmt.Errorf("%w: chart %d is inserted in a worksheet", ErrInvalidChart, od.id)
	}

	pf, sf := chartKinds[cd.kind].family, chartKinds[od.kind].family
	if pf != sf || pf == axesNone || pf == axesDate {
		return fmt.Errorf("%w: cannot combine %s with %s", ErrInvalidChart, cd.kind, od.kind)
	}
	cd.combined = other.index
	od.parent = c.index
	return nil
}

func (wb *Workbook) inserted(chart int) bool {
	for _, sd := range wb.sheets {
		for _, a := range sd.anchors {
			if a.chart == chart {
				return true
			}
		}
	}
	return false
}

// label validates a title or axis name; names starting with '=' must be a
// cell reference.
func (wb *Workbook) label(s string) (string, error) {
	if len(s) > 0 && s[0] == '=' {
		if err := ref.Validate(s); err != nil {
			return "", invalidRef(err)
		}
		return wb.formulas.Intern(s), nil
	}
	return s, nil
}
