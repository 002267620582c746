package models

// ChartSeries represents series metadata for a chart.
type ChartSeries struct {
	// Name is the literal series name.
	Name string `json:"name,omitempty"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// XRange is the categories (or X values) reference.
	XRange string `json:"x_range,omitempty"`
	// YRange is the values (or Y values) reference.
	YRange string `json:"y_range,omitempty"`
	// Points is the point count of the values cache, when one is present.
	Points int `json:"points,omitempty"`
}

// Anchor is the cell position of a drawing object. Offsets are in EMU.
type Anchor struct {
	// Cell is the top-left cell name, e.g. "D2".
	Cell string `json:"cell"`
	// Row and Col are zero-based.
	Row    int   `json:"row"`
	Col    int   `json:"col"`
	RowOff int64 `json:"row_off,omitempty"`
	ColOff int64 `json:"col_off,omitempty"`
	// To is the bottom-right cell name.
	To string `json:"to,omitempty"`
}

// Chart represents chart metadata including series and layout.
type Chart struct {
	// Name is the drawing object name, e.g. "Chart 1".
	Name string `json:"name"`
	// Part is the chart part name inside the package.
	Part string `json:"part"`
	// ChartType is the type of the first plot (e.g. Bar, Line).
	ChartType string `json:"chart_type"`
	// Plots lists every plot type drawn in the plot area, in order. It has
	// more than one entry for combined charts.
	Plots []string `json:"plots,omitempty"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// XAxisTitle is the category or X axis title.
	XAxisTitle string `json:"x_axis_title,omitempty"`
	// YAxisTitle is the Y-axis title.
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// YAxisRange is the Y-axis range [min, max] when available.
	YAxisRange []float64 `json:"y_axis_range,omitempty"`
	// Anchor is the cell the chart is anchored at.
	Anchor *Anchor `json:"anchor,omitempty"`
	// W is the chart width in pixels (nil if unknown or not verbose mode).
	W *int `json:"w,omitempty"`
	// H is the chart height in pixels (nil if unknown or not verbose mode).
	H *int `json:"h,omitempty"`
	// Series is the list of series of every plot, in plotting order.
	Series []ChartSeries `json:"series"`
	// L is the left offset in pixels.
	L int `json:"l"`
	// T is the top offset in pixels.
	T int `json:"t"`
}
