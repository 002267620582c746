// Package xlsxwriter writes Office Open XML spreadsheet packages with charts.
package xlsxwriter

import (
	"compress/flate"
	"time"
)

// Options configures workbook output.
type Options struct {
	// CompressionLevel is the deflate level used for every part.
	// If nil, defaults to flate.DefaultCompression.
	CompressionLevel *int
	// Created is written to the document properties and ZIP entry times.
	// If zero, the time the workbook was created is used.
	Created time.Time
	// DefaultRowHeight is the row height in points used for rows without an
	// explicit height. If zero, defaults to 15.
	DefaultRowHeight float64
	// DefaultColumnWidth is the column width in characters used for columns
	// without an explicit width. If zero, defaults to 8.43.
	DefaultColumnWidth float64
}

// DefaultOptions returns default workbook options.
func DefaultOptions() Options {
	return Options{}
}

// Compression returns the deflate level to use.
func (o Options) Compression() int {
	if o.CompressionLevel != nil {
		return *o.CompressionLevel
	}
	return flate.DefaultCompression
}

// RowHeight returns the default row height in points.
func (o Options) RowHeight() float64 {
	if o.DefaultRowHeight > 0 {
		return o.DefaultRowHeight
	}
	return 15
}

// ColumnWidth returns the default column width in characters.
func (o Options) ColumnWidth() float64 {
	if o.DefaultColumnWidth > 0 {
		return o.DefaultColumnWidth
	}
	return 8.43
}

// DocProperties are the document metadata stored in docProps/core.xml and
// docProps/app.xml.
type DocProperties struct {
	Title    string
	Subject  string
	Author   string
	Manager  string
	Company  string
	Category string
	Keywords string
	Comments string
	Status   string
}
