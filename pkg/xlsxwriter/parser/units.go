// Package parser reads the parts of an XLSX package back into models,
// mainly to inspect the drawings, charts and cells a workbook contains.
package parser

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 1 inch = 914400 EMU, 1 inch = 96 pixels at 96 DPI
// Therefore: 914400 / 96 = 9525 EMU per pixel
const EMUPerPixel = 9525

// maxDigitWidth is the pixel width of '0' in the default 11pt Calibri font.
const maxDigitWidth = 7

// columnPadding is the cell padding Excel adds to a column, in pixels.
const columnPadding = 5

// EMUToPixels converts EMU (English Metric Units) to pixels at 96 DPI.
// Excel uses EMU for internal coordinate representation.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// PixelsToEMU converts pixels at 96 DPI to EMU.
func PixelsToEMU(px int) int64 {
	return int64(px) * EMUPerPixel
}

// ColumnWidthToPixels converts a column width in characters to pixels.
// The default width of 8.43 is 64 pixels.
func ColumnWidthToPixels(width float64) int {
	if width <= 0 {
		return 0
	}
	if width < 1 {
		return int(width*(maxDigitWidth+columnPadding) + 0.5)
	}
	return int(width*maxDigitWidth+0.5) + columnPadding
}

// RowHeightToPixels converts a row height in points to pixels.
// The default height of 15 points is 20 pixels.
func RowHeightToPixels(height float64) int {
	if height <= 0 {
		return 0
	}
	return int(4.0 / 3.0 * height)
}
