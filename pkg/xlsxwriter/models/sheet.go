package models

// SheetData represents structured data for a single sheet.
type SheetData struct {
	// Dimension is the range recorded in the worksheet part, e.g. "A1:C5".
	Dimension string `json:"dimension,omitempty"`
	// UsedRange is the bounding range of the non-empty cells.
	UsedRange string `json:"used_range,omitempty"`
	// Density is the share of non-empty cells inside UsedRange.
	Density float64 `json:"density,omitempty"`
	// Rows contains extracted rows with cell values.
	Rows []CellRow `json:"rows,omitempty"`
	// Charts contains charts anchored on the sheet, in drawing order.
	Charts []Chart `json:"charts,omitempty"`
	// PrintAreas contains user-defined print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}
