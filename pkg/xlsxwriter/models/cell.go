// Package models defines the JSON shapes produced when a package is
// inspected.
package models

// CellRow represents a single row of cells.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string, 1-based) to cell value.
	C map[string]any `json:"c"`
	// F maps column index to the cell formula, without the leading '='.
	F map[string]string `json:"f,omitempty"`
}
