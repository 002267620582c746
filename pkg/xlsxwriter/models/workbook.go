package models

// Properties holds the document properties of a workbook.
type Properties struct {
	Title    string `json:"title,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Keywords string `json:"keywords,omitempty"`
	Category string `json:"category,omitempty"`
	Created  string `json:"created,omitempty"`
}

// WorkbookData represents workbook-level container with per-sheet data.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists the sheets in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets"`
	// DefinedNames lists the defined names other than print areas.
	DefinedNames []DefinedName `json:"defined_names,omitempty"`
	// Properties are the core document properties.
	Properties *Properties `json:"properties,omitempty"`
	// Parts lists the package parts in archive order (verbose mode).
	Parts []string `json:"parts,omitempty"`
}
