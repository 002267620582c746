package packager

// Content types used by the parts of a spreadsheet package.
const (
	ContentTypeRels          = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
	ContentTypeWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ContentTypeWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ContentTypeSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	ContentTypeStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ContentTypeDrawing       = "application/vnd.openxmlformats-officedocument.drawing+xml"
	ContentTypeChart         = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	ContentTypeCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeExtended      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Relationship types.
const (
	RelOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelCore           = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelExtended       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	RelWorksheet      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	RelStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelSharedStrings  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
	RelDrawing        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing"
	RelChart          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
)

// XML namespaces shared by the serializers.
const (
	NSPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSSpreadsheet  = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	NSRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSDrawingML    = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSChart        = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	NSSheetDrawing = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
)

// Namespaces of the document property parts.
const (
	NSCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NSExtended       = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	NSDocPropsVTypes = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	NSDublinCore     = "http://purl.org/dc/elements/1.1/"
	NSDCTerms        = "http://purl.org/dc/terms/"
	NSDCMIType       = "http://purl.org/dc/dcmitype/"
	NSXSI            = "http://www.w3.org/2001/XMLSchema-instance"
)
