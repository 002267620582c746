package xlsxwriter

import (
	"strconv"
	"time"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/packager"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/xmlwriter"
)

const printAreaName = "_xlnm.Print_Area"

func (wb *Workbook) workbookXML() []byte {
	w := xmlwriter.New()
	w.Declaration()
	w.Start("workbook",
		xmlwriter.A("xmlns", packager.NSSpreadsheet),
		xmlwriter.A("xmlns:r", packager.NSRelationship),
	)
	w.Empty("fileVersion",
		xmlwriter.A("appName", "xl"),
		xmlwriter.A("lastEdited", "4"),
		xmlwriter.A("lowestEdited", "4"),
		xmlwriter.A("rupBuild", "4505"),
	)
	w.Empty("workbookPr", xmlwriter.A("defaultThemeVersion", "124226"))
	w.Start("bookViews")
	w.Empty("workbookView",
		xmlwriter.A("xWindow", "240"),
		xmlwriter.A("yWindow", "15"),
		xmlwriter.A("windowWidth", "16095"),
		xmlwriter.A("windowHeight", "9660"),
	)
	w.End("bookViews")

	// Worksheet relationships come first, so sheet i is rId(i+1).
	w.Start("sheets")
	for i, sd := range wb.sheets {
		w.Empty("sheet",
			xmlwriter.A("name", sd.name),
			xmlwriter.AInt("sheetId", sd.id),
			xmlwriter.A("r:id", "rId"+strconv.Itoa(i+1)),
		)
	}
	w.End("sheets")

	if wb.hasDefinedNames() {
		w.Start("definedNames")
		for _, dn := range wb.names {
			w.Element("definedName", dn.formula, xmlwriter.A("name", dn.name))
		}
		for i, sd := range wb.sheets {
			if sd.printArea == nil {
				continue
			}
			pa := sd.printArea
			f, err := ref.RangeFormula(sd.name, pa.FirstRow, pa.FirstCol, pa.LastRow, pa.LastCol, false)
			if err != nil {
				continue
			}
			w.Element("definedName", ref.StripEquals(f),
				xmlwriter.A("name", printAreaName),
				xmlwriter.AInt("localSheetId", i),
			)
		}
		w.End("definedNames")
	}

	w.Empty("calcPr", xmlwriter.A("calcId", "124519"), xmlwriter.A("fullCalcOnLoad", "1"))
	w.End("workbook")
	return w.Bytes()
}

func (wb *Workbook) hasDefinedNames() bool {
	if len(wb.names) > 0 {
		return true
	}
	for _, sd := range wb.sheets {
		if sd.printArea != nil {
			return true
		}
	}
	return false
}

func stylesXML() []byte {
	w := xmlwriter.New()
	w.Declaration()
	w.Start("styleSheet", xmlwriter.A("xmlns", packager.NSSpreadsheet))

	w.Start("fonts", xmlwriter.A("count", "1"))
	w.Start("font")
	w.Empty("sz", xmlwriter.A("val", "11"))
	w.Empty("color", xmlwriter.A("rgb", "FF000000"))
	w.Empty("name", xmlwriter.A("val", "Calibri"))
	w.Empty("family", xmlwriter.A("val", "2"))
	w.End("font")
	w.End("fonts")

	w.Start("fills", xmlwriter.A("count", "2"))
	w.Start("fill")
	w.Empty("patternFill", xmlwriter.A("patternType", "none"))
	w.End("fill")
	w.Start("fill")
	w.Empty("patternFill", xmlwriter.A("patternType", "gray125"))
	w.End("fill")
	w.End("fills")

	w.Start("borders", xmlwriter.A("count", "1"))
	w.Start("border")
	for _, side := range []string{"left", "right", "top", "bottom", "diagonal"} {
		w.Empty(side)
	}
	w.End("border")
	w.End("borders")

	w.Start("cellStyleXfs", xmlwriter.A("count", "1"))
	w.Empty("xf",
		xmlwriter.A("numFmtId", "0"),
		xmlwriter.A("fontId", "0"),
		xmlwriter.A("fillId", "0"),
		xmlwriter.A("borderId", "0"),
	)
	w.End("cellStyleXfs")

	w.Start("cellXfs", xmlwriter.A("count", "1"))
	w.Empty("xf",
		xmlwriter.A("numFmtId", "0"),
		xmlwriter.A("fontId", "0"),
		xmlwriter.A("fillId", "0"),
		xmlwriter.A("borderId", "0"),
		xmlwriter.A("xfId", "0"),
	)
	w.End("cellXfs")

	w.Start("cellStyles", xmlwriter.A("count", "1"))
	w.Empty("cellStyle", xmlwriter.A("name", "Normal"), xmlwriter.A("xfId", "0"), xmlwriter.A("builtinId", "0"))
	w.End("cellStyles")

	w.Empty("dxfs", xmlwriter.A("count", "0"))
	w.Empty("tableStyles",
		xmlwriter.A("count", "0"),
		xmlwriter.A("defaultTableStyle", "TableStyleMedium9"),
		xmlwriter.A("defaultPivotStyle", "PivotStyleLight16"),
	)
	w.End("styleSheet")
	return w.Bytes()
}

func (wb *Workbook) coreXML() []byte {
	p := wb.props
	created := wb.created.UTC().Format(time.RFC3339)

	w := xmlwriter.New()
	w.Declaration()
	w.Start("cp:coreProperties",
		xmlwriter.A("xmlns:cp", packager.NSCoreProperties),
		xmlwriter.A("xmlns:dc", packager.NSDublinCore),
		xmlwriter.A("xmlns:dcterms", packager.NSDCTerms),
		xmlwriter.A("xmlns:dcmitype", packager.NSDCMIType),
		xmlwriter.A("xmlns:xsi", packager.NSXSI),
	)
	optional := func(name, value string) {
		if value != "" {
			w.Element(name, value)
		}
	}
	optional("dc:title", p.Title)
	optional("dc:subject", p.Subject)
	w.Element("dc:creator", p.Author)
	optional("cp:keywords", p.Keywords)
	optional("dc:description", p.Comments)
	w.Element("cp:lastModifiedBy", p.Author)
	w.Element("dcterms:created", created, xmlwriter.A("xsi:type", "dcterms:W3CDTF"))
	w.Element("dcterms:modified", created, xmlwriter.A("xsi:type", "dcterms:W3CDTF"))
	optional("cp:category", p.Category)
	optional("cp:contentStatus", p.Status)
	w.End("cp:coreProperties")
	return w.Bytes()
}

func (wb *Workbook) appXML() []byte {
	w := xmlwriter.New()
	w.Declaration()
	w.Start("Properties",
		xmlwriter.A("xmlns", packager.NSExtended),
		xmlwriter.A("xmlns:vt", packager.NSDocPropsVTypes),
	)
	w.Element("Application", "Microsoft Excel")
	w.Element("DocSecurity", "0")
	w.Element("ScaleCrop", "false")

	w.Start("HeadingPairs")
	w.Start("vt:vector", xmlwriter.A("size", "2"), xmlwriter.A("baseType", "variant"))
	w.Start("vt:variant")
	w.Element("vt:lpstr", "Worksheets")
	w.End("vt:variant")
	w.Start("vt:variant")
	w.Element("vt:i4", strconv.Itoa(len(wb.sheets)))
	w.End("vt:variant")
	w.End("vt:vector")
	w.End("HeadingPairs")

	w.Start("TitlesOfParts")
	w.Start("vt:vector", xmlwriter.AInt("size", len(wb.sheets)), xmlwriter.A("baseType", "lpstr"))
	for _, sd := range wb.sheets {
		w.Element("vt:lpstr", sd.name)
	}
	w.End("vt:vector")
	w.End("TitlesOfParts")

	if wb.props.Manager != "" {
		w.Element("Manager", wb.props.Manager)
	}
	w.Element("Company", wb.props.Company)
	w.Element("LinksUpToDate", "false")
	w.Element("SharedDoc", "false")
	w.Element("HyperlinksChanged", "false")
	w.Element("AppVersion", "12.0000")
	w.End("Properties")
	return w.Bytes()
}
