package xlsxwriter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/strtable"
	"golang.org/x/text/cases"
)

// maxSheetNameLength is the longest worksheet name Excel accepts.
const maxSheetNameLength = 31

// Workbook is the root of the object graph. It owns every worksheet, chart
// and series in arenas and hands out index based handles to them.
//
// A Workbook is not safe for concurrent use.
type Workbook struct {
	path    string
	opts    Options
	props   DocProperties
	created time.Time

	strings  *strtable.Table
	formulas *strtable.Pool

	sheets []*sheetData
	charts []*chartData
	series []*seriesData
	names  []definedName

	closed bool
}

type definedName struct {
	name    string
	formula string
}

// New creates a workbook that is written to path on Close.
func New(path string) *Workbook {
	return NewWithOptions(path, DefaultOptions())
}

// NewWithOptions creates a workbook with explicit options.
func NewWithOptions(path string, opts Options) *Workbook {
	created := opts.Created
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return &Workbook{
		path:     path,
		opts:     opts,
		created:  created,
		strings:  strtable.NewTable(),
		formulas: strtable.NewPool(),
	}
}

// Path returns the destination file path.
func (wb *Workbook) Path() string {
	return wb.path
}

// Closed reports whether Close has been called.
func (wb *Workbook) Closed() bool {
	return wb.closed
}

func (wb *Workbook) checkOpen() error {
	if wb == nil {
		return ErrInvalidHandle
	}
	if wb.closed {
		return ErrAlreadyClosed
	}
	return nil
}

// AddWorksheet appends a worksheet. An empty name selects the first free
// name of the form SheetN. Names are compared ignoring case.
func (wb *Workbook) AddWorksheet(name string) (Worksheet, error) {
	if err := wb.checkOpen(); err != nil {
		return Worksheet{}, err
	}

	if name == "" {
		name = wb.nextSheetName()
	} else if err := validateSheetName(name); err != nil {
		return Worksheet{}, err
	}
	if _, ok := wb.sheetIndex(name); ok {
		return Worksheet{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	return wb.appendSheet(name), nil
}

func (wb *Workbook) appendSheet(name string) Worksheet {
	sd := &sheetData{
		id:         len(wb.sheets) + 1,
		name:       name,
		rows:       make(map[int]map[int]cell),
		colWidths:  make(map[int]float64),
		rowHeights: make(map[int]float64),
	}
	wb.sheets = append(wb.sheets, sd)
	return Worksheet{wb: wb, index: len(wb.sheets) - 1}
}

func (wb *Workbook) nextSheetName() string {
	for n := len(wb.sheets) + 1; ; n++ {
		name := "Sheet" + strconv.Itoa(n)
		if _, ok := wb.sheetIndex(name); !ok {
			return name
		}
	}
}

func validateSheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: blank worksheet name", ErrInvalidName)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidName, name)
	}
	if strings.IndexFunc(name, func(r rune) bool { return r < 0x20 || r == 0x7F }) >= 0 {
		return fmt.Errorf("%w: %q contains a control character", ErrInvalidName, name)
	}
	if utf8.RuneCountInString(name) > maxSheetNameLength {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidName, name, maxSheetNameLength)
	}
	if strings.ContainsAny(name, `[]:*?/\`) {
		return fmt.Errorf("%w: %q contains one of []:*?/\\", ErrInvalidName, name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("%w: %q starts or ends with an apostrophe", ErrInvalidName, name)
	}
	if foldName(name) == foldName("History") {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}
	return nil
}

func foldName(name string) string {
	return cases.Fold().String(name)
}

func (wb *Workbook) sheetIndex(name string) (int, bool) {
	key := foldName(name)
	for i, sd := range wb.sheets {
		if foldName(sd.name) == key {
			return i, true
		}
	}
	return 0, false
}

// Worksheet looks up a worksheet by name, ignoring case.
func (wb *Workbook) Worksheet(name string) (Worksheet, bool) {
	i, ok := wb.sheetIndex(name)
	if !ok {
		return Worksheet{}, false
	}
	return Worksheet{wb: wb, index: i}, true
}

// Worksheets returns all worksheets in creation order.
func (wb *Workbook) Worksheets() []Worksheet {
	out := make([]Worksheet, len(wb.sheets))
	for i := range wb.sheets {
		out[i] = Worksheet{wb: wb, index: i}
	}
	return out
}

// AddChart creates a chart of the given kind. Every chart is written to the
// package; a chart that is never inserted has no drawing.
func (wb *Workbook) AddChart(kind ChartKind) (Chart, error) {
	if err := wb.checkOpen(); err != nil {
		return Chart{}, err
	}
	if _, ok := chartKinds[kind]; !ok {
		return Chart{}, fmt.Errorf("%w: unknown chart kind %d", ErrInvalidChart, kind)
	}

	cd := &chartData{
		id:       len(wb.charts) + 1,
		kind:     kind,
		combined: -1,
		parent:   -1,
	}
	wb.charts = append(wb.charts, cd)
	return Chart{wb: wb, index: len(wb.charts) - 1}, nil
}

// Charts returns all charts in creation order.
func (wb *Workbook) Charts() []Chart {
	out := make([]Chart, len(wb.charts))
	for i := range wb.charts {
		out[i] = Chart{wb: wb, index: i}
	}
	return out
}

// SetProperties sets the document properties.
func (wb *Workbook) SetProperties(props DocProperties) error {
	if err := wb.checkOpen(); err != nil {
		return err
	}
	wb.props = props
	return nil
}

// DefineName adds a workbook level defined name, e.g.
// DefineName("Sales", "=Sheet1!$A$1:$A$10").
func (wb *Workbook) DefineName(name, formula string) error {
	if err := wb.checkOpen(); err != nil {
		return err
	}
	if err := validateDefinedName(name); err != nil {
		return err
	}
	value := ref.StripEquals(strings.TrimSpace(formula))
	if value == "" {
		return fmt.Errorf("%w: empty formula for %q", ErrInvalidReference, name)
	}

	key := foldName(name)
	for _, dn := range wb.names {
		if foldName(dn.name) == key {
			return fmt.Errorf("%w: defined name %q", ErrDuplicateName, name)
		}
	}
	wb.names = append(wb.names, definedName{name: name, formula: wb.formulas.Intern(value)})
	return nil
}

func validateDefinedName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty defined name", ErrInvalidName)
	}
	for i, r := range name {
		if i == 0 && !(unicode.IsLetter(r) || r == '_' || r == '\\') {
			return fmt.Errorf("%w: %q must start with a letter or underscore", ErrInvalidName, name)
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.' || r == '\\') {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
		}
	}
	if _, err := ref.ParseRange("X!" + name); err == nil {
		return fmt.Errorf("%w: %q looks like a cell reference", ErrInvalidName, name)
	}
	if strings.HasPrefix(strings.ToLower(name), "_xlnm.") {
		return fmt.Errorf("%w: %q uses the reserved _xlnm prefix", ErrInvalidName, name)
	}
	return nil
}
