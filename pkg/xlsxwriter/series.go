package xlsxwriter

import (
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter/ref"
)

// ChartSeries is a handle to one data series of a chart.
type ChartSeries struct {
	wb    *Workbook
	index int
}

type seriesData struct {
	chart      int // owning chart in the workbook chart arena
	categories string
	values     string
	name       string
}

func (s ChartSeries) data() (*seriesData, error) {
	if s.wb == nil || s.index < 0 || s.index >= len(s.wb.series) {
		return nil, ErrInvalidHandle
	}
	return s.wb.series[s.index], nil
}

func (s ChartSeries) mutable() (*seriesData, error) {
	if s.wb == nil {
		return nil, ErrInvalidHandle
	}
	if err := s.wb.checkOpen(); err != nil {
		return nil, err
	}
	return s.data()
}

// Chart returns the chart the series belongs to.
func (s ChartSeries) Chart() Chart {
	sd, err := s.data()
	if err != nil {
		return Chart{}
	}
	return Chart{wb: s.wb, index: sd.chart}
}

// Categories returns the category formula, e.g. "=Sheet1!$A$1:$A$5", or ""
// when unset.
func (s ChartSeries) Categories() string {
	sd, err := s.data()
	if err != nil {
		return ""
	}
	return sd.categories
}

// Values returns the values formula, or "" when unset.
func (s ChartSeries) Values() string {
	sd, err := s.data()
	if err != nil {
		return ""
	}
	return sd.values
}

// Name returns the series name, which is either literal text or a formula
// starting with '='.
func (s ChartSeries) Name() string {
	sd, err := s.data()
	if err != nil {
		return ""
	}
	return sd.name
}

// SetCategories replaces the categories with a range built from zero-based
// coordinates. A single cell range is written as "=Sheet!$A$1".
// On error the series is left unchanged.
func (s ChartSeries) SetCategories(sheet string, firstRow, firstCol, lastRow, lastCol int) error {
	sd, err := s.mutable()
	if err != nil {
		return err
	}
	f, err := ref.RangeFormula(sheet, firstRow, firstCol, lastRow, lastCol, true)
	if err != nil {
		return invalidRef(err)
	}
	sd.categories = s.wb.formulas.Intern(f)
	return nil
}

// SetValues replaces the values with a range built from zero-based
// coordinates. The range form is always used, even for a single cell.
// On error the series is left unchanged.
func (s ChartSeries) SetValues(sheet string, firstRow, firstCol, lastRow, lastCol int) error {
	sd, err := s.mutable()
	if err != nil {
		return err
	}
	f, err := ref.RangeFormula(sheet, firstRow, firstCol, lastRow, lastCol, false)
	if err != nil {
		return invalidRef(err)
	}
	sd.values = s.wb.formulas.Intern(f)
	return nil
}

// SetName sets the series name shown in the legend. A name starting with
// '=' must reference a cell, e.g. "=Sheet1!$B$1".
func (s ChartSeries) SetName(name string) error {
	sd, err := s.mutable()
	if err != nil {
		return err
	}
	v, err := s.wb.label(name)
	if err != nil {
		return err
	}
	sd.name = v
	return nil
}

// SetNameRange sets the series name to a single cell reference.
func (s ChartSeries) SetNameRange(sheet string, row, col int) error {
	sd, err := s.mutable()
	if err != nil {
		return err
	}
	f, err := ref.RangeFormula(sheet, row, col, row, col, true)
	if err != nil {
		return invalidRef(err)
	}
	sd.name = s.wb.formulas.Intern(f)
	return nil
}
