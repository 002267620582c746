package xlsxwriter

import (
	"errors"
	"fmt"
)

// ErrInvalidReference indicates a row, column or range formula that is out of
// bounds or malformed.
var ErrInvalidReference = errors.New("invalid reference")

// ErrDuplicateName indicates a worksheet name that collides, ignoring case,
// with an existing worksheet.
var ErrDuplicateName = errors.New("duplicate worksheet name")

// ErrInvalidName indicates a worksheet or defined name Excel does not accept.
var ErrInvalidName = errors.New("invalid name")

// ErrInvalidValue indicates a cell value that cannot be stored in a worksheet.
var ErrInvalidValue = errors.New("invalid cell value")

// ErrInvalidHandle indicates a zero-value handle or a handle that belongs to a
// different workbook.
var ErrInvalidHandle = errors.New("invalid handle")

// ErrInvalidChart indicates an unsupported chart configuration, such as
// combining charts without compatible axes.
var ErrInvalidChart = errors.New("invalid chart configuration")

// ErrAlreadyClosed indicates a mutation or Close after the workbook was closed.
var ErrAlreadyClosed = errors.New("workbook already closed")

// ErrIO indicates the package could not be written.
var ErrIO = errors.New("package write failed")

// ErrSchemaViolation indicates a broken internal invariant detected while
// serializing. No package is written when it occurs.
var ErrSchemaViolation = errors.New("schema violation")

// CellError reports an invalid operation on a worksheet cell.
type CellError struct {
	Sheet string
	Row   int
	Col   int
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("sheet %q cell (%d, %d): %v", e.Sheet, e.Row, e.Col, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// PartError reports a failure while producing a package part or the package
// file. It matches both its kind (ErrIO or ErrSchemaViolation) and the
// underlying cause with errors.Is.
type PartError struct {
	Part string
	Kind error
	Err  error
}

func (e *PartError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v in %s: %v", e.Kind, e.Part, e.Err)
}

func (e *PartError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func invalidRef(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidReference, err)
}
