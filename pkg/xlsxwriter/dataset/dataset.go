// Package dataset copies SQL query results into worksheets and charts.
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/ukaji3/xlsxwriter-go/pkg/xlsxwriter"
	"go.alis.build/alog"
)

// ErrNoRows is returned when a chart is requested for a table without data rows.
var ErrNoRows = errors.New("dataset has no rows")

// Drivers lists the database/sql driver names registered by this package.
var Drivers = []string{"sqlite3", "postgres"}

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Open opens a database with one of Drivers. SQLite handles are limited to a
// single connection so that in-memory databases survive between queries.
func Open(driver, dsn string) (*sql.DB, error) {
	known := false
	for _, d := range Drivers {
		if d == driver {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown driver %q (must be one of %v)", driver, Drivers)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Table is a materialized query result.
type Table struct {
	Columns []string
	// Rows hold nil, int64, float64, bool, string or time.Time values.
	Rows [][]any
}

// Query runs query and reads every row into a Table.
func Query(ctx context.Context, q Querier, query string, args ...any) (*Table, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	t := &Table{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(t.Rows)+1, err)
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		t.Rows = append(t.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	alog.Debugf(ctx, "query returned %d rows of %d columns", len(t.Rows), len(columns))
	return t, nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}

// WriteSheet writes the header row at (row, col) and the data rows below it.
// NULL values leave their cell empty.
func (t *Table) WriteSheet(ws xlsxwriter.Worksheet, row, col int) error {
	for j, name := range t.Columns {
		if err := ws.WriteString(row, col+j, name); err != nil {
			return err
		}
	}
	for i, values := range t.Rows {
		r := row + 1 + i
		for j, v := range values {
			if err := writeValue(ws, r, col+j, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeValue(ws xlsxwriter.Worksheet, row, col int, v any) error {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		return ws.WriteNumber(row, col, float64(x))
	case float64:
		return ws.WriteNumber(row, col, x)
	case bool:
		return ws.WriteBoolean(row, col, x)
	case string:
		return ws.WriteString(row, col, x)
	case time.Time:
		return ws.WriteString(row, col, x.Format(time.RFC3339))
	default:
		return ws.WriteString(row, col, fmt.Sprint(x))
	}
}

// AddSeries adds one series per value column to c for a table written at
// (row, col) of sheet by WriteSheet. Column indexes are zero-based into
// Columns; a negative category leaves the series without categories. Each
// series is named after its header cell.
func (t *Table) AddSeries(c xlsxwriter.Chart, sheet string, row, col, category int, values ...int) error {
	if len(t.Rows) == 0 {
		return ErrNoRows
	}
	first, last := row+1, row+len(t.Rows)
	for _, idx := range append([]int{category}, values...) {
		if idx >= len(t.Columns) {
			return fmt.Errorf("column %d out of range (table has %d columns)", idx, len(t.Columns))
		}
	}

	for _, idx := range values {
		if idx < 0 {
			return fmt.Errorf("column %d out of range (table has %d columns)", idx, len(t.Columns))
		}
		s, err := c.AddSeries("", "")
		if err != nil {
			return err
		}
		if category >= 0 {
			if err := s.SetCategories(sheet, first, col+category, last, col+category); err != nil {
				return err
			}
		}
		if err := s.SetValues(sheet, first, col+idx, last, col+idx); err != nil {
			return err
		}
		if err := s.SetNameRange(sheet, row, col+idx); err != nil {
			return err
		}
	}
	return nil
}
