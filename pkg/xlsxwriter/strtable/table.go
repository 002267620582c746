// Package strtable provides the append-only string tables owned by a workbook.
package strtable

// Table is the shared string table referenced by string cells.
// Each distinct string is stored once and keeps its index for the lifetime
// of the table.
type Table struct {
	strings []string
	index   map[string]int
}

// NewTable creates an empty shared string table.
func NewTable() *Table {
	return &Table{
		index: make(map[string]int),
	}
}

// Add interns s and returns its zero-based index.
// Adding a string that is already present returns the existing index.
func (t *Table) Add(s string) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.strings)
	t.strings = append(t.strings, s)
	t.index[s] = i
	return i
}

// Lookup returns the index of s without interning it.
func (t *Table) Lookup(s string) (int, bool) {
	i, ok := t.index[s]
	return i, ok
}

// Get returns the string stored at index i.
func (t *Table) Get(i int) (string, bool) {
	if i < 0 || i >= len(t.strings) {
		return "", false
	}
	return t.strings[i], true
}

// Len returns the number of unique strings.
func (t *Table) Len() int {
	return len(t.strings)
}

// Strings returns the unique strings in index order.
func (t *Table) Strings() []string {
	out := make([]string, len(t.strings))
	copy(out, t.strings)
	return out
}
