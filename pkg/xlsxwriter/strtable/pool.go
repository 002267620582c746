package strtable

import "strings"

// Pool keeps owned copies of formula strings handed to chart series.
// Strings are deduplicated and never released before the pool itself.
type Pool struct {
	values map[string]string
	order  []string
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{values: make(map[string]string)}
}

// Intern returns the pooled copy of s. Empty strings are not pooled.
func (p *Pool) Intern(s string) string {
	if s == "" {
		return ""
	}
	if v, ok := p.values[s]; ok {
		return v
	}
	v := strings.Clone(s)
	p.values[v] = v
	p.order = append(p.order, v)
	return v
}

// Contains reports whether s has been interned.
func (p *Pool) Contains(s string) bool {
	_, ok := p.values[s]
	return ok
}

// Len returns the number of distinct pooled strings.
func (p *Pool) Len() int {
	return len(p.order)
}

// All returns the pooled strings in first-interned order.
func (p *Pool) All() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}
