// Package table holds the columnar series data that facet layouts are computed from.
//
// A [Table] is a long-format dataset: every [Row] carries an entity name, an
// integer time (usually a year) and a sparse set of numeric values keyed by
// column slug. Tables are immutable; filtering returns a new table that shares
// row storage with the original.
//
// Tables are read from JSON, CSV or XLSX with [ReadFile] or the format-specific
// readers. CSV and XLSX inputs use a header row whose entity and time columns are
// detected by name (entity/entityName/country and year/time/day).
package table

import (
	"slices"
)

// Column describes one value column.
type Column struct {
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
	Unit string `json:"unit,omitempty"`
}

// DisplayName returns the name if set, otherwise the slug.
func (c Column) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Slug
}

// Row is one observation for an entity at a time.
type Row struct {
	Entity string             `json:"entity"`
	Time   int                `json:"time"`
	Values map[string]float64 `json:"values"`
}

// Value returns the value for slug and whether it is present.
func (r Row) Value(slug string) (float64, bool) {
	v, ok := r.Values[slug]
	return v, ok
}

// Table is an immutable set of columns and rows.
type Table struct {
	columns []Column
	index   map[string]int
	rows    []Row
}

// New builds a table. Rows are kept in the given order; columns with duplicate
// slugs keep their first definition.
func New(columns []Column, rows []Row) *Table {
	t := &Table{index: make(map[string]int, len(columns)), rows: rows}
	for _, c := range columns {
		if _, dup := t.index[c.Slug]; dup {
			continue
		}
		t.index[c.Slug] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// Columns returns the column definitions in order.
func (t *Table) Columns() []Column {
	if t == nil {
		return nil
	}
	return slices.Clone(t.columns)
}

// Rows returns the rows in order. Callers must not modify row values.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	return t.rows
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Get looks up a column by slug. A missing column is returned as a bare
// Column carrying only the slug, with ok set to false.
func (t *Table) Get(slug string) (Column, bool) {
	if t != nil {
		if i, ok := t.index[slug]; ok {
			return t.columns[i], true
		}
	}
	return Column{Slug: slug}, false
}

// Has reports whether the table defines the column.
func (t *Table) Has(slug string) bool {
	_, ok := t.Get(slug)
	return ok
}

// NumericColumnSlugs returns all value column slugs in definition order.
func (t *Table) NumericColumnSlugs() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Slug
	}
	return out
}

// EntityNames returns distinct entity names in order of first appearance.
func (t *Table) EntityNames() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, r := range t.rows {
		if !seen[r.Entity] {
			seen[r.Entity] = true
			names = append(names, r.Entity)
		}
	}
	return names
}

// FilterByEntityNames returns a table containing only rows for the given entities.
func (t *Table) FilterByEntityNames(names []string) *Table {
	if t == nil {
		return New(nil, nil)
	}
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	rows := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if keep[r.Entity] {
			rows = append(rows, r)
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// TimeRange returns the smallest and largest time among rows with at least one
// value in the given columns. ok is false when no such row exists.
func (t *Table) TimeRange(slugs ...string) (min, max int, ok bool) {
	for _, r := range t.Rows() {
		if !r.hasAny(slugs) {
			continue
		}
		if !ok || r.Time < min {
			min = r.Time
		}
		if !ok || r.Time > max {
			max = r.Time
		}
		ok = true
	}
	return min, max, ok
}

func (r Row) hasAny(slugs []string) bool {
	for _, s := range slugs {
		if _, ok := r.Values[s]; ok {
			return true
		}
	}
	return false
}
