package domain

import "strings"

// ResultSet is the ordered set of rows returned by one query. Column order
// and row order are kept exactly as the data source returned them. Values are
// one of string, int64, float64, bool, time.Time or nil.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// IsEmpty reports whether the query returned zero rows.
func (rs ResultSet) IsEmpty() bool { return len(rs.Rows) == 0 }

// Len returns the number of rows.
func (rs ResultSet) Len() int { return len(rs.Rows) }

// ColumnIndex resolves a column name. An exact match wins; otherwise the
// first case-insensitive match is used. Returns -1 when absent.
func (rs ResultSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	for i, c := range rs.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Row returns a view over the i-th row.
func (rs ResultSet) Row(i int) Row {
	return Row{columns: rs.Columns, values: rs.Rows[i]}
}

// Head returns a result set holding only the first row.
func (rs ResultSet) Head() ResultSet {
	if rs.IsEmpty() {
		return ResultSet{Columns: rs.Columns}
	}
	return ResultSet{Columns: rs.Columns, Rows: rs.Rows[:1]}
}

// Row is a read-only view of one record.
type Row struct {
	columns []string
	values  []any
}

// Get returns the value of the named column using ResultSet.ColumnIndex
// matching rules.
func (r Row) Get(column string) (any, bool) {
	idx := ResultSet{Columns: r.columns}.ColumnIndex(column)
	if idx < 0 || idx >= len(r.values) {
		return nil, false
	}
	return r.values[idx], true
}

func (r Row) Columns() []string { return r.columns }

func (r Row) Values() []any { return r.values }
