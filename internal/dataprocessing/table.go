package dataprocessing

import (
	"sort"
	"time"
)

// DateColumn is the name of the canonical date column in output tables
const DateColumn = "date"

// Point is one canonical observation: a month, a variable and its value
type Point struct {
	Date     time.Time
	Variable string
	Value    Value
}

// Column describes a variable and where it first appeared
type Column struct {
	Name     string
	Source   string
	Position int
}

// columnLess orders columns by source file name, then by position in that file
func columnLess(a, b Column) bool {
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	return a.Name < b.Name
}

// Frame is one source's contribution keyed by canonical date
type Frame struct {
	Source  string
	Columns []Column
	// Undated counts rows whose date cell was blank
	Undated int

	rows map[time.Time]map[string]Value
}

// NewFrame creates an empty frame for a source
func NewFrame(source string) *Frame {
	return &Frame{
		Source: source,
		rows:   make(map[time.Time]map[string]Value),
	}
}

// AddColumn declares a value column; repeated names keep their first position
func (f *Frame) AddColumn(name string) {
	for _, col := range f.Columns {
		if col.Name == name {
			return
		}
	}
	f.Columns = append(f.Columns, Column{Name: name, Source: f.Source, Position: len(f.Columns)})
}

// Touch makes sure a row exists for date, even when all its values are missing
func (f *Frame) Touch(date time.Time) map[string]Value {
	row, ok := f.rows[date]
	if !ok {
		row = make(map[string]Value)
		f.rows[date] = row
	}
	return row
}

// Set records a value. Missing values only create the row. A second known value
// for the same date and variable must agree with the first.
func (f *Frame) Set(date time.Time, variable string, v Value) error {
	row := f.Touch(date)
	if !v.Valid {
		return nil
	}
	if existing, ok := row[variable]; ok && existing.Float != v.Float {
		return &DuplicateDateError{Source: f.Source, Variable: variable, Date: date}
	}
	row[variable] = v
	return nil
}

// Len returns the number of dated rows
func (f *Frame) Len() int {
	return len(f.rows)
}

// Value returns the value of variable on date
func (f *Frame) Value(date time.Time, variable string) Value {
	return f.rows[date][variable]
}

// Dates returns the frame's dates in ascending order
func (f *Frame) Dates() []time.Time {
	return sortedDates(f.rows)
}

// Points lists every known value ordered by date, then column position
func (f *Frame) Points() []Point {
	var points []Point
	for _, date := range f.Dates() {
		for _, col := range f.Columns {
			if v, ok := f.rows[date][col.Name]; ok {
				points = append(points, Point{Date: date, Variable: col.Name, Value: v})
			}
		}
	}
	return points
}

// Table is the running canonical table of a group: at most one row per date,
// columns are the union of every merged variable.
type Table struct {
	Group Group

	columns map[string]Column
	rows    map[time.Time]map[string]Value
	undated int
}

// NewTable creates an empty canonical table
func NewTable(group Group) *Table {
	return &Table{
		Group:   group,
		columns: make(map[string]Column),
		rows:    make(map[time.Time]map[string]Value),
	}
}

// Columns returns the table's columns in output order
func (t *Table) Columns() []Column {
	cols := make([]Column, 0, len(t.columns))
	for _, col := range t.columns {
		cols = append(cols, col)
	}
	sort.Slice(cols, func(i, j int) bool { return columnLess(cols[i], cols[j]) })
	return cols
}

// Len returns the number of dated rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Undated returns how many rows without a date were carried in from sources
func (t *Table) Undated() int {
	return t.undated
}

// Value returns the value of variable on date
func (t *Table) Value(date time.Time, variable string) Value {
	return t.rows[date][variable]
}

// Row is one finalized output row; Values line up with FinalTable.Columns
type Row struct {
	Date   time.Time
	Values []Value
}

// FinalTable is a canonical table sorted by date and trimmed of undated rows
type FinalTable struct {
	Group   Group
	Columns []Column
	Rows    []Row
	// Trimmed counts the undated rows dropped while finalizing
	Trimmed int
}

// Finalize sorts the accumulated table by date and drops rows without a date
func Finalize(t *Table) *FinalTable {
	cols := t.Columns()
	dates := sortedDates(t.rows)

	rows := make([]Row, 0, len(dates))
	for _, date := range dates {
		values := make([]Value, len(cols))
		for i, col := range cols {
			values[i] = t.rows[date][col.Name]
		}
		rows = append(rows, Row{Date: date, Values: values})
	}

	return &FinalTable{
		Group:   t.Group,
		Columns: cols,
		Rows:    rows,
		Trimmed: t.undated,
	}
}

// Header returns the output header: the date column then every variable
func (ft *FinalTable) Header() []string {
	header := make([]string, 0, len(ft.Columns)+1)
	header = append(header, DateColumn)
	for _, col := range ft.Columns {
		header = append(header, col.Name)
	}
	return header
}

// Records renders every row as strings in header order
func (ft *FinalTable) Records() [][]string {
	records := make([][]string, 0, len(ft.Rows))
	for _, row := range ft.Rows {
		rec := make([]string, 0, len(row.Values)+1)
		rec = append(rec, row.Date.Format(DateLayout))
		for _, v := range row.Values {
			rec = append(rec, v.String())
		}
		records = append(records, rec)
	}
	return records
}

// ColumnIndex returns the position of a variable in Columns, or -1
func (ft *FinalTable) ColumnIndex(name string) int {
	for i, col := range ft.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Lookup returns the value of variable on date and whether that cell exists
func (ft *FinalTable) Lookup(date time.Time, variable string) (Value, bool) {
	idx := ft.ColumnIndex(variable)
	if idx < 0 {
		return Value{}, false
	}
	i := sort.Search(len(ft.Rows), func(i int) bool { return !ft.Rows[i].Date.Before(date) })
	if i == len(ft.Rows) || !ft.Rows[i].Date.Equal(date) {
		return Value{}, false
	}
	return ft.Rows[i].Values[idx], true
}

func sortedDates(rows map[time.Time]map[string]Value) []time.Time {
	dates := make([]time.Time, 0, len(rows))
	for date := range rows {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
