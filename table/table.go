// Package table provides a sortable, scrollable data table widget. The
// Table view-model owns sorting, alternating row shading and hover
// highlighting, and drives any host through the narrow Grid interface.
// Model is the bundled Bubble Tea host: it renders the grid with lipgloss
// and translates mouse events (header click, pointer motion, wheel) into
// Table operations.
package table

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind declares how a column's values compare during a sort.
type Kind int

const (
	// Text compares cell values lexicographically.
	Text Kind = iota
	// Numeric parses every cell value as a float before comparing. A value
	// that fails to parse aborts the sort.
	Numeric
)

// Column describes one table column. The column order given at
// construction is the display order and never changes.
type Column struct {
	Name string
	Kind Kind
}

// Table coordinates a Grid: it performs the initial data insertion, sorts
// the rows when a header is clicked, and moves the hover highlight with
// the pointer. All methods must be called from the host's UI event loop.
type Table struct {
	grid Grid
	cols []Column

	// Direction of the next sort, on any column. The first click sorts
	// descending; every sort flips it.
	descending bool

	// Hover state: either unfocused, or focused on one row whose tag prior
	// to highlighting is saved for restore.
	focused  bool
	focus    RowID
	savedTag Tag

	sorted   bool
	sortCol  string
	sortDesc bool
}

// Bind builds a Table over grid, registering the header click handler,
// sizing every column to the wider of its heading and its widest cell, and
// inserting all rows in order with alternating shade tags. Each row must
// have exactly one cell per column.
func Bind(grid Grid, cols []Column, rows [][]string) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("table: no columns")
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("table: row %d has %d cells, want %d", i, len(row), len(cols))
		}
	}

	t := &Table{grid: grid, cols: cols, descending: true}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	grid.SetColumns(names)
	grid.OnHeaderClick(t.SortBy)

	for _, c := range cols {
		grid.SetColumnWidth(c.Name, grid.MeasureText(c.Name))
	}
	for i, row := range rows {
		grid.InsertRow(row, ShadeFor(i))
		for j, val := range row {
			name := cols[j].Name
			if w := grid.MeasureText(val); w > grid.ColumnWidth(name) {
				grid.SetColumnWidth(name, w)
			}
		}
	}
	return t, nil
}

// SortBy reorders the rows by the named column, descending on the first
// call and alternating on every call after that. Rows are moved in place
// (stable, so ties keep their relative order) and shade tags are
// re-derived from the new positions, replacing any hover tag. Sorting an
// empty table is a no-op apart from flipping the direction. A Numeric
// column with an unparseable value aborts with an error before any row
// moves.
func (t *Table) SortBy(name string) error {
	col, ok := t.column(name)
	if !ok {
		return fmt.Errorf("table: unknown column %q", name)
	}

	ids := t.grid.Rows()
	keys := make([]sortKey, len(ids))
	for i, id := range ids {
		val := t.grid.CellValue(id, name)
		k := sortKey{id: id, text: val}
		if col.Kind == Numeric {
			n, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("table: numeric column %q has value %q: %w", name, val, err)
			}
			k.num = n
		}
		keys[i] = k
	}

	desc := t.descending
	sort.SliceStable(keys, func(i, j int) bool {
		if col.Kind == Numeric {
			if desc {
				return keys[i].num > keys[j].num
			}
			return keys[i].num < keys[j].num
		}
		if desc {
			return keys[i].text > keys[j].text
		}
		return keys[i].text < keys[j].text
	})

	for i, k := range keys {
		t.grid.MoveRow(k.id, i)
		t.grid.SetRowTag(k.id, ShadeFor(i))
	}

	// Re-tagging wiped any hover highlight, so forget the saved focus.
	t.focused = false
	t.savedTag = TagNone

	t.sorted, t.sortCol, t.sortDesc = true, name, desc
	t.descending = !t.descending
	return nil
}

type sortKey struct {
	id   RowID
	text string
	num  float64
}

// PointerMoved updates the hover highlight for a pointer at vertical view
// coordinate y. Moving within the focused row is a no-op. Moving to a
// different row restores the previous row's saved tag, saves the new
// row's current tag and overwrites it with the hover tag. Moving off all
// rows restores the saved tag and clears the focus.
func (t *Table) PointerMoved(y int) {
	id, ok := t.grid.RowAt(y)
	if ok && t.focused && id == t.focus {
		return
	}
	if !ok && !t.focused {
		return
	}
	if t.focused {
		t.grid.SetRowTag(t.focus, t.savedTag)
	}
	if ok {
		t.savedTag = t.grid.RowTag(id)
		t.grid.SetRowTag(id, TagHover)
		t.focus = id
		t.focused = true
	} else {
		t.focused = false
		t.savedTag = TagNone
	}
}

// LastSort reports the column and direction of the most recent sort.
// ok is false before the first sort.
func (t *Table) LastSort() (col string, descending, ok bool) {
	return t.sortCol, t.sortDesc, t.sorted
}

func (t *Table) column(name string) (Column, bool) {
	for _, c := range t.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
