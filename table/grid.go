package table

// Tag identifies the visual treatment of a row. A row carries exactly one
// tag at a time: the shade derived from its display position, or the hover
// tag while the pointer rests on it.
type Tag int

const (
	TagNone Tag = iota
	TagOdd
	TagEven
	TagHover
)

// ShadeFor returns the shade tag for a row at display position pos.
// Position 0 is odd and shades alternate from there.
func ShadeFor(pos int) Tag {
	if pos%2 == 0 {
		return TagOdd
	}
	return TagEven
}

// RowID is an opaque handle assigned by a Grid when a row is inserted.
// It stays attached to the row across reordering.
type RowID int

// Grid is the widget surface a Table drives. It is the full set of
// capabilities the view-model needs from a host toolkit: heading
// registration with a click handler, row insertion with tag-based styling,
// row reordering by position, scroll offsets, hit-testing a vertical view
// coordinate to a row, and text-width measurement in the host's font.
// Model implements Grid for terminal hosts; any other implementation with
// the same semantics can host a Table.
type Grid interface {
	// SetColumns fixes the ordered column names. Called once, before any
	// row is inserted.
	SetColumns(names []string)

	// OnHeaderClick registers the single handler invoked with the name of
	// the clicked column. An error returned by the handler is surfaced
	// through the host's own error reporting.
	OnHeaderClick(fn func(col string) error)

	// InsertRow appends a row with the given cell values and tag, returning
	// its handle.
	InsertRow(cells []string, tag Tag) RowID

	// MoveRow moves an existing row to display position pos, shifting the
	// rows in between. Other rows keep their relative order.
	MoveRow(id RowID, pos int)

	RowTag(id RowID) Tag
	SetRowTag(id RowID, tag Tag)

	// CellValue returns the row's value under the named column.
	CellValue(id RowID, col string) string

	// Rows returns all row handles in current display order.
	Rows() []RowID

	// RowAt hit-tests a vertical view coordinate. ok is false when the
	// coordinate lands outside every row.
	RowAt(y int) (id RowID, ok bool)

	ColumnWidth(col string) int
	SetColumnWidth(col string, width int)

	// MeasureText returns the rendered width of s in the grid's body font.
	MeasureText(s string) int

	ScrollOffset() (x, y int)
	SetScrollOffset(x, y int)
}
