package table

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

const (
	colSep      = " │ "
	colSepWidth = 3

	// Lines above the first data row: headings and the separator rule.
	headerLines = 2
	footerLines = 1
)

// SortErrorMsg is emitted when a header click's sort fails (a Numeric
// column held an unparseable value). The host decides how to surface it;
// the widget neither logs nor retries.
type SortErrorMsg struct {
	Column string
	Err    error
}

type gridRow struct {
	id    RowID
	cells []string
	tag   Tag
}

// Model is the terminal host for a Table: a Bubble Tea component that
// implements Grid, renders the headings, shaded rows and scroll
// indicators, and maps mouse input to sort, hover and scroll operations.
type Model struct {
	table  *Table
	styles Styles

	columns   []string
	colIndex  map[string]int
	colWidths []int

	rows   []*gridRow
	byID   map[RowID]*gridRow
	nextID RowID

	onHeaderClick func(col string) error

	width   int
	height  int
	scrollX int // first visible column
	scrollY int // first visible row
}

// Option configures a Model before the initial data insertion.
type Option func(*Model)

// WithStyles overrides the default style set.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the initial widget size. The widget otherwise starts at
// 80x24 and follows tea.WindowSizeMsg.
func WithSize(width, height int) Option {
	return func(m *Model) { m.width, m.height = width, height }
}

// New constructs the widget: it builds the grid, wires the header click
// and pointer motion handling, and inserts all rows with alternating
// shading. Each row must have exactly one cell per column.
func New(cols []Column, rows [][]string, opts ...Option) (*Model, error) {
	m := &Model{
		styles:   DefaultStyles(),
		colIndex: make(map[string]int),
		byID:     make(map[RowID]*gridRow),
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(m)
	}
	t, err := Bind(m, cols, rows)
	if err != nil {
		return nil, err
	}
	m.table = t
	return m, nil
}

// Table returns the view-model driving this widget.
func (m *Model) Table() *Table { return m.table }

// SetSize resizes the widget and clamps the scroll offsets.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.SetScrollOffset(m.scrollX, m.scrollY)
}

// Init satisfies tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles window sizing and mouse input. Everything else is the
// host's business.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) (*Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		x, y := m.ScrollOffset()
		m.SetScrollOffset(x, y-1)

	case msg.Button == tea.MouseButtonWheelDown:
		x, y := m.ScrollOffset()
		m.SetScrollOffset(x, y+1)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y != 0 || m.onHeaderClick == nil {
			return m, nil
		}
		col, ok := m.columnAt(msg.X)
		if !ok {
			return m, nil
		}
		if err := m.onHeaderClick(col); err != nil {
			return m, func() tea.Msg { return SortErrorMsg{Column: col, Err: err} }
		}

	case msg.Action == tea.MouseActionMotion:
		if m.table != nil {
			m.table.PointerMoved(msg.Y)
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Grid implementation
// ---------------------------------------------------------------------------

func (m *Model) SetColumns(names []string) {
	m.columns = names
	m.colWidths = make([]int, len(names))
	m.colIndex = make(map[string]int, len(names))
	for i, n := range names {
		m.colIndex[n] = i
	}
}

func (m *Model) OnHeaderClick(fn func(col string) error) {
	m.onHeaderClick = fn
}

func (m *Model) InsertRow(cells []string, tag Tag) RowID {
	m.nextID++
	r := &gridRow{id: m.nextID, cells: append([]string(nil), cells...), tag: tag}
	m.rows = append(m.rows, r)
	m.byID[r.id] = r
	return r.id
}

func (m *Model) MoveRow(id RowID, pos int) {
	r, ok := m.byID[id]
	if !ok {
		return
	}
	for i, cur := range m.rows {
		if cur.id == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			break
		}
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(m.rows) {
		pos = len(m.rows)
	}
	m.rows = append(m.rows[:pos], append([]*gridRow{r}, m.rows[pos:]...)...)
}

func (m *Model) RowTag(id RowID) Tag {
	if r, ok := m.byID[id]; ok {
		return r.tag
	}
	return TagNone
}

func (m *Model) SetRowTag(id RowID, tag Tag) {
	if r, ok := m.byID[id]; ok {
		r.tag = tag
	}
}

func (m *Model) CellValue(id RowID, col string) string {
	r, ok := m.byID[id]
	if !ok {
		return ""
	}
	ci, ok := m.colIndex[col]
	if !ok || ci >= len(r.cells) {
		return ""
	}
	return r.cells[ci]
}

func (m *Model) Rows() []RowID {
	ids := make([]RowID, len(m.rows))
	for i, r := range m.rows {
		ids[i] = r.id
	}
	return ids
}

// RowAt resolves a vertical view coordinate to the row rendered there.
func (m *Model) RowAt(y int) (RowID, bool) {
	if y < headerLines || y >= headerLines+m.visibleRows() {
		return 0, false
	}
	idx := m.scrollY + y - headerLines
	if idx >= len(m.rows) {
		return 0, false
	}
	return m.rows[idx].id, true
}

func (m *Model) ColumnWidth(col string) int {
	if ci, ok := m.colIndex[col]; ok {
		return m.colWidths[ci]
	}
	return 0
}

func (m *Model) SetColumnWidth(col string, width int) {
	if ci, ok := m.colIndex[col]; ok {
		m.colWidths[ci] = width
	}
}

// MeasureText measures the width s renders at, after cell sanitization.
func (m *Model) MeasureText(s string) int {
	return runewidth.StringWidth(sanitizeCell(s))
}

func (m *Model) ScrollOffset() (x, y int) {
	return m.scrollX, m.scrollY
}

func (m *Model) SetScrollOffset(x, y int) {
	maxX := len(m.columns) - 1
	if maxX < 0 {
		maxX = 0
	}
	if x < 0 {
		x = 0
	} else if x > maxX {
		x = maxX
	}
	maxY := len(m.rows) - m.visibleRows()
	if maxY < 0 {
		maxY = 0
	}
	if y < 0 {
		y = 0
	} else if y > maxY {
		y = maxY
	}
	m.scrollX, m.scrollY = x, y
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

func (m *Model) visibleRows() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

// visible returns the indices of the columns currently in view and the
// width each renders at. When a single column alone exceeds the viewport
// it is clipped rather than dropped.
func (m *Model) visible() (cols, widths []int) {
	avail := m.width - 2 // gutter + scrollbar
	if avail < 1 {
		avail = 1
	}
	used := 0
	for ci := m.scrollX; ci < len(m.columns); ci++ {
		w := m.colWidths[ci]
		if w < 1 {
			w = 1
		}
		need := w
		if len(cols) > 0 {
			need += colSepWidth
		}
		if used+need > avail {
			if len(cols) == 0 {
				cols = append(cols, ci)
				widths = append(widths, avail)
			}
			break
		}
		cols = append(cols, ci)
		widths = append(widths, w)
		used += need
	}
	return cols, widths
}

// columnAt resolves a horizontal view coordinate to the column rendered
// there. Coordinates over the separators between columns miss.
func (m *Model) columnAt(x int) (string, bool) {
	cols, widths := m.visible()
	pos := 0
	for i, ci := range cols {
		if i > 0 {
			pos += colSepWidth
		}
		if x >= pos && x < pos+widths[i] {
			return m.columns[ci], true
		}
		pos += widths[i]
	}
	return "", false
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the headings, the visible window of rows with their tag
// styles, a vertical scrollbar track and a footer with scroll indicators.
func (m *Model) View() string {
	if len(m.columns) == 0 {
		return ""
	}

	var b strings.Builder
	cols, widths := m.visible()

	sortCol, sortDesc, sorted := "", false, false
	if m.table != nil {
		sortCol, sortDesc, sorted = m.table.LastSort()
	}

	parts := make([]string, 0, len(cols))
	for i, ci := range cols {
		title := m.columns[ci]
		if sorted && title == sortCol && widths[i] > 2 {
			arrow := "▲"
			if sortDesc {
				arrow = "▼"
			}
			title = truncate(title, widths[i]-2) + " " + arrow
		}
		parts = append(parts, m.styles.Header.Render(padCell(title, widths[i])))
	}
	b.WriteString(strings.Join(parts, colSep))
	b.WriteString("\n")

	parts = parts[:0]
	for i := range cols {
		parts = append(parts, strings.Repeat("─", widths[i]))
	}
	b.WriteString(m.styles.Separator.Render(strings.Join(parts, "─┼─")))
	b.WriteString("\n")

	vis := m.visibleRows()
	end := m.scrollY + vis
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for ri := m.scrollY; ri < end; ri++ {
		row := m.rows[ri]
		style := m.styles.styleFor(row.tag)
		parts = parts[:0]
		for i, ci := range cols {
			var val string
			if ci < len(row.cells) {
				val = row.cells[ci]
			}
			parts = append(parts, style.Render(padCell(sanitizeCell(val), widths[i])))
		}
		b.WriteString(strings.Join(parts, colSep))
		b.WriteString(" ")
		b.WriteString(m.styles.Footer.Render(m.scrollbarRune(ri - m.scrollY)))
		b.WriteString("\n")
	}
	for i := end - m.scrollY; i < vis; i++ {
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render(m.footer(cols, end)))
	return b.String()
}

func (m *Model) scrollbarRune(line int) string {
	n, vis := len(m.rows), m.visibleRows()
	if n <= vis {
		return " "
	}
	thumb := vis * vis / n
	if thumb < 1 {
		thumb = 1
	}
	maxStart := vis - thumb
	maxScroll := n - vis
	start := 0
	if maxScroll > 0 {
		start = m.scrollY * maxStart / maxScroll
	}
	if line >= start && line < start+thumb {
		return "█"
	}
	return "░"
}

func (m *Model) footer(cols []int, end int) string {
	var parts []string
	if m.scrollX > 0 {
		parts = append(parts, "◀")
	}
	if len(cols) > 0 && cols[len(cols)-1] < len(m.columns)-1 {
		parts = append(parts, "▶")
	}
	switch {
	case len(m.rows) == 0:
		parts = append(parts, "(0 rows)")
	case len(m.rows) > m.visibleRows():
		parts = append(parts, fmt.Sprintf("[%d-%d of %d]", m.scrollY+1, end, len(m.rows)))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, w int) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}
	if w <= 3 {
		return runewidth.Truncate(s, w, "")
	}
	return runewidth.Truncate(s, w, "...")
}

func padCell(s string, w int) string {
	return runewidth.FillRight(truncate(s, w), w)
}

func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "↵")
	s = strings.ReplaceAll(s, "\n", "↵")
	s = strings.ReplaceAll(s, "\r", "↵")
	return strings.ReplaceAll(s, "\t", " ")
}
