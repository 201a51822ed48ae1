package table

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// stripANSI removes all ANSI CSI sequences from s.
func stripANSI(s string) string {
	var sb strings.Builder
	inEsc := false
	for _, r := range s {
		if inEsc {
			if r == 'm' {
				inEsc = false
			}
			continue
		}
		if r == '\x1b' {
			inEsc = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// containsVisible checks that the rendered output contains sub somewhere
// in visible text (ANSI stripped).
func containsVisible(rendered, sub string) bool {
	return strings.Contains(stripANSI(rendered), sub)
}

// headerX finds a view x coordinate inside the named column's heading.
func headerX(t *testing.T, m *Model, col string) int {
	t.Helper()
	for x := 0; x < m.width; x++ {
		if c, ok := m.columnAt(x); ok && c == col {
			return x
		}
	}
	t.Fatalf("column %q not visible", col)
	return -1
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func wheel(b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionPress, Button: b}
}

// ---------------------------------------------------------------------------
// rendering
// ---------------------------------------------------------------------------

func TestViewShowsHeadingsAndCells(t *testing.T) {
	m := newGrid(t, scoreCols(), [][]string{
		{"Bob", "5"}, {"Amy", "12"},
	})
	out := m.View()
	for _, want := range []string{"Name", "Score", "Bob", "Amy", "12"} {
		if !containsVisible(out, want) {
			t.Errorf("view does not show %q", want)
		}
	}
}

func TestViewSanitizesCells(t *testing.T) {
	m := newGrid(t, []Column{{Name: "Note", Kind: Text}},
		[][]string{{"line one\nline two"}})
	out := m.View()
	if !containsVisible(out, "line one↵line two") {
		t.Error("embedded newline was not sanitized")
	}
}

func TestViewClipsOverwideColumn(t *testing.T) {
	long := strings.Repeat("x", 100)
	m, err := New([]Column{{Name: "Wide", Kind: Text}}, [][]string{{long}}, WithSize(20, 10))
	if err != nil {
		t.Fatal(err)
	}
	out := stripANSI(m.View())
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 20 {
			t.Fatalf("line wider than view: %q", line)
		}
	}
	if !containsVisible(m.View(), "...") {
		t.Error("clipped cell has no ellipsis")
	}
}

func TestFooterScrollRange(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"r", "1"}
	}
	m, err := New(scoreCols(), rows, WithSize(40, 8))
	if err != nil {
		t.Fatal(err)
	}
	if !containsVisible(m.View(), "[1-5 of 20]") {
		t.Errorf("footer missing scroll range:\n%s", stripANSI(m.View()))
	}
}

// ---------------------------------------------------------------------------
// mouse
// ---------------------------------------------------------------------------

func TestHeaderClickSorts(t *testing.T) {
	m := newGrid(t, scoreCols(), [][]string{
		{"Bob", "5"}, {"Amy", "12"},
	})

	m, cmd := m.Update(leftClick(headerX(t, m, "Score"), 0))
	if cmd != nil {
		t.Fatalf("unexpected command: %v", cmd())
	}
	if got := cellsAt(m, "Name"); !equalStrings(got, []string{"Amy", "Bob"}) {
		t.Fatalf("order after header click = %v", got)
	}
	if !containsVisible(m.View(), "▼") {
		t.Error("no descending indicator on sorted heading")
	}

	m, _ = m.Update(leftClick(headerX(t, m, "Score"), 0))
	if got := cellsAt(m, "Name"); !equalStrings(got, []string{"Bob", "Amy"}) {
		t.Fatalf("order after second click = %v", got)
	}
	if !containsVisible(m.View(), "▲") {
		t.Error("no ascending indicator on sorted heading")
	}
}

func TestClickBelowHeaderDoesNotSort(t *testing.T) {
	m := newGrid(t, scoreCols(), [][]string{
		{"Bob", "5"}, {"Amy", "12"},
	})
	m, _ = m.Update(leftClick(0, headerLines))
	if got := cellsAt(m, "Name"); !equalStrings(got, []string{"Bob", "Amy"}) {
		t.Errorf("row click reordered rows: %v", got)
	}
}

func TestSortErrorSurfacesAsMessage(t *testing.T) {
	m := newGrid(t, scoreCols(), [][]string{
		{"Amy", "twelve"},
	})
	m, cmd := m.Update(leftClick(headerX(t, m, "Score"), 0))
	if cmd == nil {
		t.Fatal("expected a command carrying the sort error")
	}
	msg, ok := cmd().(SortErrorMsg)
	if !ok {
		t.Fatalf("command produced %T, want SortErrorMsg", cmd())
	}
	if msg.Column != "Score" || msg.Err == nil {
		t.Errorf("incomplete error message: %+v", msg)
	}
}

func TestMotionHighlightsRow(t *testing.T) {
	m := newGrid(t, scoreCols(), [][]string{
		{"a", "1"}, {"b", "2"},
	})
	ids := m.Rows()

	m, _ = m.Update(motion(0, headerLines+1))
	if m.RowTag(ids[1]) != TagHover {
		t.Fatalf("row 1 tag = %v, want hover", m.RowTag(ids[1]))
	}
	m, _ = m.Update(motion(0, 0))
	if m.RowTag(ids[1]) != TagEven {
		t.Errorf("row 1 tag = %v after pointer left, want even", m.RowTag(ids[1]))
	}
}

func TestWheelScrolls(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"r", "1"}
	}
	m, err := New(scoreCols(), rows, WithSize(40, 8))
	if err != nil {
		t.Fatal(err)
	}
	ids := m.Rows()

	m, _ = m.Update(wheel(tea.MouseButtonWheelUp))
	if _, y := m.ScrollOffset(); y != 0 {
		t.Errorf("scrolled above the top: y=%d", y)
	}

	m, _ = m.Update(wheel(tea.MouseButtonWheelDown))
	if _, y := m.ScrollOffset(); y != 1 {
		t.Fatalf("wheel down: y=%d, want 1", y)
	}

	// Hit-testing follows the scroll: the first data line is now row 1.
	if id, ok := m.RowAt(headerLines); !ok || id != ids[1] {
		t.Errorf("RowAt after scroll = %v, want row 1", id)
	}

	for i := 0; i < 100; i++ {
		m, _ = m.Update(wheel(tea.MouseButtonWheelDown))
	}
	if _, y := m.ScrollOffset(); y != 20-m.visibleRows() {
		t.Errorf("scrolled past the bottom: y=%d", y)
	}
}

// ---------------------------------------------------------------------------
// hit-testing
// ---------------------------------------------------------------------------

func TestRowAtBounds(t *testing.T) {
	m := newGrid(t, scoreCols(), [][]string{
		{"a", "1"}, {"b", "2"},
	})
	if _, ok := m.RowAt(0); ok {
		t.Error("heading line hit a row")
	}
	if _, ok := m.RowAt(1); ok {
		t.Error("separator line hit a row")
	}
	if _, ok := m.RowAt(headerLines + 5); ok {
		t.Error("empty space below rows hit a row")
	}
	if id, ok := m.RowAt(headerLines); !ok || id != m.Rows()[0] {
		t.Error("first data line did not hit the first row")
	}
}

func TestColumnAtSeparatorMisses(t *testing.T) {
	m := newGrid(t, scoreCols(), [][]string{{"Bob", "5"}})
	sepX := m.ColumnWidth("Name") + 1 // middle of " │ "
	if col, ok := m.columnAt(sepX); ok {
		t.Errorf("separator hit column %q", col)
	}
}

// ---------------------------------------------------------------------------
// plain output
// ---------------------------------------------------------------------------

func TestPlainOutput(t *testing.T) {
	out := Plain([]string{"Name", "Score"}, [][]string{
		{"Bob", "5"}, {"Amy", "12"},
	})
	for _, want := range []string{"Name", "Score", "Bob", "Amy", "(2 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("plain output missing %q:\n%s", want, out)
		}
	}
}

func TestPlainNoColumns(t *testing.T) {
	if got := Plain(nil, nil); got != "(0 rows)\n" {
		t.Errorf("Plain(nil) = %q", got)
	}
}
