package table

import "github.com/charmbracelet/lipgloss"

// Styles configures every visual role the widget uses. Start from
// DefaultStyles and override what you need; all fields are plain lipgloss
// styles.
type Styles struct {
	Header    lipgloss.Style // column headings
	Separator lipgloss.Style // line under the headings, column rules
	OddRow    lipgloss.Style // rows at even display positions (0, 2, ...)
	EvenRow   lipgloss.Style // rows at odd display positions
	Hover     lipgloss.Style // the row under the pointer
	Footer    lipgloss.Style // scroll indicators
}

// DefaultStyles returns the default palette: bold headings, a faint shade
// on every second row and a pale blue hover highlight.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ecca3")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		OddRow:    lipgloss.NewStyle(),
		EvenRow:   lipgloss.NewStyle().Background(lipgloss.Color("#1c2128")),
		Hover: lipgloss.NewStyle().
			Background(lipgloss.Color("#adccff")).
			Foreground(lipgloss.Color("#000000")),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
	}
}

// styleFor maps a row tag to its style.
func (s Styles) styleFor(tag Tag) lipgloss.Style {
	switch tag {
	case TagOdd:
		return s.OddRow
	case TagEven:
		return s.EvenRow
	case TagHover:
		return s.Hover
	}
	return lipgloss.NewStyle()
}
