package table

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Plain renders columns and rows as an aligned, style-free text table for
// non-TTY output. Content is never truncated.
func Plain(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	widths := make([]int, len(columns))
	for i, name := range columns {
		widths[i] = runewidth.StringWidth(name)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(sanitizeCell(val)); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var b strings.Builder
	for i, name := range columns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(runewidth.FillRight(name, widths[i]))
	}
	b.WriteString("\n")

	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("─", w))
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, val := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(runewidth.FillRight(sanitizeCell(val), widths[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n(%d rows)\n", len(rows)))
	return b.String()
}
