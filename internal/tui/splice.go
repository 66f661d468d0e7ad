package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// spliceOverlay draws overlay lines over view starting at (x, y). Escape
// sequences on both sides of the overlay are kept intact.
func spliceOverlay(view string, overlayLines []string, x, y int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(viewLines) {
			continue
		}

		under := viewLines[row]
		underWidth := ansi.StringWidth(under)

		var b strings.Builder
		if x > 0 {
			prefix := ansi.Truncate(under, x, "")
			b.WriteString(prefix)
			if pad := x - ansi.StringWidth(prefix); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString("\x1b[0m")
		b.WriteString(line)
		b.WriteString("\x1b[0m")

		if end := x + ansi.StringWidth(line); end < underWidth {
			b.WriteString(ansi.TruncateLeft(under, end, ""))
		}
		viewLines[row] = b.String()
	}
	return strings.Join(viewLines, "\n")
}

// fit pads or cuts s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}
