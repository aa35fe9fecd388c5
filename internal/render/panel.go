package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/faultline/internal/trace"
)

// Panel renders a bordered, titled block sized to the context width.
// The title is spliced into the top border and the subtitle into the
// bottom border, right-aligned.
func (c *Context) Panel(title, subtitle, body string) string {
	inner := lipgloss.NewStyle().
		Width(c.Width - 4).
		Padding(1, 2, 0, 2). // asymmetric: headroom above, none below
		Render(body)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(c.Width - 2).
		Render(inner)

	if title != "" {
		box = spliceIntoBorder(box, c.Theme.Title.Render(" "+title+" "), lipgloss.Width(title)+2, 2, true)
	}
	if subtitle != "" {
		box = spliceIntoBorder(box, c.Theme.Subtitle.Render(" "+subtitle+" "), lipgloss.Width(subtitle)+2, 2, false)
	}
	return box
}

// spliceIntoBorder overwrites part of the first (top) or last (bottom)
// border line with a styled label. plainWidth is the label's unstyled display
// width; offset is measured from the left (top) or right (bottom) corner.
func spliceIntoBorder(box, label string, plainWidth, offset int, top bool) string {
	lines := strings.Split(box, "\n")
	if len(lines) < 2 {
		return box
	}
	idx := 0
	if !top {
		idx = len(lines) - 1
	}
	line := []rune(lines[idx])
	if len(line) < offset+plainWidth+1 {
		return box
	}
	var start int
	if top {
		start = offset
	} else {
		start = len(line) - offset - plainWidth
	}
	lines[idx] = string(line[:start]) + label + string(line[start+plainWidth:])
	return strings.Join(lines, "\n")
}

// Rule renders a dim horizontal rule with a styled label, e.g.
// "── ValueOutOfRange ─────".
func (c *Context) Rule(label string) string {
	prefix := c.Theme.Dim.Render("── ")
	styled := c.Theme.Error.Render(label)
	rest := c.Width - lipgloss.Width(prefix) - lipgloss.Width(label) - 1
	if rest < 0 {
		rest = 0
	}
	return prefix + styled + " " + c.Theme.Dim.Render(strings.Repeat("─", rest))
}

// Separator renders a dim full-width horizontal line.
func (c *Context) Separator() string {
	return c.Theme.Dim.Render(strings.Repeat("─", c.Width))
}

// FrameList renders frames as numbered rows, one per line, with notes for
// elided and hidden frames.
//
//	 1  main.explode
//	    main.go:42
func (c *Context) FrameList(frames []trace.Frame, elided, hidden int) string {
	var b strings.Builder
	numWidth := len(fmt.Sprintf("%d", len(frames)))
	if numWidth < 2 {
		numWidth = 2
	}

	for i, f := range frames {
		num := fmt.Sprintf("%*d", numWidth, i+1)
		fn := f.Function
		if r := []rune(fn); len(r) > c.ModuleLine {
			fn = string(r[:c.ModuleLine-1]) + "…"
		}
		b.WriteString(c.Theme.Dim.Render(num))
		b.WriteString("  ")
		b.WriteString(c.Theme.Function.Render(fn))
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", numWidth+2))
		b.WriteString(c.Theme.Location.Render(fmt.Sprintf("%s:%d", f.File, f.Line)))
		b.WriteString("\n")
	}

	if elided > 0 {
		b.WriteString(c.Theme.Dim.Render(fmt.Sprintf("… %d more frames elided", elided)))
		b.WriteString("\n")
	}
	if hidden > 0 {
		b.WriteString(c.Theme.Dim.Render(fmt.Sprintf("(%d library frames hidden)", hidden)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
