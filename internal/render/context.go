package render

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// MinWidth is the narrowest terminal the rich formatter supports. Below
// this the pipeline falls back to the bare default trace.
const MinWidth = 70

const defaultWidth = 80

// Context is the ephemeral per-event rendering state: output width, theme,
// and the derived module-line width for frame lists. Built once per error
// event and discarded after the panels are printed.
type Context struct {
	Width      int
	Theme      Theme
	ModuleLine int // max columns given to the function identity in a frame row
}

// NewContext builds a rendering context for the given output width.
func NewContext(width int) *Context {
	if width <= 0 {
		width = defaultWidth
	}
	return &Context{
		Width:      width,
		Theme:      DefaultTheme(),
		ModuleLine: width * 2 / 3,
	}
}

// DetectWidth returns the terminal width of w, the COLUMNS variable, or the
// default, in that order.
func DetectWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if v := os.Getenv("COLUMNS"); v != "" {
		if cols, err := strconv.Atoi(v); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultWidth
}
