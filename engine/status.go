package engine

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scotomap/grid"
	"github.com/lixenwraith/scotomap/parameter/visual"
	"github.com/lixenwraith/scotomap/sweep"
)

// StatusText returns the status line for the current state
func (a *App) StatusText() string {
	s := a.session
	var b strings.Builder

	switch s.Mode {
	case sweep.Measuring:
		fmt.Fprintf(&b, " MEASURING phi %g theta %g | answer %s | %d/%d",
			s.Coordinate.Phi, s.Coordinate.Theta, responseLabel(s.Pending), s.Ticks, s.Params.TotalSteps())
		if a.source.Paused() {
			b.WriteString(" | PAUSED")
		}
	case sweep.Tabulating:
		sum := s.Grid.Summarize()
		fmt.Fprintf(&b, " DONE not seen %d of %d (%.1f%%)", sum.NotSeen, sum.Measured, sum.BlindFraction*100)
	}

	if a.sound.Muted() {
		b.WriteString(" | MUTED")
	}
	if a.message != "" {
		b.WriteString(" | ")
		b.WriteString(a.message)
	}
	return b.String()
}

// drawStatus writes the status line on the bottom row
func (a *App) drawStatus() {
	w, h := a.screen.Size()
	if h <= 0 {
		return
	}
	y := h - 1

	style := tcell.StyleDefault.
		Foreground(toColor(visual.TerminalStatusFg)).
		Background(toColor(visual.TerminalStatusBg))
	accent := style.Foreground(toColor(visual.TerminalHighlight))

	text := []rune(a.StatusText())
	// Highlight the mode word
	modeEnd := strings.IndexRune(strings.TrimLeft(string(text), " "), ' ') + 1

	for x := 0; x < w; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		}
		st := style
		if x > 0 && x <= modeEnd {
			st = accent
		}
		a.screen.SetContent(x, y, r, nil, st)
	}
}

// responseLabel is the status name of a pending answer
func responseLabel(r grid.Response) string {
	if r == grid.NotSeen {
		return "not seen"
	}
	return "seen"
}

func toColor(c visual.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
