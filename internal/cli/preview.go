package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/tonal/internal/colour"
)

// swatchWidth is the default width of a colour preview block.
const swatchWidth = 8

var (
	black = colour.RGB{}
	white = colour.RGB{R: 255, G: 255, B: 255}
)

// swatch returns a solid block of c, width cells wide.
func swatch(c colour.RGB, width int) string {
	if width <= 0 {
		width = swatchWidth
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", width))
}

// labelledSwatch renders text centred on a block of c, in black or white
// whichever contrasts more.
func labelledSwatch(c colour.RGB, text string, width int) string {
	if width <= 0 {
		width = swatchWidth
	}
	fg := white
	if colour.ContrastRatio(c, black) > colour.ContrastRatio(c, white) {
		fg = black
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Width(width).
		MaxWidth(width).
		Align(lipgloss.Center).
		Render(text)
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

// previewEnabled reports whether swatches should be drawn. Previews are
// dropped when stdout is redirected.
func (s *session) previewEnabled(outputPath string) bool {
	if !s.cfg.Preview {
		return false
	}
	if outputPath != "" || !isTerminal(s.out) {
		s.logger.Debug("preview disabled, output is not a terminal")
		return false
	}
	return true
}
