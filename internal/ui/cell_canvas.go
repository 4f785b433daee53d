package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/cellbuf"
)

// frame composes rendered blocks into a fixed-size cell buffer so overlays
// can be painted over the base screen without breaking ANSI sequences.
type frame struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func newFrame(width, height int) *frame {
	width = max(width, 1)
	height = max(height, 1)
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{})
	return &frame{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// place draws block with its top-left corner at (x, y), cropping at the
// frame edges.
func (f *frame) place(x, y int, block string) {
	lines := splitBlock(block)
	x = max(x, 0)
	y = max(y, 0)
	for i, line := range lines {
		row := y + i
		if row >= f.height {
			return
		}
		if line == "" {
			continue
		}
		f.writer.PrintCropAt(x, row, line, "")
	}
}

// placeCentered centers block in the rows between top and bottom margins.
func (f *frame) placeCentered(block string, topMargin, bottomMargin int) {
	lines := splitBlock(block)
	if len(lines) == 0 {
		return
	}
	w := min(maxLineWidth(lines), f.width)
	h := len(lines)

	usable := max(f.height-max(topMargin, 0)-max(bottomMargin, 0), h)
	y := max(topMargin, 0) + (usable-h)/2
	y = min(y, f.height-max(bottomMargin, 0)-h)
	f.place((f.width-w)/2, max(y, 0), block)
}

// placeBottomRight anchors block to the bottom-right corner, inset by
// margin cells on both axes.
func (f *frame) placeBottomRight(block string, margin int) {
	lines := splitBlock(block)
	if len(lines) == 0 {
		return
	}
	margin = max(margin, 0)
	x := f.width - maxLineWidth(lines) - margin
	y := f.height - len(lines) - margin
	f.place(x, y, block)
}

// String flushes the frame into a newline-delimited string.
func (f *frame) String() string {
	out := cellbuf.Render(f.screen)
	_ = f.screen.Close()
	return strings.ReplaceAll(out, "\r\n", "\n")
}

func splitBlock(block string) []string {
	if block == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
}
