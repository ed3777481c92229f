// Package tui renders documents to a terminal with tcell and maps key
// events onto buffer operations. Lines classified RTL by the buffer
// are right-aligned; the package never reorders text, it only follows
// the buffer's direction hint.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/gapbuffer"
)

// View draws one document into the screen area above the status line.
type View struct {
	screen tcell.Screen

	// topLine is the first visible buffer line.
	topLine int

	tabWidth   int
	defaultRTL bool

	textStyle   tcell.Style
	statusStyle tcell.Style
}

// NewView creates a view for the screen.
func NewView(screen tcell.Screen, tabWidth int, defaultRTL bool) *View {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return &View{
		screen:      screen,
		tabWidth:    tabWidth,
		defaultRTL:  defaultRTL,
		textStyle:   tcell.StyleDefault,
		statusStyle: tcell.StyleDefault.Reverse(true),
	}
}

// TopLine returns the first visible buffer line.
func (v *View) TopLine() int {
	return v.topLine
}

// Render draws the document and positions the terminal cursor.
func (v *View) Render(doc *app.Document) {
	v.screen.Clear()
	width, height := v.screen.Size()
	if width <= 0 || height <= 1 {
		v.screen.Show()
		return
	}
	textRows := height - 1

	buf := doc.Buffer
	v.scrollToCursor(buf, textRows)

	for row := 0; row < textRows; row++ {
		line := v.topLine + row
		if line >= buf.LineCount() {
			break
		}
		v.drawLine(buf, line, row, width)
	}

	v.drawStatus(doc, width, height-1)
	v.placeCursor(buf, width)
	v.screen.Show()
}

// scrollToCursor adjusts the viewport so the cursor line is visible.
func (v *View) scrollToCursor(buf *gapbuffer.Buffer, textRows int) {
	line := buf.Cursor().Line
	if line < v.topLine {
		v.topLine = line
	}
	if textRows > 0 && line >= v.topLine+textRows {
		v.topLine = line - textRows + 1
	}
	if v.topLine < 0 {
		v.topLine = 0
	}
}

// lineRTL decides whether a line renders right-aligned.
func (v *View) lineRTL(buf *gapbuffer.Buffer, line int) bool {
	info, err := buf.LineInfo(line)
	if err != nil {
		return false
	}
	switch info.Direction {
	case gapbuffer.DirectionRTL:
		return true
	case gapbuffer.DirectionLTR:
		return false
	default:
		return v.defaultRTL
	}
}

func (v *View) drawLine(buf *gapbuffer.Buffer, line, row, width int) {
	text, err := buf.Line(line)
	if err != nil {
		return
	}

	x := 0
	if v.lineRTL(buf, line) {
		if w := v.displayWidth(text); w < width {
			x = width - w
		}
	}

	gr := uniseg.NewGraphemes(text)
	for gr.Next() && x < width {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			x += v.tabWidth - x%v.tabWidth
			continue
		}
		w := v.clusterWidth(runes)
		v.screen.SetContent(x, row, runes[0], runes[1:], v.textStyle)
		x += w
	}
}

func (v *View) drawStatus(doc *app.Document, width, row int) {
	dirty := ""
	if doc.IsModified() {
		dirty = " [+]"
	}
	c := doc.Buffer.Cursor()
	left := fmt.Sprintf(" %s%s", doc.Name, dirty)
	right := fmt.Sprintf("%d:%d  %d lines ", c.Line+1, c.Column+1, doc.Buffer.LineCount())

	x := 0
	for _, r := range left {
		if x >= width {
			break
		}
		v.screen.SetContent(x, row, r, nil, v.statusStyle)
		x += runewidth.RuneWidth(r)
	}
	for ; x < width-v.displayWidth(right); x++ {
		v.screen.SetContent(x, row, ' ', nil, v.statusStyle)
	}
	for _, r := range right {
		if x >= width {
			break
		}
		v.screen.SetContent(x, row, r, nil, v.statusStyle)
		x += runewidth.RuneWidth(r)
	}
}

// placeCursor maps the buffer cursor to screen coordinates, honoring
// the line's alignment.
func (v *View) placeCursor(buf *gapbuffer.Buffer, width int) {
	c := buf.Cursor()
	row := c.Line - v.topLine
	if row < 0 {
		v.screen.HideCursor()
		return
	}

	text, err := buf.Line(c.Line)
	if err != nil {
		v.screen.HideCursor()
		return
	}
	prefix := unitPrefix(text, c.Column)

	x := 0
	if v.lineRTL(buf, c.Line) {
		if w := v.displayWidth(text); w < width {
			x = width - w
		}
	}
	x += v.displayWidth(prefix)
	v.screen.ShowCursor(x, row)
}

// displayWidth measures text in terminal cells, expanding tabs from
// column 0 and counting grapheme clusters, not runes.
func (v *View) displayWidth(text string) int {
	w := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			w += v.tabWidth - w%v.tabWidth
			continue
		}
		w += v.clusterWidth(runes)
	}
	return w
}

// clusterWidth is the cell width of one grapheme cluster. Combining
// marks ride on their base for free; a zero-width base still occupies
// one cell so the cursor has somewhere to sit.
func (v *View) clusterWidth(runes []rune) int {
	w := runewidth.RuneWidth(runes[0])
	if w < 1 {
		w = 1
	}
	return w
}

// unitPrefix returns the prefix of text covering the first n UTF-16
// code units, the buffer's column measure.
func unitPrefix(text string, n int) string {
	units := 0
	for i, r := range text {
		if units >= n {
			return text[:i]
		}
		units++
		if r > 0xFFFF {
			units++
		}
	}
	return text
}
