package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/app"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func scratchWith(t *testing.T, text string) (*app.Manager, *app.Document) {
	t.Helper()
	m := app.NewManager(nil)
	doc := m.OpenScratch()
	if err := doc.Buffer.Insert(text); err != nil {
		t.Fatal(err)
	}
	return m, doc
}

// rowText extracts the non-blank text of one screen row.
func rowText(t *testing.T, s tcell.SimulationScreen, row int) string {
	t.Helper()
	cells, width, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		for _, r := range cells[row*width+x].Runes {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func TestRenderLTRLine(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	_, doc := scratchWith(t, "hello")
	v := NewView(s, 4, false)

	v.Render(doc)

	row := rowText(t, s, 0)
	if !strings.HasPrefix(row, "hello") {
		t.Errorf("LTR line should be left-aligned, row %q", row)
	}
}

func TestRenderRTLLineRightAligned(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	_, doc := scratchWith(t, "שלום")
	v := NewView(s, 4, false)

	v.Render(doc)

	row := rowText(t, s, 0)
	trimmed := strings.TrimRight(row, " ")
	if !strings.HasSuffix(trimmed, "שלום") {
		t.Errorf("RTL line should be right-aligned, row %q", row)
	}
	if strings.HasPrefix(row, "ש") {
		t.Errorf("RTL line should not start at column 0, row %q", row)
	}
}

func TestRenderAutoLineFollowsDefault(t *testing.T) {
	// Digits classify as auto; the configured default decides.
	s := newSimScreen(t, 20, 5)
	_, doc := scratchWith(t, "123")

	NewView(s, 4, true).Render(doc)
	row := rowText(t, s, 0)
	if strings.HasPrefix(row, "123") {
		t.Errorf("auto line with RTL default should be right-aligned, row %q", row)
	}

	NewView(s, 4, false).Render(doc)
	row = rowText(t, s, 0)
	if !strings.HasPrefix(row, "123") {
		t.Errorf("auto line with LTR default should be left-aligned, row %q", row)
	}
}

func TestRenderStatusLine(t *testing.T) {
	s := newSimScreen(t, 40, 5)
	_, doc := scratchWith(t, "abc")
	v := NewView(s, 4, false)

	v.Render(doc)

	status := rowText(t, s, 4)
	if !strings.Contains(status, "Untitled") {
		t.Errorf("status should show the document name, got %q", status)
	}
	if !strings.Contains(status, "[+]") {
		t.Errorf("status should flag unsaved changes, got %q", status)
	}
	if !strings.Contains(status, "1:4") {
		t.Errorf("status should show 1-based cursor position, got %q", status)
	}
}

func TestRenderScrollsToCursor(t *testing.T) {
	s := newSimScreen(t, 20, 4) // 3 text rows + status
	_, doc := scratchWith(t, strings.Repeat("x\n", 9)+"last")
	doc.Buffer.SetCursor(9, 0)

	v := NewView(s, 4, false)
	v.Render(doc)

	if v.TopLine() != 7 {
		t.Errorf("expected top line 7, got %d", v.TopLine())
	}
	if got := rowText(t, s, 2); !strings.HasPrefix(got, "last") {
		t.Errorf("cursor line should be visible, bottom row %q", got)
	}

	doc.Buffer.SetCursor(0, 0)
	v.Render(doc)
	if v.TopLine() != 0 {
		t.Errorf("scrolling up should follow the cursor, top line %d", v.TopLine())
	}
}

func TestRenderExpandsTabs(t *testing.T) {
	s := newSimScreen(t, 20, 5)
	_, doc := scratchWith(t, "\tx")
	v := NewView(s, 4, false)

	v.Render(doc)

	cells, width, _ := s.GetContents()
	if got := cells[0*width+4].Runes; len(got) == 0 || got[0] != 'x' {
		t.Errorf("expected 'x' at column 4 after tab expansion, got %v", got)
	}
}

func TestUnitPrefix(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"hello", 3, "hel"},
		{"hello", 9, "hello"},
		{"a\U0001D11Eb", 1, "a"},
		{"a\U0001D11Eb", 3, "a\U0001D11E"},
		{"", 2, ""},
	}
	for _, tt := range tests {
		if got := unitPrefix(tt.text, tt.n); got != tt.want {
			t.Errorf("unitPrefix(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
		}
	}
}
