package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/script"
	"github.com/dshills/quill/internal/watch"
)

func newTestEditor(t *testing.T, text string) (*Editor, *app.Document) {
	t.Helper()
	s := newSimScreen(t, 40, 10)
	docs, doc := scratchWith(t, text)
	e := NewEditor(s, NewView(s, 4, false), docs, nil, nil)
	return e, doc
}

func key(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mod)
}

func TestHandleKeyTyping(t *testing.T) {
	e, doc := newTestEditor(t, "")

	for _, r := range "hi" {
		if err := e.handleKey(doc, key(tcell.KeyRune, r, 0)); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.handleKey(doc, key(tcell.KeyEnter, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := e.handleKey(doc, key(tcell.KeyRune, '!', 0)); err != nil {
		t.Fatal(err)
	}

	if got := doc.Buffer.Content(); got != "hi\n!" {
		t.Errorf("expected %q, got %q", "hi\n!", got)
	}
}

func TestHandleKeyBackspaceAndDelete(t *testing.T) {
	e, doc := newTestEditor(t, "abc")

	if err := e.handleKey(doc, key(tcell.KeyBackspace2, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buffer.Content(); got != "ab" {
		t.Errorf("after backspace: %q", got)
	}

	doc.Buffer.CursorToStart()
	if err := e.handleKey(doc, key(tcell.KeyDelete, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if got := doc.Buffer.Content(); got != "b" {
		t.Errorf("after delete: %q", got)
	}
}

func TestHandleKeyArrowsOverPair(t *testing.T) {
	e, doc := newTestEditor(t, "A\U0001D11EB")
	doc.Buffer.CursorToStart()

	e.handleKey(doc, key(tcell.KeyRight, 0, 0))
	e.handleKey(doc, key(tcell.KeyRight, 0, 0))
	if got := doc.Buffer.Cursor().Offset; got != 3 {
		t.Errorf("two rights should skip the pair to offset 3, got %d", got)
	}

	e.handleKey(doc, key(tcell.KeyLeft, 0, 0))
	if got := doc.Buffer.Cursor().Offset; got != 1 {
		t.Errorf("left should skip back over the pair to offset 1, got %d", got)
	}
}

func TestHandleKeyHomeEnd(t *testing.T) {
	e, doc := newTestEditor(t, "line one\nline two")
	doc.Buffer.SetCursor(1, 4)

	e.handleKey(doc, key(tcell.KeyHome, 0, 0))
	if c := doc.Buffer.Cursor(); c.Column != 0 || c.Line != 1 {
		t.Errorf("Home should go to line start, got %s", c)
	}

	e.handleKey(doc, key(tcell.KeyEnd, 0, 0))
	if c := doc.Buffer.Cursor(); c.Column != 8 {
		t.Errorf("End should go to line end, got %s", c)
	}
}

func TestHandleKeyRunsMacro(t *testing.T) {
	s := newSimScreen(t, 40, 10)
	docs, doc := scratchWith(t, "text")
	engine := script.NewEngine(nil)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bang.lua"),
		[]byte(`buf.set_cursor_offset(buf.len()) buf.insert("!")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := engine.LoadDir(dir); err != nil {
		t.Fatal(err)
	}

	e := NewEditor(s, NewView(s, 4, false), docs, engine, nil)
	if err := e.handleKey(doc, key(tcell.KeyRune, '1', tcell.ModAlt)); err != nil {
		t.Fatalf("macro key failed: %v", err)
	}
	if got := doc.Buffer.Content(); got != "text!" {
		t.Errorf("expected %q, got %q", "text!", got)
	}

	// Unbound macro slots are ignored.
	if err := e.handleKey(doc, key(tcell.KeyRune, '9', tcell.ModAlt)); err != nil {
		t.Errorf("unbound macro slot should be a no-op: %v", err)
	}
}

func TestHandleKeyQuit(t *testing.T) {
	e, doc := newTestEditor(t, "")
	err := e.handleKey(doc, key(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	if !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestHandleKeySave(t *testing.T) {
	s := newSimScreen(t, 40, 10)
	docs := app.NewManager(nil)
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := docs.Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEditor(s, NewView(s, 4, false), docs, nil, nil)

	if err := doc.Buffer.Insert("new "); err != nil {
		t.Fatal(err)
	}
	if err := e.handleKey(doc, key(tcell.KeyCtrlS, 0, tcell.ModCtrl)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new old" {
		t.Errorf("file content %q", data)
	}
	if doc.IsModified() {
		t.Error("save should clear the modified flag")
	}
}

func TestHandleWatchReloadsCleanDocument(t *testing.T) {
	s := newSimScreen(t, 40, 10)
	docs := app.NewManager(nil)
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := docs.Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEditor(s, NewView(s, 4, false), docs, nil, nil)

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	e.handleWatch(tcell.NewEventInterrupt(watch.Event{Path: path, Kind: watch.Changed}))

	if got := doc.Buffer.Content(); got != "v2" {
		t.Errorf("clean document should reload, got %q", got)
	}
}

func TestHandleWatchKeepsDirtyDocument(t *testing.T) {
	s := newSimScreen(t, 40, 10)
	docs := app.NewManager(nil)
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := docs.Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEditor(s, NewView(s, 4, false), docs, nil, nil)

	if err := doc.Buffer.Insert("local edit "); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	e.handleWatch(tcell.NewEventInterrupt(watch.Event{Path: path, Kind: watch.Changed}))

	if got := doc.Buffer.Content(); got != "local edit v1" {
		t.Errorf("dirty document must not reload, got %q", got)
	}
}
