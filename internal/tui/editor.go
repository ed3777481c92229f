package tui

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/script"
	"github.com/dshills/quill/internal/watch"
)

// ErrQuit signals a normal user-requested exit.
var ErrQuit = errors.New("quit")

// Editor owns the terminal session: it polls events, routes keys to
// the active buffer, and redraws after every change.
type Editor struct {
	screen  tcell.Screen
	view    *View
	docs    *app.Manager
	scripts *script.Engine
	logger  *app.Logger
}

// NewEditor wires the editor together. The screen must already be
// initialized; the scripts engine may be nil.
func NewEditor(screen tcell.Screen, view *View, docs *app.Manager, scripts *script.Engine, logger *app.Logger) *Editor {
	if logger == nil {
		logger = app.NullLogger
	}
	return &Editor{
		screen:  screen,
		view:    view,
		docs:    docs,
		scripts: scripts,
		logger:  logger.WithComponent("tui"),
	}
}

// ForwardWatch pumps file-change notifications into the event loop as
// interrupt events. The watcher's channel stays open for its lifetime,
// so call this in its own goroutine and let it die with the process.
func (e *Editor) ForwardWatch(w *watch.Watcher) {
	for ev := range w.Events() {
		_ = e.screen.PostEvent(tcell.NewEventInterrupt(ev))
	}
}

// Run drives the event loop until quit or error.
func (e *Editor) Run() error {
	for {
		doc := e.docs.Active()
		if doc == nil {
			doc = e.docs.OpenScratch()
		}
		e.view.Render(doc)

		ev := e.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			e.screen.Sync()
		case *tcell.EventInterrupt:
			e.handleWatch(ev)
		case *tcell.EventKey:
			if err := e.handleKey(doc, ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return ErrQuit
				}
				// Edit failures are not fatal; surface them in the log
				// and keep editing.
				e.logger.Warn("edit failed: %v", err)
			}
		}
	}
}

func (e *Editor) handleWatch(ev *tcell.EventInterrupt) {
	change, ok := ev.Data().(watch.Event)
	if !ok {
		return
	}
	doc, open := e.docs.Get(change.Path)
	if !open {
		return
	}

	switch change.Kind {
	case watch.Removed:
		e.logger.Warn("%s was removed externally", doc.Name)
	case watch.Changed:
		if doc.IsModified() {
			// Never clobber unsaved edits with the on-disk version.
			e.logger.Warn("%s changed on disk; keeping unsaved edits", doc.Name)
			return
		}
		if err := doc.Buffer.Load(change.Path); err != nil {
			e.logger.Error("reload of %s failed: %v", doc.Name, err)
			return
		}
		e.logger.Info("reloaded %s from disk", doc.Name)
	}
}

func (e *Editor) handleKey(doc *app.Document, ev *tcell.EventKey) error {
	buf := doc.Buffer

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return ErrQuit
	case tcell.KeyCtrlS:
		return e.docs.SaveActive()
	case tcell.KeyCtrlN:
		e.docs.Next()
		return nil
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			if r := ev.Rune(); r >= '1' && r <= '9' {
				return e.runMacro(doc, int(r-'1'))
			}
			return nil
		}
		return buf.Insert(string(ev.Rune()))
	case tcell.KeyEnter:
		return buf.Insert("\n")
	case tcell.KeyTab:
		return buf.Insert("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return buf.Delete(-1)
	case tcell.KeyDelete:
		return buf.Delete(1)
	case tcell.KeyUp:
		buf.MoveCursor(-1, 0)
	case tcell.KeyDown:
		buf.MoveCursor(1, 0)
	case tcell.KeyLeft:
		buf.StepCursor(-1)
	case tcell.KeyRight:
		buf.StepCursor(1)
	case tcell.KeyHome:
		buf.CursorToLineStart()
	case tcell.KeyEnd:
		buf.CursorToLineEnd()
	case tcell.KeyPgUp:
		buf.MoveCursor(-e.pageSize(), 0)
	case tcell.KeyPgDn:
		buf.MoveCursor(e.pageSize(), 0)
	case tcell.KeyEscape:
		buf.ClearSelection()
	}
	return nil
}

// runMacro runs the idx-th registered macro (Alt+1 through Alt+9)
// against the active buffer.
func (e *Editor) runMacro(doc *app.Document, idx int) error {
	if e.scripts == nil {
		return nil
	}
	names := e.scripts.Macros()
	if idx >= len(names) {
		return nil
	}
	e.logger.Info("running macro %s", names[idx])
	return e.scripts.RunMacro(names[idx], doc.Buffer)
}

func (e *Editor) pageSize() int {
	_, h := e.screen.Size()
	if h <= 1 {
		return 1
	}
	return h - 1
}
