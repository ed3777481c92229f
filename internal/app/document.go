package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/gapbuffer"
)

// Errors returned by the document manager.
var (
	ErrNoActiveDocument = errors.New("no active document")
	ErrNotOpen          = errors.New("document is not open")
	ErrFileTooLarge     = errors.New("file exceeds the size limit")
)

// Document is one open file with its buffer state.
type Document struct {
	// ID uniquely identifies the document for the session, independent
	// of path renames.
	ID uuid.UUID

	// Path is the absolute file path, empty for scratch buffers.
	Path string

	// Name is the display name (file name or "Untitled").
	Name string

	// Buffer holds the document content.
	Buffer *gapbuffer.Buffer
}

// IsScratch reports whether the document has no backing file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsModified reports whether the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.Buffer.Modified()
}

// Save writes the document to its backing file, or returns
// gapbuffer.ErrNoPath for a scratch document.
func (d *Document) Save() error {
	return d.Buffer.Save()
}

// SaveAs writes the document to a new path and rebinds it there.
func (d *Document) SaveAs(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := d.Buffer.SaveAs(abs); err != nil {
		return err
	}
	d.Path = abs
	d.Name = filepath.Base(abs)
	return nil
}

// Manager tracks open documents and the active one. It is used from a
// single event-loop goroutine and performs no locking, matching the
// buffer's single-owner model.
type Manager struct {
	documents map[uuid.UUID]*Document
	byPath    map[string]*Document
	order     []uuid.UUID
	active    *Document
	logger    *Logger

	// maxFileBytes rejects files larger than this on open; 0 means no
	// limit.
	maxFileBytes int64
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithMaxFileSize caps the size of files Open will accept, in
// megabytes. Zero or negative means no limit.
func WithMaxFileSize(mb int) ManagerOption {
	return func(m *Manager) {
		if mb > 0 {
			m.maxFileBytes = int64(mb) * 1024 * 1024
		}
	}
}

// NewManager creates an empty document manager.
func NewManager(logger *Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = NullLogger
	}
	m := &Manager{
		documents: make(map[uuid.UUID]*Document),
		byPath:    make(map[string]*Document),
		logger:    logger.WithComponent("documents"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open opens a file as a document, or activates the existing document
// if the path is already open. A missing file opens as an empty
// document bound to the path, so "quill newfile.txt" works.
func (m *Manager) Open(path string, readonly bool) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if doc, ok := m.byPath[abs]; ok {
		m.active = doc
		return doc, nil
	}

	if m.maxFileBytes > 0 {
		if fi, err := os.Stat(abs); err == nil && fi.Size() > m.maxFileBytes {
			return nil, fmt.Errorf("%s: %w", abs, ErrFileTooLarge)
		}
	}

	var buf *gapbuffer.Buffer
	opts := []gapbuffer.Option{}
	if readonly {
		opts = append(opts, gapbuffer.WithReadOnly())
	}

	buf, err = gapbuffer.NewFromFile(abs, opts...)
	if errors.Is(err, os.ErrNotExist) {
		buf, err = gapbuffer.New(append(opts, gapbuffer.WithPath(abs))...), nil
	}
	if err != nil {
		return nil, err
	}

	doc := &Document{
		ID:     uuid.New(),
		Path:   abs,
		Name:   filepath.Base(abs),
		Buffer: buf,
	}
	m.add(doc)
	m.logger.Info("opened %s (%d lines)", doc.Name, buf.LineCount())
	return doc, nil
}

// OpenScratch creates an unnamed document and makes it active.
func (m *Manager) OpenScratch() *Document {
	doc := &Document{
		ID:     uuid.New(),
		Name:   "Untitled",
		Buffer: gapbuffer.New(),
	}
	m.add(doc)
	return doc
}

func (m *Manager) add(doc *Document) {
	m.documents[doc.ID] = doc
	if doc.Path != "" {
		m.byPath[doc.Path] = doc
	}
	m.order = append(m.order, doc.ID)
	m.active = doc
}

// Active returns the active document, or nil if none is open.
func (m *Manager) Active() *Document {
	return m.active
}

// Get returns the document at path, if open.
func (m *Manager) Get(path string) (*Document, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}
	doc, ok := m.byPath[abs]
	return doc, ok
}

// List returns open documents in open order.
func (m *Manager) List() []*Document {
	out := make([]*Document, 0, len(m.order))
	for _, id := range m.order {
		if doc, ok := m.documents[id]; ok {
			out = append(out, doc)
		}
	}
	return out
}

// Next cycles the active document forward in open order.
func (m *Manager) Next() *Document {
	if len(m.order) == 0 {
		return nil
	}
	idx := 0
	for i, id := range m.order {
		if m.active != nil && id == m.active.ID {
			idx = (i + 1) % len(m.order)
			break
		}
	}
	m.active = m.documents[m.order[idx]]
	return m.active
}

// Close removes a document from the session. Unsaved changes are the
// caller's responsibility to flush or discard first.
func (m *Manager) Close(id uuid.UUID) error {
	doc, ok := m.documents[id]
	if !ok {
		return ErrNotOpen
	}

	delete(m.documents, id)
	if doc.Path != "" {
		delete(m.byPath, doc.Path)
	}
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.active == doc {
		m.active = nil
		if len(m.order) > 0 {
			m.active = m.documents[m.order[len(m.order)-1]]
		}
	}
	m.logger.Debug("closed %s", doc.Name)
	return nil
}

// SaveActive saves the active document.
func (m *Manager) SaveActive() error {
	if m.active == nil {
		return ErrNoActiveDocument
	}
	if err := m.active.Save(); err != nil {
		return err
	}
	m.logger.Info("saved %s", m.active.Name)
	return nil
}

// Dirty returns the documents with unsaved changes.
func (m *Manager) Dirty() []*Document {
	var out []*Document
	for _, id := range m.order {
		if doc := m.documents[id]; doc != nil && doc.IsModified() {
			out = append(out, doc)
		}
	}
	return out
}
