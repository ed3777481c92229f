package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/gapbuffer"
)

// Errors returned by the engine.
var (
	ErrSourceTooLarge = errors.New("macro source exceeds size limit")
	ErrMacroNotFound  = errors.New("macro not found")
)

// defaultMaxSourceSize caps macro source at 1 MB.
const defaultMaxSourceSize = 1 << 20

// Engine loads and runs Lua macros.
type Engine struct {
	logger        *app.Logger
	maxSourceSize int
	// macros maps name (file base without extension) to source.
	macros map[string]string
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxSourceSize caps the accepted macro source length in bytes.
func WithMaxSourceSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSourceSize = n
		}
	}
}

// NewEngine creates a macro engine.
func NewEngine(logger *app.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = app.NullLogger
	}
	e := &Engine{
		logger:        logger.WithComponent("script"),
		maxSourceSize: defaultMaxSourceSize,
		macros:        make(map[string]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadDir registers every *.lua file in dir as a macro named after its
// base name. A missing directory is not an error.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading scripts dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading macro %s: %w", path, err)
		}
		if len(data) > e.maxSourceSize {
			return fmt.Errorf("%s: %w", path, ErrSourceTooLarge)
		}
		name := strings.TrimSuffix(entry.Name(), ".lua")
		e.macros[name] = string(data)
		e.logger.Debug("registered macro %s", name)
	}
	return nil
}

// Macros returns the registered macro names, sorted.
func (e *Engine) Macros() []string {
	names := make([]string, 0, len(e.macros))
	for name := range e.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunMacro runs a registered macro against a buffer.
func (e *Engine) RunMacro(name string, buf *gapbuffer.Buffer) error {
	source, ok := e.macros[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrMacroNotFound)
	}
	return e.Run(source, buf)
}

// Run executes Lua source against a buffer in a fresh sandbox.
func (e *Engine) Run(source string, buf *gapbuffer.Buffer) error {
	_, err := e.eval(source, buf, false)
	return err
}

// Eval runs a Lua expression against a buffer and converts its result
// to a Go value: numbers, strings, booleans, and tables (as maps or
// slices).
func (e *Engine) Eval(expr string, buf *gapbuffer.Buffer) (any, error) {
	return e.eval("return "+expr, buf, true)
}

func (e *Engine) eval(source string, buf *gapbuffer.Buffer, wantResult bool) (any, error) {
	if len(source) > e.maxSourceSize {
		return nil, ErrSourceTooLarge
	}

	L := newSandboxedState()
	defer L.Close()

	registerBufferAPI(L, buf)
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.Get(i).String())
		}
		e.logger.Info("macro: %s", strings.Join(parts, "\t"))
		return 0
	}))

	if err := L.DoString(source); err != nil {
		var apiErr *lua.ApiError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("macro failed: %v", apiErr.Object)
		}
		return nil, fmt.Errorf("macro failed: %w", err)
	}

	if !wantResult {
		return nil, nil
	}
	top := L.GetTop()
	if top == 0 {
		return nil, nil
	}
	return toGo(L.Get(top)), nil
}
