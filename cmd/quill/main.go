// Package main is the entry point for the quill editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/script"
	"github.com/dshills/quill/internal/tui"
	"github.com/dshills/quill/internal/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	readOnly   bool
	files      []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := buildLogger(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	docs := app.NewManager(logger, app.WithMaxFileSize(cfg.Editor.MaxFileSizeMB))
	for _, file := range opts.files {
		if _, err := docs.Open(file, opts.readOnly); err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open %s: %v\n", file, err)
			return 1
		}
	}

	scripts := script.NewEngine(logger)
	if cfg.Scripts.Dir != "" {
		if err := scripts.LoadDir(cfg.Scripts.Dir); err != nil {
			logger.Warn("loading macros: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: terminal init failed: %v\n", err)
		return 1
	}
	defer screen.Fini()

	view := tui.NewView(screen, cfg.Editor.TabWidth, cfg.Editor.DefaultDirection == "rtl")
	editor := tui.NewEditor(screen, view, docs, scripts, logger)

	if cfg.Watch.Enabled {
		watcher, err := startWatcher(cfg, logger, docs, editor)
		if err != nil {
			logger.Warn("file watching disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.Fini()
		os.Exit(1)
	}()

	if err := editor.Run(); err != nil && !errors.Is(err, tui.ErrQuit) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func buildLogger(cfg config.Config, opts options) (*app.Logger, func(), error) {
	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}

	lcfg := app.DefaultLoggerConfig()
	lcfg.Level = app.ParseLogLevel(level)

	closer := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		lcfg.Output = f
		closer = func() { _ = f.Close() }
	}

	return app.NewLogger(lcfg), closer, nil
}

func startWatcher(cfg config.Config, logger *app.Logger, docs *app.Manager, editor *tui.Editor) (*watch.Watcher, error) {
	watcher, err := watch.New(logger,
		watch.WithDebounce(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond))
	if err != nil {
		return nil, err
	}
	for _, doc := range docs.List() {
		if doc.Path == "" {
			continue
		}
		if err := watcher.Add(doc.Path); err != nil {
			logger.Warn("cannot watch %s: %v", doc.Path, err)
		}
	}
	go editor.ForwardWatch(watcher)
	return watcher, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.readOnly, "readonly", false, "Open files in read-only mode")
	flag.BoolVar(&opts.readOnly, "R", false, "Open files in read-only mode (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quill - a bidirectional-text terminal editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill                Open with an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  quill notes.txt      Open a file\n")
		fmt.Fprintf(os.Stderr, "  quill -R notes.txt   Open a file read-only\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("quill %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
			os.Exit(1)
		}
	}

	opts.files = flag.Args()
	return opts
}
