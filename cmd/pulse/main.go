package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/docopt/docopt-go"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pthm/pulse"
	"github.com/pthm/pulse/lib/generator"
	"github.com/pthm/pulse/lib/inspect"
)

const version = "0.1.0"

const usage = `pulse - declarative components for HTML documents

Usage:
  pulse inspect <file>
  pulse render <file> [--mount=<selector>...] [--out=<path>]
  pulse watch <file>
  pulse generate [--dry-run] [<packages>...]
  pulse clean [--dry-run] [<packages>...]
  pulse version
  pulse -h | --help

Options:
  -h --help              Show this screen.
  --mount=<selector>     Mount a passive component on each matching container.
  --out=<path>           Write rendered HTML to path instead of stdout.
  --dry-run              Show what would change without writing files.

Environment:
  PULSE_MARKER           Marker attribute (default pulse).
  PULSE_LOG_LEVEL        debug, info, warn or error (default info).
  PULSE_KEY              Key for decoding <marker>-props.
  PULSE_BINDINGS         Comma list replacing the binding table.

Examples:
  pulse inspect index.html
  pulse render index.html --mount=counter
  pulse generate ./...
  pulse clean ./components/...`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts docopt.Opts) error {
	if v, _ := opts.Bool("version"); v {
		fmt.Printf("pulse version %s\n", version)
		return nil
	}
	if v, _ := opts.Bool("generate"); v {
		return runGenerate(opts)
	}
	if v, _ := opts.Bool("clean"); v {
		return runClean(opts)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := cfg.logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	pulse.SetLogger(logger)

	docCfg, err := cfg.document(logger)
	if err != nil {
		return err
	}
	file, _ := opts.String("<file>")

	switch {
	case isSet(opts, "inspect"):
		return runInspect(os.Stdout, file, docCfg)
	case isSet(opts, "render"):
		selectors, _ := opts["--mount"].([]string)
		out, _ := opts.String("--out")
		return runRender(file, out, selectors, docCfg)
	case isSet(opts, "watch"):
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, file, docCfg, logger)
	}
	return nil
}

func isSet(opts docopt.Opts, key string) bool {
	v, _ := opts.Bool(key)
	return v
}

func patterns(opts docopt.Opts) []string {
	p, _ := opts["<packages>"].([]string)
	if len(p) == 0 {
		p = []string{"./..."}
	}
	return p
}

func runGenerate(opts docopt.Opts) error {
	dryRun, _ := opts.Bool("--dry-run")
	gen := generator.New(generator.Options{DryRun: dryRun})
	return gen.Generate(patterns(opts)...)
}

func runClean(opts docopt.Opts) error {
	dryRun, _ := opts.Bool("--dry-run")
	gen := generator.New(generator.Options{DryRun: dryRun})
	return gen.Clean(patterns(opts)...)
}

func parseFile(path string, cfg pulse.Config) (*pulse.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pulse.Parse(f, cfg)
}

func runInspect(w io.Writer, path string, cfg pulse.Config) error {
	doc, err := parseFile(path, cfg)
	if err != nil {
		return err
	}
	reports, err := inspect.Build(doc)
	if err != nil {
		return err
	}
	return inspect.NewWriter(w).Write(reports)
}

// passive is mounted by render. It declares no handlers.
type passive struct {
	c *pulse.Component
}

func runRender(path, out string, selectors []string, cfg pulse.Config) error {
	doc, err := parseFile(path, cfg)
	if err != nil {
		return err
	}
	for _, sel := range selectors {
		if _, err := pulse.Mount(doc, sel, func(c *pulse.Component) any { return &passive{c: c} }, nil); err != nil {
			return err
		}
	}

	if out == "" {
		return doc.Render(os.Stdout)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runWatch re-inspects path whenever it changes until ctx is done.
func runWatch(ctx context.Context, path string, cfg pulse.Config, logger *zap.Logger) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = w.Close() }()

	// Editors often replace files, so watch the directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	report := func() {
		if err := runInspect(os.Stdout, abs, cfg); err != nil {
			logger.Warn("inspect failed", zap.String("file", abs), zap.Error(err))
		}
	}
	report()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("file changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			report()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}
