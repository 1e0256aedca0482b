// Package finder provides the concrete service.Service. It wires the search
// backends and the file reader from configuration, resolving the ripgrep
// executable exactly once so availability is a fixed fact for the lifetime
// of the process rather than something re-probed on every call.
package finder

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/jpl-au/seek/internal/cat"
	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/search"
	"github.com/jpl-au/seek/internal/service"
)

// lookPath resolves the ripgrep executable. Tests override it.
var lookPath = exec.LookPath

// Options override configuration for one process.
type Options struct {
	Ripgrep        string       // ripgrep executable, overrides search.ripgrep
	DisableRipgrep bool         // always use the in-process search
	Logger         *slog.Logger // diagnostics; nil uses slog.Default()
}

// Finder implements service.Service.
type Finder struct {
	search        *search.Service
	reader        *cat.Reader
	ripgrep       string
	maxLineLength int
}

var _ service.Service = (*Finder)(nil)

// New loads configuration and creates a Finder.
func New(opts Options) (*Finder, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}
	return NewWithConfig(cfg, opts), nil
}

// NewWithConfig creates a Finder from an already loaded configuration.
func NewWithConfig(cfg *config.Config, opts Options) *Finder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	searchOpts := search.Options{
		MaxDepth:      cfg.MaxDepth(),
		MaxMatches:    cfg.MaxMatches(),
		MaxLineLength: cfg.MaxLineLength(),
		SampleSize:    cfg.SampleSize(),
	}

	rgPath := resolveRipgrep(cfg, opts, logger)
	var primary search.Backend
	if rgPath != "" {
		codes := search.ExitCodes{Match: cfg.ExitMatch(), NoMatch: cfg.ExitNoMatch()}
		primary = search.NewRipgrep(rgPath, cfg.Timeout(), codes, searchOpts)
	}

	return &Finder{
		search:        search.NewService(primary, search.NewFallback(searchOpts), logger),
		reader:        cat.NewReader(cfg.SampleSize(), cfg.MaxContent()),
		ripgrep:       rgPath,
		maxLineLength: cfg.MaxLineLength(),
	}
}

// resolveRipgrep returns the absolute ripgrep path, or "" when ripgrep is
// disabled or cannot be found.
func resolveRipgrep(cfg *config.Config, opts Options, logger *slog.Logger) string {
	if opts.DisableRipgrep {
		logger.Debug("ripgrep disabled, using in-process search")
		return ""
	}
	name := opts.Ripgrep
	if name == "" {
		name = cfg.Ripgrep()
	}
	p, err := lookPath(name)
	if err != nil {
		logger.Debug("ripgrep not found, using in-process search", "ripgrep", name, "error", err)
		return ""
	}
	logger.Debug("using ripgrep", "path", p)
	return p
}

// Search implements service.Service.
func (f *Finder) Search(ctx context.Context, dir, keyword string) (search.Result, error) {
	return f.search.Search(ctx, dir, keyword)
}

// SearchWith implements service.Service.
func (f *Finder) SearchWith(ctx context.Context, backend, dir, keyword string) (search.Result, error) {
	return f.search.SearchWith(ctx, backend, dir, keyword)
}

// Backends implements service.Service.
func (f *Finder) Backends() []string {
	return f.search.Backends()
}

// ReadFile implements service.Service.
func (f *Finder) ReadFile(ctx context.Context, path string) (cat.Result, error) {
	return f.reader.ReadFile(ctx, path)
}

// MaxLineLength returns the configured maximum line length for scanning.
func (f *Finder) MaxLineLength() int {
	return f.maxLineLength
}

// Ripgrep returns the resolved ripgrep executable, or "" when searches run
// in-process.
func (f *Finder) Ripgrep() string {
	return f.ripgrep
}
