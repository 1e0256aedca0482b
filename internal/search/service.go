package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jpl-au/seek/internal/validate"
)

// Service validates search requests and routes them to a backend.
//
// The primary backend (ripgrep) is tried first when configured. If it turns
// out to be unavailable the fallback answers instead; any other primary
// failure is reported to the caller unchanged.
type Service struct {
	primary  Backend // nil when ripgrep is disabled or not installed
	fallback Backend
	logger   *slog.Logger
}

// NewService creates a search service. primary may be nil. A nil logger
// uses slog.Default().
func NewService(primary, fallback Backend, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{primary: primary, fallback: fallback, logger: logger}
}

// Search validates the keyword and directory, then searches with the best
// available backend. Validation failures wrap validate.ErrInvalidInput,
// validate.ErrNotFound or validate.ErrPermissionDenied.
func (s *Service) Search(ctx context.Context, dir, keyword string) (Result, error) {
	abs, err := s.validate(dir, keyword)
	if err != nil {
		return Result{}, err
	}

	if s.primary != nil {
		res, err := s.primary.Search(ctx, abs, keyword)
		if err == nil {
			s.logSkipped(res)
			return res, nil
		}
		if !errors.Is(err, ErrUnavailable) {
			return Result{}, err
		}
		s.logger.Warn("primary search backend unavailable, using fallback",
			"backend", s.primary.Name(), "error", err)
	}

	res, err := s.fallback.Search(ctx, abs, keyword)
	if err != nil {
		return Result{}, err
	}
	s.logSkipped(res)
	return res, nil
}

// SearchWith runs one named backend with no fallback. Used to compare
// backends against each other.
func (s *Service) SearchWith(ctx context.Context, backend, dir, keyword string) (Result, error) {
	abs, err := s.validate(dir, keyword)
	if err != nil {
		return Result{}, err
	}
	for _, b := range s.backends() {
		if b.Name() == backend {
			return b.Search(ctx, abs, keyword)
		}
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// Backends lists the configured backend names, primary first.
func (s *Service) Backends() []string {
	var names []string
	for _, b := range s.backends() {
		names = append(names, b.Name())
	}
	return names
}

func (s *Service) backends() []Backend {
	if s.primary == nil {
		return []Backend{s.fallback}
	}
	return []Backend{s.primary, s.fallback}
}

// validate checks the keyword before the directory so an empty keyword is
// reported even when the directory is also bad.
func (s *Service) validate(dir, keyword string) (string, error) {
	if err := validate.Keyword(keyword); err != nil {
		return "", err
	}
	return validate.Dir(dir)
}

func (s *Service) logSkipped(res Result) {
	if len(res.Skipped) == 0 {
		return
	}
	s.logger.Debug("entries skipped during search",
		"backend", res.Backend, "count", len(res.Skipped), "entries", res.Skipped)
}
