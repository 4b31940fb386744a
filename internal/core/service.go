package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/leaderboard/internal/leaderboard"
	"github.com/JonMunkholm/leaderboard/internal/logging"
	"github.com/JonMunkholm/leaderboard/internal/source"
	"github.com/JonMunkholm/leaderboard/internal/tabular"
)

// Service loads and projects leaderboards. It holds no dataset: each call
// to Load returns a fresh *leaderboard.Leaderboard.
type Service struct {
	source    source.Source
	projector *leaderboard.Projector
	limiter   *LoadLimiter
	metrics   *Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLimiter bounds concurrent loads.
func WithLimiter(l *LoadLimiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithMetrics records loads and renders on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service reading from src and projecting with p.
func NewService(src source.Source, p *leaderboard.Projector, opts ...Option) (*Service, error) {
	if src == nil {
		return nil, errors.New("core: nil source")
	}
	if p == nil {
		return nil, errors.New("core: nil projector")
	}

	s := &Service{source: src, projector: p}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = NewLoadLimiter(DefaultMaxConcurrentLoads, DefaultLoadWaitTime)
	}
	return s, nil
}

// SourceName identifies the configured source.
func (s *Service) SourceName() string { return s.source.Name() }

// Projector returns the projector used by Render.
func (s *Service) Projector() *leaderboard.Projector { return s.projector }

// Limiter returns the load limiter, for health reporting and shutdown.
func (s *Service) Limiter() *LoadLimiter { return s.limiter }

// Load fetches and parses the leaderboard once.
func (s *Service) Load(ctx context.Context) (*leaderboard.Leaderboard, error) {
	name := s.source.Name()
	logger := logging.ForLoad(ctx, uuid.NewString(), name)
	if ip := ClientIPFromContext(ctx); ip != "" {
		logger = logger.With("client_ip", ip)
	}

	start := time.Now()
	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("load rejected", "error", err, "active", s.limiter.ActiveCount())
		s.metrics.observeLoad(name, OutcomeBusy, 0, 0)
		return nil, fmt.Errorf("acquire load slot: %w", err)
	}
	defer s.limiter.Release()
	s.metrics.loadStarted()
	defer s.metrics.loadFinished()

	logger.Debug("load started")

	data, err := s.source.Fetch(ctx)
	if err != nil {
		elapsed := time.Since(start)
		logger.Error("load failed",
			"error", err,
			"code", MapError(err).Code,
			"duration_ms", elapsed.Milliseconds(),
		)
		s.metrics.observeLoad(name, OutcomeError, elapsed, 0)
		return nil, err
	}

	records, err := tabular.ParseReader(bytes.NewReader(data))
	if err != nil {
		s.metrics.observeLoad(name, OutcomeError, time.Since(start), 0)
		return nil, fmt.Errorf("parse leaderboard: %w", err)
	}

	lb := leaderboard.New(records)
	lb.Source = name

	elapsed := time.Since(start)
	logger.Info("load completed",
		"rows", lb.Len(),
		"columns", len(lb.Columns),
		"bytes", len(data),
		"duration_ms", elapsed.Milliseconds(),
	)
	s.metrics.observeLoad(name, OutcomeSuccess, elapsed, lb.Len())
	return lb, nil
}

// Render loads the leaderboard and projects it at now. A failed load
// yields the error presentation; Render itself never fails.
func (s *Service) Render(ctx context.Context, now time.Time) leaderboard.Projection {
	pr, _ := s.RenderDetailed(ctx, now)
	return pr
}

// RenderDetailed is Render that also returns the load error behind an
// error presentation.
func (s *Service) RenderDetailed(ctx context.Context, now time.Time) (leaderboard.Projection, error) {
	lb, err := s.Load(ctx)

	var pr leaderboard.Projection
	if err != nil {
		pr = leaderboard.Failed(err, now)
	} else {
		pr = s.projector.Project(lb, now)
	}

	s.metrics.observeRender(string(pr.Status))
	return pr, err
}
