package service

import (
	"context"
	"log/slog"

	"petclinic/internal/vet/metrics"
	"petclinic/internal/vet/models"
	"petclinic/pkg/platform/circuit"
	"petclinic/pkg/requestcontext"
)

// Store lists vets.
type Store interface {
	FindAll(ctx context.Context) ([]*models.Vet, error)
}

// Cache holds a copy of the vet list. It is optional.
type Cache interface {
	Get(ctx context.Context) ([]*models.Vet, bool, error)
	Set(ctx context.Context, vets []*models.Vet) error
}

// Cache lookup results, used as metric labels.
const (
	lookupHit    = "hit"
	lookupMiss   = "miss"
	lookupError  = "error"
	lookupBypass = "bypass"
)

// Service reads the vet list through an optional cache. Cache faults never
// fail a request; store faults always do.
type Service struct {
	store   Store
	cache   Cache
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

// WithCache reads and fills the list through cache.
func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithBreaker guards the cache with breaker. Without one a default breaker
// is created when a cache is configured.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		s.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache != nil && s.breaker == nil {
		s.breaker = circuit.New("vets-cache")
	}
	return s
}

// FindVets returns every vet, from cache when possible.
func (s *Service) FindVets(ctx context.Context) ([]*models.Vet, error) {
	if vets, ok := s.fromCache(ctx); ok {
		return vets, nil
	}

	vets, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, vets)
	return vets, nil
}

func (s *Service) fromCache(ctx context.Context) ([]*models.Vet, bool) {
	if s.cache == nil {
		return nil, false
	}
	if !s.breaker.Allow() {
		s.metrics.IncrementCacheLookup(lookupBypass)
		return nil, false
	}

	vets, found, err := s.cache.Get(ctx)
	if err != nil {
		s.metrics.IncrementCacheLookup(lookupError)
		s.recordCacheFailure(ctx, "vet cache read failed", err)
		return nil, false
	}
	s.recordCacheSuccess(ctx)
	if !found {
		s.metrics.IncrementCacheLookup(lookupMiss)
		return nil, false
	}
	s.metrics.IncrementCacheLookup(lookupHit)
	return vets, true
}

func (s *Service) fill(ctx context.Context, vets []*models.Vet) {
	if s.cache == nil || !s.breaker.Allow() {
		return
	}
	if err := s.cache.Set(ctx, vets); err != nil {
		s.recordCacheFailure(ctx, "vet cache write failed", err)
		return
	}
	s.recordCacheSuccess(ctx)
}

func (s *Service) recordCacheFailure(ctx context.Context, msg string, err error) {
	s.logger.WarnContext(ctx, msg,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
	if _, change := s.breaker.RecordFailure(); change.Opened {
		s.metrics.SetCacheOpen(true)
		s.logger.WarnContext(ctx, "vet cache circuit opened", "breaker", s.breaker.Name())
	}
}

func (s *Service) recordCacheSuccess(ctx context.Context) {
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.metrics.SetCacheOpen(false)
		s.logger.InfoContext(ctx, "vet cache circuit closed", "breaker", s.breaker.Name())
	}
}
