package service

import (
	"context"
	"log/slog"

	"petclinic/internal/pettype/models"
	"petclinic/pkg/requestcontext"
)

// Store lists pet types.
type Store interface {
	FindAll(ctx context.Context) ([]*models.PetType, error)
}

// Service answers pet type lookups for the pet forms.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindPetTypes returns every pet type ordered by name. Store faults are
// returned unchanged.
func (s *Service) FindPetTypes(ctx context.Context) ([]*models.PetType, error) {
	types, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "pet types loaded",
		"count", len(types),
		"request_id", requestcontext.RequestID(ctx),
	)
	return types, nil
}
