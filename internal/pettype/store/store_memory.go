package store

import (
	"context"
	"fmt"
	"sync"

	"petclinic/internal/pettype/models"
	"petclinic/pkg/platform/sentinel"
	pstrings "petclinic/pkg/platform/strings"
)

// InMemory keeps pet types in process. Names are unique after folding.
type InMemory struct {
	mu     sync.RWMutex
	types  []*models.PetType
	byName map[string]int
	nextID int
}

func NewInMemory() *InMemory {
	return &InMemory{byName: make(map[string]int), nextID: 1}
}

// FindAll returns every pet type ordered by name.
func (s *InMemory) FindAll(ctx context.Context) ([]*models.PetType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.PetType, 0, len(s.types))
	for _, t := range s.types {
		c := *t
		out = append(out, &c)
	}
	models.SortByName(out)
	return out, nil
}

func (s *InMemory) Add(ctx context.Context, petType *models.PetType) (*models.PetType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := pstrings.FoldKey(petType.Name)
	if name == "" {
		return nil, fmt.Errorf("add pet type: %w: blank name", sentinel.ErrConflict)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.byName[name]; dup {
		return nil, fmt.Errorf("add pet type %q: %w", name, sentinel.ErrConflict)
	}
	stored := &models.PetType{ID: s.nextID, Name: name}
	s.nextID++
	s.byName[name] = stored.ID
	s.types = append(s.types, stored)
	c := *stored
	return &c, nil
}

func (s *InMemory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.types), nil
}
