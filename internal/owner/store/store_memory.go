package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"petclinic/internal/owner/models"
	"petclinic/pkg/platform/sentinel"
)

// InMemory is a map-backed owner store for local runs and tests.
// Returned owners are copies; callers never alias stored values.
type InMemory struct {
	mu     sync.RWMutex
	owners map[int]*models.Owner
	nextID int
}

// NewInMemory builds an empty store whose first assigned ID is 1.
func NewInMemory() *InMemory {
	return &InMemory{owners: make(map[int]*models.Owner), nextID: 1}
}

// FindByLastName returns owners whose last name starts with fragment,
// ignoring case, ordered by ID. An empty fragment matches everyone.
func (s *InMemory) FindByLastName(ctx context.Context, fragment string) ([]*models.Owner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := strings.ToLower(fragment)
	matches := make([]*models.Owner, 0)
	for _, owner := range s.owners {
		if strings.HasPrefix(strings.ToLower(owner.LastName), prefix) {
			matches = append(matches, owner.Clone())
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (s *InMemory) FindByID(ctx context.Context, id int) (*models.Owner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.owners[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return owner.Clone(), nil
}

// Save inserts a new owner (assigning the next ID) or replaces an existing one.
// Updating an ID the store has never issued returns ErrNotFound.
func (s *InMemory) Save(ctx context.Context, owner *models.Owner) (*models.Owner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := owner.Clone()
	if stored.IsNew() {
		stored.ID = s.nextID
		s.nextID++
	} else if _, ok := s.owners[stored.ID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	s.owners[stored.ID] = stored
	return stored.Clone(), nil
}

// Count returns the number of stored owners.
func (s *InMemory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.owners), nil
}
