package store

import (
	"context"
	"sort"
	"sync"

	"petclinic/internal/vet/models"
)

// InMemory keeps vets in process. Specialties are interned by name.
type InMemory struct {
	mu          sync.RWMutex
	vets        []*models.Vet
	specialties map[string]int
	nextVetID   int
}

func NewInMemory() *InMemory {
	return &InMemory{specialties: make(map[string]int), nextVetID: 1}
}

// FindAll returns every vet ordered by last then first name, with
// specialties ordered by name.
func (s *InMemory) FindAll(ctx context.Context) ([]*models.Vet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Vet, 0, len(s.vets))
	for _, v := range s.vets {
		out = append(out, v.Clone())
	}
	sortVets(out)
	return out, nil
}

func (s *InMemory) Add(ctx context.Context, vet *models.Vet) (*models.Vet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := &models.Vet{ID: s.nextVetID, FirstName: vet.FirstName, LastName: vet.LastName}
	s.nextVetID++
	for _, name := range specialtyNames(vet) {
		id, ok := s.specialties[name]
		if !ok {
			id = len(s.specialties) + 1
			s.specialties[name] = id
		}
		stored.Specialties = append(stored.Specialties, &models.Specialty{ID: id, Name: name})
	}
	stored.SortSpecialties()
	s.vets = append(s.vets, stored)
	return stored.Clone(), nil
}

func (s *InMemory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vets), nil
}

func sortVets(vets []*models.Vet) {
	sort.SliceStable(vets, func(i, j int) bool {
		a, b := vets[i], vets[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	for _, v := range vets {
		v.SortSpecialties()
	}
}
