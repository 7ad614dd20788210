package store

import (
	"context"
	"fmt"

	"petclinic/internal/pettype/models"
)

// Seeder is the subset of a store needed to load sample data.
type Seeder interface {
	Add(ctx context.Context, petType *models.PetType) (*models.PetType, error)
	Count(ctx context.Context) (int, error)
}

// SamplePetTypes returns the clinic's demo pet types, unsaved.
func SamplePetTypes() []*models.PetType {
	names := []string{"cat", "dog", "lizard", "snake", "bird", "hamster"}
	out := make([]*models.PetType, 0, len(names))
	for _, n := range names {
		out = append(out, &models.PetType{Name: n})
	}
	return out
}

// Seed adds the sample pet types to an empty store and reports how many it
// wrote.
func Seed(ctx context.Context, s Seeder) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	types := SamplePetTypes()
	for _, t := range types {
		if _, err := s.Add(ctx, t); err != nil {
			return 0, fmt.Errorf("seed pet type %s: %w", t.Name, err)
		}
	}
	return len(types), nil
}
