package store

import (
	"context"
	"fmt"

	"petclinic/internal/vet/models"
	pstrings "petclinic/pkg/platform/strings"
)

// Seeder is the subset of a store needed to load sample data.
type Seeder interface {
	Add(ctx context.Context, vet *models.Vet) (*models.Vet, error)
	Count(ctx context.Context) (int, error)
}

// SampleVets returns the clinic's demo veterinarians, unsaved.
func SampleVets() []*models.Vet {
	spec := func(names ...string) []*models.Specialty {
		out := make([]*models.Specialty, 0, len(names))
		for _, n := range names {
			out = append(out, &models.Specialty{Name: n})
		}
		return out
	}
	return []*models.Vet{
		{FirstName: "James", LastName: "Carter"},
		{FirstName: "Helen", LastName: "Leary", Specialties: spec("radiology")},
		{FirstName: "Linda", LastName: "Douglas", Specialties: spec("surgery", "dentistry")},
		{FirstName: "Rafael", LastName: "Ortega", Specialties: spec("surgery")},
		{FirstName: "Henry", LastName: "Stevens", Specialties: spec("radiology")},
		{FirstName: "Sharon", LastName: "Jenkins"},
	}
}

// Seed adds the sample vets to an empty store and reports how many it wrote.
func Seed(ctx context.Context, s Seeder) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	vets := SampleVets()
	for _, vet := range vets {
		if _, err := s.Add(ctx, vet); err != nil {
			return 0, fmt.Errorf("seed vet %s %s: %w", vet.FirstName, vet.LastName, err)
		}
	}
	return len(vets), nil
}

// specialtyNames returns the vet's specialty keys, folded and unique.
func specialtyNames(vet *models.Vet) []string {
	names := make([]string, 0, len(vet.Specialties))
	for _, s := range vet.Specialties {
		names = append(names, s.Name)
	}
	return pstrings.FoldKeys(names)
}
