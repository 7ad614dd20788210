package store

import (
	"context"
	"fmt"

	"petclinic/internal/owner/models"
)

// Saver is the subset of a store needed to load sample data.
type Saver interface {
	Save(ctx context.Context, owner *models.Owner) (*models.Owner, error)
	Count(ctx context.Context) (int, error)
}

// SampleOwners returns the clinic's demo owners, unsaved.
func SampleOwners() []*models.Owner {
	return []*models.Owner{
		{FirstName: "George", LastName: "Franklin", Address: "110 W. Liberty St.", City: "Madison", Telephone: "6085551023"},
		{FirstName: "Betty", LastName: "Davis", Address: "638 Cardinal Ave.", City: "Sun Prairie", Telephone: "6085551749"},
		{FirstName: "Eduardo", LastName: "Rodriquez", Address: "2693 Commerce St.", City: "McFarland", Telephone: "6085558763"},
		{FirstName: "Harold", LastName: "Davis", Address: "563 Friendly St.", City: "Windsor", Telephone: "6085553198"},
		{FirstName: "Peter", LastName: "McTavish", Address: "2387 S. Fair Way", City: "Madison", Telephone: "6085552765"},
		{FirstName: "Jean", LastName: "Coleman", Address: "105 N. Lake St.", City: "Monona", Telephone: "6085552654"},
		{FirstName: "Jeff", LastName: "Black", Address: "1450 Oak Blvd.", City: "Monona", Telephone: "6085555387"},
		{FirstName: "Maria", LastName: "Escobito", Address: "345 Maple St.", City: "Madison", Telephone: "6085557683"},
		{FirstName: "David", LastName: "Schroeder", Address: "2749 Blackhawk Trail", City: "Madison", Telephone: "6085559435"},
		{FirstName: "Carlos", LastName: "Estaban", Address: "2335 Independence La.", City: "Waunakee", Telephone: "6085555487"},
	}
}

// Seed saves the sample owners into an empty store. A store that already holds
// owners is left untouched. Returns the number of owners written.
func Seed(ctx context.Context, s Saver) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	owners := SampleOwners()
	for _, owner := range owners {
		if _, err := s.Save(ctx, owner); err != nil {
			return 0, fmt.Errorf("seed owner %s: %w", owner.FullName(), err)
		}
	}
	return len(owners), nil
}
