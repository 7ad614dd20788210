package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"petclinic/internal/vet/models"
)

type VetStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
}

func TestVetStoreSuite(t *testing.T) {
	suite.Run(t, new(VetStoreSuite))
}

func (s *VetStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
}

func (s *VetStoreSuite) TestSeedAndFindAll() {
	n, err := Seed(s.ctx, s.store)
	s.Require().NoError(err)
	s.Equal(6, n)

	vets, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(vets, 6)

	s.Equal("Carter", vets[0].LastName)
	s.Equal("Stevens", vets[5].LastName)

	var douglas *models.Vet
	for _, v := range vets {
		if v.LastName == "Douglas" {
			douglas = v
		}
	}
	s.Require().NotNil(douglas)
	s.Require().Len(douglas.Specialties, 2)
	s.Equal("dentistry", douglas.Specialties[0].Name)
	s.Equal("surgery", douglas.Specialties[1].Name)
}

func (s *VetStoreSuite) TestSeedIsNoOpWhenPopulated() {
	_, err := s.store.Add(s.ctx, &models.Vet{FirstName: "Ada", LastName: "Lovelace"})
	s.Require().NoError(err)

	n, err := Seed(s.ctx, s.store)
	s.Require().NoError(err)
	s.Zero(n)

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *VetStoreSuite) TestSpecialtiesAreInterned() {
	a, err := s.store.Add(s.ctx, &models.Vet{LastName: "A", Specialties: []*models.Specialty{{Name: " Surgery "}, {Name: "surgery"}}})
	s.Require().NoError(err)
	b, err := s.store.Add(s.ctx, &models.Vet{LastName: "B", Specialties: []*models.Specialty{{Name: "surgery"}}})
	s.Require().NoError(err)

	s.Require().Len(a.Specialties, 1)
	s.Equal("surgery", a.Specialties[0].Name)
	s.Equal(a.Specialties[0].ID, b.Specialties[0].ID)
}

func (s *VetStoreSuite) TestFindAllReturnsCopies() {
	_, err := s.store.Add(s.ctx, &models.Vet{LastName: "Leary", Specialties: []*models.Specialty{{Name: "radiology"}}})
	s.Require().NoError(err)

	first, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	first[0].Specialties[0].Name = "mutated"

	second, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal("radiology", second[0].Specialties[0].Name)
}

func (s *VetStoreSuite) TestCancelledContextIsHonoured() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.store.FindAll(ctx)
	s.ErrorIs(err, context.Canceled)
	_, err = s.store.Add(ctx, &models.Vet{LastName: "Carter"})
	s.ErrorIs(err, context.Canceled)
	_, err = s.store.Count(ctx)
	s.ErrorIs(err, context.Canceled)
}
