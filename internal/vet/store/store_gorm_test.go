package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"petclinic/internal/platform/database"
	"petclinic/internal/vet/models"
)

type GormVetStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *GormStore
}

func TestGormVetStoreSuite(t *testing.T) {
	suite.Run(t, new(GormVetStoreSuite))
}

func (s *GormVetStoreSuite) SetupTest() {
	db, err := database.OpenSQLite(":memory:")
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = sqlDB.Close() })

	s.ctx = context.Background()
	s.store = NewGorm(db)
	s.Require().NoError(s.store.Migrate(s.ctx))
}

func (s *GormVetStoreSuite) TestSeedAndFindAll() {
	n, err := Seed(s.ctx, s.store)
	s.Require().NoError(err)
	s.Equal(6, n)

	vets, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(vets, 6)
	s.Equal("Carter", vets[0].LastName)
	s.Empty(vets[0].Specialties)

	douglas := vets[1]
	s.Equal("Douglas", douglas.LastName)
	s.Require().Len(douglas.Specialties, 2)
	s.Equal("dentistry", douglas.Specialties[0].Name)
	s.Equal("surgery", douglas.Specialties[1].Name)
}

func (s *GormVetStoreSuite) TestSpecialtiesAreShared() {
	a, err := s.store.Add(s.ctx, &models.Vet{FirstName: "Rafael", LastName: "Ortega", Specialties: []*models.Specialty{{Name: "surgery"}}})
	s.Require().NoError(err)
	b, err := s.store.Add(s.ctx, &models.Vet{FirstName: "Linda", LastName: "Douglas", Specialties: []*models.Specialty{{Name: "Surgery"}}})
	s.Require().NoError(err)

	s.Equal(a.Specialties[0].ID, b.Specialties[0].ID)

	var count int64
	s.Require().NoError(s.store.db.Model(&models.Specialty{}).Count(&count).Error)
	s.EqualValues(1, count)
}
