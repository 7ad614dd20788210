//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"petclinic/internal/owner/models"
	"petclinic/internal/platform/database"
	"petclinic/pkg/platform/sentinel"
	"petclinic/pkg/testutil/containers"
)

type PostgresStoreIntegrationSuite struct {
	suite.Suite
	ctx      context.Context
	postgres *containers.PostgresContainer
	store    *PostgresStore
}

func TestPostgresStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreIntegrationSuite))
}

func (s *PostgresStoreIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(database.ApplySchema(s.ctx, s.postgres.DB))
	s.store = NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreIntegrationSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(s.ctx, "owners"))
	_, err := Seed(s.ctx, s.store)
	s.Require().NoError(err)
}

func (s *PostgresStoreIntegrationSuite) TestFindByLastName() {
	s.Run("prefix match ignores case", func() {
		owners, err := s.store.FindByLastName(s.ctx, "dAv")
		s.Require().NoError(err)
		s.Len(owners, 2)
		s.Less(owners[0].ID, owners[1].ID)
	})

	s.Run("wildcards in the fragment are literal", func() {
		owners, err := s.store.FindByLastName(s.ctx, "%")
		s.Require().NoError(err)
		s.Empty(owners)
	})

	s.Run("empty fragment matches everyone", func() {
		owners, err := s.store.FindByLastName(s.ctx, "")
		s.Require().NoError(err)
		s.Len(owners, len(SampleOwners()))
	})
}

func (s *PostgresStoreIntegrationSuite) TestSaveRoundTrip() {
	created, err := s.store.Save(s.ctx, &models.Owner{
		FirstName: "Sam", LastName: "Schultz", Address: "4, Evans Street", City: "Wollongong", Telephone: "4444444444",
	})
	s.Require().NoError(err)
	s.NotZero(created.ID)

	created.City = "Sydney"
	_, err = s.store.Save(s.ctx, created)
	s.Require().NoError(err)

	stored, err := s.store.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Sydney", stored.City)

	_, err = s.store.Save(s.ctx, &models.Owner{ID: 9999, LastName: "Ghost"})
	s.ErrorIs(err, sentinel.ErrNotFound)
}
