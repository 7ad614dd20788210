package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"petclinic/internal/pettype/models"
	"petclinic/pkg/platform/sentinel"
	pstrings "petclinic/pkg/platform/strings"
)

// GormStore keeps pet types in any GORM dialect; the server uses it with SQLite.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the types table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.PetType{}); err != nil {
		return fmt.Errorf("migrate pet types: %w", err)
	}
	return nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]*models.PetType, error) {
	var types []*models.PetType
	if err := s.db.WithContext(ctx).Order("name, id").Find(&types).Error; err != nil {
		return nil, gormError("find pet types", err)
	}
	return types, nil
}

func (s *GormStore) Add(ctx context.Context, petType *models.PetType) (*models.PetType, error) {
	saved := &models.PetType{Name: pstrings.FoldKey(petType.Name)}
	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		return nil, gormError("add pet type", err)
	}
	return saved, nil
}

func (s *GormStore) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.PetType{}).Count(&n).Error; err != nil {
		return 0, gormError("count pet types", err)
	}
	return int(n), nil
}

func gormError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
