package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"petclinic/internal/vet/models"
	"petclinic/pkg/platform/sentinel"
)

// GormStore keeps vets in any GORM dialect; the server uses it with SQLite.
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the vets, specialties and join tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Specialty{}, &models.Vet{}); err != nil {
		return fmt.Errorf("migrate vets: %w", err)
	}
	return nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]*models.Vet, error) {
	var vets []*models.Vet
	err := s.db.WithContext(ctx).
		Preload("Specialties", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Order("last_name, first_name, id").
		Find(&vets).Error
	if err != nil {
		return nil, gormError("find vets", err)
	}
	return vets, nil
}

func (s *GormStore) Add(ctx context.Context, vet *models.Vet) (*models.Vet, error) {
	saved := &models.Vet{FirstName: vet.FirstName, LastName: vet.LastName}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range specialtyNames(vet) {
			spec := &models.Specialty{}
			if err := tx.Where(models.Specialty{Name: name}).FirstOrCreate(spec).Error; err != nil {
				return err
			}
			saved.Specialties = append(saved.Specialties, spec)
		}
		return tx.Create(saved).Error
	})
	if err != nil {
		return nil, gormError("add vet", err)
	}
	saved.SortSpecialties()
	return saved, nil
}

func (s *GormStore) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Vet{}).Count(&n).Error; err != nil {
		return 0, gormError("count vets", err)
	}
	return int(n), nil
}

func gormError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
