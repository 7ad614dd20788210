package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"petclinic/internal/owner/models"
	"petclinic/pkg/platform/sentinel"
)

var ownerUpdateColumns = []string{"first_name", "last_name", "address", "city", "telephone"}

// GormStore persists owners through GORM. It backs the embedded SQLite mode.
type GormStore struct {
	db *gorm.DB
}

// NewGorm constructs a GORM-backed owner store. Call Migrate before first use
// on a fresh database.
func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the owners table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Owner{}); err != nil {
		return gormError("migrate owners", err)
	}
	return nil
}

func (s *GormStore) FindByLastName(ctx context.Context, fragment string) ([]*models.Owner, error) {
	owners := make([]*models.Owner, 0)
	err := s.db.WithContext(ctx).
		Where(`LOWER(last_name) LIKE ? ESCAPE '\'`, strings.ToLower(likePrefix(fragment))).
		Order("id").
		Find(&owners).Error
	if err != nil {
		return nil, gormError("find owners by last name", err)
	}
	return owners, nil
}

func (s *GormStore) FindByID(ctx context.Context, id int) (*models.Owner, error) {
	var owner models.Owner
	err := s.db.WithContext(ctx).First(&owner, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sentinel.ErrNotFound
		}
		return nil, gormError("find owner by id", err)
	}
	return &owner, nil
}

func (s *GormStore) Save(ctx context.Context, owner *models.Owner) (*models.Owner, error) {
	saved := owner.Clone()
	if saved.IsNew() {
		if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
			return nil, gormError("insert owner", err)
		}
		return saved, nil
	}

	res := s.db.WithContext(ctx).
		Model(&models.Owner{ID: saved.ID}).
		Select(ownerUpdateColumns).
		Updates(saved)
	if res.Error != nil {
		return nil, gormError("update owner", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, sentinel.ErrNotFound
	}
	return saved, nil
}

func (s *GormStore) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Owner{}).Count(&n).Error; err != nil {
		return 0, gormError("count owners", err)
	}
	return int(n), nil
}

func gormError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
