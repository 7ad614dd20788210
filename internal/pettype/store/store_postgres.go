package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"petclinic/internal/pettype/models"
	"petclinic/pkg/platform/sentinel"
	pstrings "petclinic/pkg/platform/strings"
	"petclinic/pkg/platform/tx"
)

// PostgresStore reads pet types from the types table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.PetType, error) {
	rows, err := tx.Executor(ctx, s.db).QueryContext(ctx, `SELECT id, name FROM types ORDER BY name, id`)
	if err != nil {
		return nil, storeError("find pet types", err)
	}
	defer rows.Close()

	types := make([]*models.PetType, 0)
	for rows.Next() {
		var t models.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, storeError("scan pet type", err)
		}
		types = append(types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate pet types", err)
	}
	return types, nil
}

func (s *PostgresStore) Add(ctx context.Context, petType *models.PetType) (*models.PetType, error) {
	saved := &models.PetType{Name: pstrings.FoldKey(petType.Name)}
	err := tx.Executor(ctx, s.db).QueryRowContext(ctx,
		`INSERT INTO types (name) VALUES ($1) RETURNING id`, saved.Name,
	).Scan(&saved.ID)
	if err != nil {
		return nil, storeError("insert pet type", err)
	}
	return saved, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.Executor(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM types`).Scan(&n); err != nil {
		return 0, storeError("count pet types", err)
	}
	return n, nil
}

func storeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%s: %w: %s", op, sentinel.ErrConflict, pqErr.Message)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
