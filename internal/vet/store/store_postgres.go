package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"petclinic/internal/vet/models"
	"petclinic/pkg/platform/sentinel"
	"petclinic/pkg/platform/tx"
)

// PostgresStore reads vets and their specialties from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.Vet, error) {
	query := `
		SELECT v.id, v.first_name, v.last_name, sp.id, sp.name
		FROM vets v
		LEFT JOIN vet_specialties vs ON vs.vet_id = v.id
		LEFT JOIN specialties sp ON sp.id = vs.specialty_id
		ORDER BY v.last_name, v.first_name, v.id, sp.name`
	rows, err := tx.Executor(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("find vets", err)
	}
	defer rows.Close()

	vets := make([]*models.Vet, 0)
	var current *models.Vet
	for rows.Next() {
		var (
			v      models.Vet
			specID sql.NullInt64
			name   sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &specID, &name); err != nil {
			return nil, storeError("scan vet", err)
		}
		if current == nil || current.ID != v.ID {
			current = &v
			vets = append(vets, current)
		}
		if specID.Valid {
			current.Specialties = append(current.Specialties, &models.Specialty{ID: int(specID.Int64), Name: name.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate vets", err)
	}
	return vets, nil
}

// Add inserts a vet and links its specialties, creating missing specialties,
// in one transaction.
func (s *PostgresStore) Add(ctx context.Context, vet *models.Vet) (*models.Vet, error) {
	saved := &models.Vet{FirstName: vet.FirstName, LastName: vet.LastName}
	err := tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.Executor(ctx, s.db)
		err := exec.QueryRowContext(ctx,
			`INSERT INTO vets (first_name, last_name) VALUES ($1, $2) RETURNING id`,
			saved.FirstName, saved.LastName,
		).Scan(&saved.ID)
		if err != nil {
			return storeError("insert vet", err)
		}

		for _, name := range specialtyNames(vet) {
			specialty := &models.Specialty{Name: name}
			err := exec.QueryRowContext(ctx, `
				INSERT INTO specialties (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id`, name,
			).Scan(&specialty.ID)
			if err != nil {
				return storeError("upsert specialty", err)
			}
			if _, err := exec.ExecContext(ctx,
				`INSERT INTO vet_specialties (vet_id, specialty_id) VALUES ($1, $2)`,
				saved.ID, specialty.ID,
			); err != nil {
				return storeError("link vet specialty", err)
			}
			saved.Specialties = append(saved.Specialties, specialty)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	saved.SortSpecialties()
	return saved, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.Executor(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM vets`).Scan(&n); err != nil {
		return 0, storeError("count vets", err)
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
