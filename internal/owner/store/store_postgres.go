package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"petclinic/internal/owner/models"
	"petclinic/pkg/platform/sentinel"
)

const ownerColumns = `id, first_name, last_name, address, city, telephone`

// PostgresStore persists owners in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed owner store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByLastName(ctx context.Context, fragment string) ([]*models.Owner, error) {
	query := `SELECT ` + ownerColumns + `
		FROM owners
		WHERE last_name ILIKE $1 ESCAPE '\'
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, likePrefix(fragment))
	if err != nil {
		return nil, storeError("find owners by last name", err)
	}
	defer rows.Close()

	owners := make([]*models.Owner, 0)
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return nil, storeError("scan owner", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate owners", err)
	}
	return owners, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int) (*models.Owner, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM owners WHERE id = $1`, id)
	owner, err := scanOwner(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, storeError("find owner by id", err)
	}
	return owner, nil
}

// Save inserts owners without an ID and updates the rest. The returned owner
// carries the ID assigned by the database.
func (s *PostgresStore) Save(ctx context.Context, owner *models.Owner) (*models.Owner, error) {
	saved := owner.Clone()
	if saved.IsNew() {
		query := `
			INSERT INTO owners (first_name, last_name, address, city, telephone)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`
		err := s.db.QueryRowContext(ctx, query,
			saved.FirstName, saved.LastName, saved.Address, saved.City, saved.Telephone,
		).Scan(&saved.ID)
		if err != nil {
			return nil, storeError("insert owner", err)
		}
		return saved, nil
	}

	query := `
		UPDATE owners
		SET first_name = $1, last_name = $2, address = $3, city = $4, telephone = $5
		WHERE id = $6`
	res, err := s.db.ExecContext(ctx, query,
		saved.FirstName, saved.LastName, saved.Address, saved.City, saved.Telephone, saved.ID,
	)
	if err != nil {
		return nil, storeError("update owner", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, storeError("update owner rows affected", err)
	}
	if affected == 0 {
		return nil, sentinel.ErrNotFound
	}
	return saved, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM owners`).Scan(&n); err != nil {
		return 0, storeError("count owners", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row rowScanner) (*models.Owner, error) {
	var o models.Owner
	if err := row.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone); err != nil {
		return nil, err
	}
	return &o, nil
}

// storeError classifies driver failures: integrity constraint violations
// (SQLSTATE class 23) are rejections, everything else means the database
// could not serve the request.
func storeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%s: %w: %s", op, sentinel.ErrConflict, pqErr.Message)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
