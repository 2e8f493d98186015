// Package accounts provides the PostgreSQL-backed repository for the
// singleton vault account row.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/dbx"
	"github.com/dkovalenko/keywarden/internal/server/models"
)

// PostgresRepository implements account storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the singleton account row, or common.ErrorNotFound if the
// vault has not been bootstrapped yet.
func (r *PostgresRepository) Get(ctx context.Context) (*models.Account, error) {
	query :=
		`SELECT id, owner, paused, updated_at FROM account
		 WHERE id = 1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query).Scan(&account.ID, &account.Owner, &account.Paused, &account.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// Create inserts the singleton row with the initial owner.
func (r *PostgresRepository) Create(ctx context.Context, owner string) error {
	query :=
		`INSERT INTO account (id, owner)
		 VALUES (1, $1)
		 `

	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetOwner(ctx context.Context, owner string) error {
	query :=
		`UPDATE account SET owner = $1, updated_at = now()
		 WHERE id = 1
		 `

	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetPaused(ctx context.Context, paused bool) error {
	query :=
		`UPDATE account SET paused = $1, updated_at = now()
		 WHERE id = 1
		 `

	if _, err := r.db.ExecContext(ctx, query, paused); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
