// Package guardians provides the PostgreSQL-backed repository for the
// guardian membership table.
package guardians

import (
	"context"
	"fmt"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/dbx"
	"github.com/dkovalenko/keywarden/internal/server/models"
)

// PostgresRepository implements guardian storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all guardians ordered by the time they were added.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Guardian, error) {
	query :=
		`SELECT address, added_at FROM guardians
		 ORDER BY added_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Guardian
	for rows.Next() {
		var item models.Guardian
		if err := rows.Scan(&item.Address, &item.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Add(ctx context.Context, address string) error {
	query :=
		`INSERT INTO guardians (address)
		 VALUES ($1)
		 `

	if _, err := r.db.ExecContext(ctx, query, address); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Remove deletes a guardian row; common.ErrorNotFound when no row matched.
func (r *PostgresRepository) Remove(ctx context.Context, address string) error {
	query :=
		`DELETE FROM guardians
		 WHERE address = $1
		 `

	res, err := r.db.ExecContext(ctx, query, address)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
