// Package recoveries provides PostgreSQL-backed repositories for recovery
// requests and their guardian approvals.
package recoveries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkovalenko/keywarden/internal/common"
	"github.com/dkovalenko/keywarden/internal/dbx"
	"github.com/dkovalenko/keywarden/internal/server/models"
)

// PostgresRepository implements recovery storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetActive returns the single active recovery request, or
// common.ErrorNotFound if none is pending.
func (r *PostgresRepository) GetActive(ctx context.Context) (*models.RecoveryRequest, error) {
	query :=
		`SELECT id, new_owner, active, created_at FROM recovery_requests
		 WHERE active
		 `

	req := &models.RecoveryRequest{}
	err := r.db.QueryRowContext(ctx, query).Scan(&req.ID, &req.NewOwner, &req.Active, &req.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return req, nil
}

func (r *PostgresRepository) Create(ctx context.Context, req *models.RecoveryRequest) error {
	query :=
		`INSERT INTO recovery_requests (id, new_owner, active, created_at)
		 VALUES ($1, $2, true, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, req.ID, req.NewOwner, req.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Deactivate closes a request; common.ErrorNotFound when no active row matched.
func (r *PostgresRepository) Deactivate(ctx context.Context, id string) error {
	query :=
		`UPDATE recovery_requests SET active = false
		 WHERE id = $1 AND active
		 `

	res, err := r.db.ExecContext(ctx, query, id)
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

func (r *PostgresRepository) AddApproval(ctx context.Context, requestID string, guardian string) error {
	query :=
		`INSERT INTO recovery_approvals (request_id, guardian)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, requestID, guardian); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListApprovals returns the guardian addresses that approved the request,
// ordered by approval time.
func (r *PostgresRepository) ListApprovals(ctx context.Context, requestID string) ([]string, error) {
	query :=
		`SELECT guardian FROM recovery_approvals
		 WHERE request_id = $1
		 ORDER BY approved_at
		 `

	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
