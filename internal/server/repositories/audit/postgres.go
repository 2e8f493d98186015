// Package audit provides the PostgreSQL-backed repository for the
// append-only audit trail.
package audit

import (
	"context"
	"fmt"

	"github.com/dkovalenko/keywarden/internal/dbx"
	"github.com/dkovalenko/keywarden/internal/server/models"
)

// PostgresRepository implements audit storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, event *models.AuditEvent) error {
	query :=
		`INSERT INTO audit_events (id, event_type, actor, subject, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	if _, err := r.db.ExecContext(ctx, query,
		event.ID, event.EventType, event.Actor, event.Subject, event.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListRecent returns the newest events first, capped at limit.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*models.AuditEvent, error) {
	query :=
		`SELECT id, event_type, actor, subject, created_at FROM audit_events
		 ORDER BY created_at DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AuditEvent
	for rows.Next() {
		var item models.AuditEvent
		if err := rows.Scan(&item.ID, &item.EventType, &item.Actor, &item.Subject, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
