package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkovalenko/keywarden/internal/dbx"
	"github.com/dkovalenko/keywarden/internal/server/repositories/accounts"
	"github.com/dkovalenko/keywarden/internal/server/repositories/audit"
	"github.com/dkovalenko/keywarden/internal/server/repositories/guardians"
	"github.com/dkovalenko/keywarden/internal/server/repositories/recoveries"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Guardians(db dbx.DBTX) guardians.Repository
	Recoveries(db dbx.DBTX) recoveries.Repository
	Audit(db dbx.DBTX) audit.Repository
}
