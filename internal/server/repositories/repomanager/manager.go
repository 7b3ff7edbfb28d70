// Package repomanager binds the per-table repositories to a database handle
// on demand. Passing the handle per call lets the same repository code run
// against *sql.DB or an open *sql.Tx, and lets tests substitute isolated
// in-memory instances instead of a process-wide store.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/inventa-labs/inventa/internal/dbx"
	"github.com/inventa-labs/inventa/internal/server/repositories/documents"
	"github.com/inventa-labs/inventa/internal/server/repositories/logins"
	"github.com/inventa-labs/inventa/internal/server/repositories/users"
	"github.com/inventa-labs/inventa/internal/server/secrets"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
	Logins(db dbx.DBTX) logins.Repository
	Secrets(db dbx.DBTX) secrets.Store
}
