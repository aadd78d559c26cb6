// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/gophterms/internal/dbx"
	"github.com/dmitrijs2005/gophterms/internal/server/migrations"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/acceptances"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/collections"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook. Refresh tokens may live in a separate
// store (Redis), in which case that store is returned regardless of the DBTX.
type PostgresRepositoryManager struct {
	refreshTokens refreshtokens.Repository
}

// Option configures a PostgresRepositoryManager.
type Option func(*PostgresRepositoryManager)

// WithRefreshTokenStore makes the manager hand out r for refresh tokens.
func WithRefreshTokenStore(r refreshtokens.Repository) Option {
	return func(m *PostgresRepositoryManager) {
		m.refreshTokens = r
	}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RefreshTokens returns the configured token store, or a PostgreSQL one
// bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	if m.refreshTokens != nil {
		return m.refreshTokens
	}
	return refreshtokens.NewPostgresRepository(db)
}

// Collections returns a collections.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Collections(db dbx.DBTX) collections.Repository {
	return collections.NewPostgresRepository(db)
}

// Acceptances returns an acceptances.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Acceptances(db dbx.DBTX) acceptances.Repository {
	return acceptances.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(opts ...Option) *PostgresRepositoryManager {
	m := &PostgresRepositoryManager{}
	for _, o := range opts {
		o(m)
	}
	return m
}
