package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophterms/internal/dbx"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/acceptances"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/collections"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophterms/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Collections(db dbx.DBTX) collections.Repository
	Acceptances(db dbx.DBTX) acceptances.Repository
}
