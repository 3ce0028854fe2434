package repomanager

import (
	"context"
	"database/sql"

	"bookworm/internal/dbx"
	"bookworm/internal/server/repositories/books"
	"bookworm/internal/server/repositories/refreshtokens"
	"bookworm/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Books(db dbx.DBTX) books.Repository
}
