package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/guests"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/photos"
)

// RepositoryManager vends repositories bound to either a *sql.DB or a
// *sql.Tx, so services can group calls into one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Events(db dbx.DBTX) events.Repository
	Guests(db dbx.DBTX) guests.Repository
	Photos(db dbx.DBTX) photos.Repository
}
