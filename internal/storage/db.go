// Package storage opens the on-device SQLite database that backs every
// antara slot and keeps its schema current.
//
// The database holds a single table, slots(key, value), which plays the
// role of a browser's key/value storage: each feature collection, the
// preferences, and the PIN credential each live in one named slot.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/antara/internal/logging"
	"github.com/dmitrijs2005/antara/internal/storage/migrations"

	_ "modernc.org/sqlite"
)

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// Open opens (creating if needed) the database at dsn and applies pending
// migrations. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, dsn string, logger logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One logical writer; this also keeps ":memory:" to a single database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// RunMigrations applies the embedded migrations. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{ctx: ctx, l: logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// gooseLogger routes goose output through our logger at debug level.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(g.ctx, "goose", "msg", fmt.Sprintf(format, v...))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, "goose", "msg", fmt.Sprintf(format, v...))
}
