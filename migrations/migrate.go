// Package migrations embeds the goose SQL migrations so the binary can bring
// the schema up to date on start without shipping loose files.
package migrations

import (
	"embed"

	"github.com/pressly/goose/v3"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed *.sql
var fs embed.FS

// Up applies all pending migrations against the given DSN.
func Up(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(fs)
	return goose.Up(db, ".")
}
