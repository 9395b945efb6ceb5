package data

import (
	"embed"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Open connects to the sqlite database at path, creating the parent
// directory and running pending migrations.
func Open(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create database directory")
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enable foreign keys")
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func RunMigrations(db *sqlx.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, "set migration dialect")
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return nil
}
