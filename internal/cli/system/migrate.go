package system

import (
	"fmt"

	"github.com/julianstephens/goaltrack/internal/cli"
	"github.com/julianstephens/goaltrack/internal/migration"
	"github.com/julianstephens/goaltrack/internal/storage"
	"github.com/julianstephens/goaltrack/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	var runner *migration.Runner
	switch store := ctx.Store.(type) {
	case *storage.SQLiteStore:
		db := store.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		runner = migration.NewRunner(db, migrations.SQLite(), migration.DialectSQLite)
	case *storage.PostgresStore:
		db := store.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		runner = migration.NewRunner(db, migrations.Postgres(), migration.DialectPostgres)
	default:
		return fmt.Errorf("unsupported storage backend")
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
