package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	// Registers the "pgx" database/sql driver used by OpenSQL.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/YelzhanWeb/basecart/internal/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one embedded schema file.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded schema files in name order.
func Migrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		out = append(out, Migration{Name: name, SQL: string(body)})
	}
	return out, nil
}

// Apply executes every migration in order. The files are idempotent, so
// Apply is safe to run on each start.
func Apply(ctx context.Context, db *sql.DB) error {
	migrations, err := Migrations()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
		}
	}
	return nil
}

// OpenSQL opens a database/sql handle through the pgx driver.
func OpenSQL(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
