package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/DanielPopoola/ficmart-checkout/db"
)

// Migrate applies every embedded *.up.sql file in lexical order. The scripts
// are idempotent so it is safe to run on every start.
func (d *DB) Migrate(ctx context.Context) error {
	files, err := fs.Glob(db.Migrations, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		script, err := fs.ReadFile(db.Migrations, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := d.Pool.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("execute migration %s: %w", name, err)
		}
		d.logger.Info("migration applied", "file", name)
	}
	return nil
}
