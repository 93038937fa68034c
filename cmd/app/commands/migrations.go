package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrateOptions selects the schema to migrate and the direction to move in.
type MigrateOptions struct {
	Driver string
	DSN    string
	// Dir holds one subdirectory per engine (postgresql, mysql).
	Dir string
	// Down rolls every migration back instead of applying pending ones.
	Down bool
}

// migrationTarget resolves the source and database URLs golang-migrate expects
// for opts.
func migrationTarget(opts MigrateOptions) (string, string, error) {
	var engineDir string
	dsn := opts.DSN
	switch opts.Driver {
	case "postgres":
		engineDir = "postgresql"
	case "mysql":
		engineDir = "mysql"
		if !strings.HasPrefix(dsn, "mysql://") {
			dsn = "mysql://" + dsn
		}
	default:
		return "", "", fmt.Errorf("unsupported database driver for migrations: %q", opts.Driver)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "migrations"
	}
	return "file://" + filepath.ToSlash(filepath.Join(dir, engineDir)), dsn, nil
}

// RunMigrations moves the secret_records schema up to the latest version, or all
// the way down when opts.Down is set, then reports the resulting version.
func RunMigrations(logger *slog.Logger, writer io.Writer, opts MigrateOptions) error {
	sourceURL, databaseURL, err := migrationTarget(opts)
	if err != nil {
		return err
	}

	logger.Info("running database migrations",
		slog.String("driver", opts.Driver),
		slog.String("source", sourceURL),
		slog.Bool("down", opts.Down),
	)

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	apply := m.Up
	if opts.Down {
		apply = m.Down
	}
	if err := apply(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		_, err = fmt.Fprintln(writer, "Schema version: none")
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	default:
		_, err = fmt.Fprintf(writer, "Schema version: %d (dirty: %t)\n", version, dirty)
	}

	logger.Info("migrations completed successfully")
	return err
}
