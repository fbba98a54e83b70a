package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"rz-parfum-be/internal/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	sectionUp   = "Up"
	sectionDown = "Down"
	marker      = "-- +migrate "
)

var ErrUnknownMode = errors.New("unknown mode (use up, down or status)")

type migrator struct {
	db  *sql.DB
	dir string
	log *zap.Logger
}

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()
	log := logger.L()

	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "./migrations", "directory holding the .sql migrations")
	flag.Parse()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL not set in environment")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal("failed to connect db", zap.Error(err))
	}
	defer db.Close()

	m := &migrator{db: db, dir: *dir, log: log}
	if err := m.run(context.Background(), *mode); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}

func (m *migrator) run(ctx context.Context, mode string) error {
	if _, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	files, err := m.files()
	if err != nil {
		return err
	}

	switch mode {
	case "up":
		return m.up(ctx, files)
	case "down":
		return m.down(ctx, files)
	case "status":
		return m.status(ctx, files)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// files lists the migrations in version order. Versions are the file names,
// so they must sort lexically.
func (m *migrator) files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	slices.SortFunc(files, func(a, b string) int {
		return strings.Compare(filepath.Base(a), filepath.Base(b))
	})
	return files, nil
}

func (m *migrator) applied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

func (m *migrator) up(ctx context.Context, files []string) error {
	applied := 0
	for _, file := range files {
		version := filepath.Base(file)

		done, err := m.applied(ctx, version)
		if err != nil {
			return err
		}
		if done {
			m.log.Debug("skipping applied migration", zap.String("version", version))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		m.log.Info("applying migration", zap.String("version", version))
		if err := m.inTx(ctx, section(string(content), sectionUp),
			`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("migration %s: %w", version, err)
		}
		applied++
	}
	m.log.Info("migrations applied", zap.Int("count", applied))
	return nil
}

// down rolls back the most recently applied migration only.
func (m *migrator) down(ctx context.Context, files []string) error {
	var last string
	err := m.db.QueryRowContext(ctx,
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`,
	).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		m.log.Warn("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	i := slices.IndexFunc(files, func(f string) bool { return filepath.Base(f) == last })
	if i < 0 {
		return fmt.Errorf("migration file not found for version: %s", last)
	}

	content, err := os.ReadFile(files[i])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", files[i], err)
	}

	m.log.Info("rolling back migration", zap.String("version", last))
	if err := m.inTx(ctx, section(string(content), sectionDown),
		`DELETE FROM schema_migrations WHERE version = $1`, last); err != nil {
		return fmt.Errorf("rollback %s: %w", last, err)
	}
	return nil
}

func (m *migrator) status(ctx context.Context, files []string) error {
	for _, file := range files {
		version := filepath.Base(file)
		done, err := m.applied(ctx, version)
		if err != nil {
			return err
		}
		m.log.Info("migration", zap.String("version", version), zap.Bool("applied", done))
	}
	return nil
}

// inTx runs a migration body and its bookkeeping statement atomically.
func (m *migrator) inTx(ctx context.Context, body, record, version string) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if strings.TrimSpace(body) != "" {
		if _, err := tx.ExecContext(ctx, body); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, record, version); err != nil {
		return fmt.Errorf("failed to record migration version: %w", err)
	}
	return tx.Commit()
}

// section returns the lines between "-- +migrate <name>" and the next marker.
func section(content, name string) string {
	var part strings.Builder
	in := false
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), marker) {
			if in {
				break
			}
			in = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), marker)) == name
			continue
		}
		if in {
			part.WriteString(line)
			part.WriteByte('\n')
		}
	}
	return part.String()
}
