package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration es un archivo SQL embebido y, si ya se aplicó, su fecha.
type Migration struct {
	Version   string
	SQL       string
	AppliedAt *time.Time
}

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// loadMigrations lee los .sql embebidos ordenados por nombre (0001_, 0002_, ...).
func loadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var list []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := fs.ReadFile(fsys, "migrations/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		list = append(list, Migration{Version: strings.TrimSuffix(e.Name(), ".sql"), SQL: string(b)})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	return list, nil
}

// Migrator aplica las migraciones embebidas y registra cada versión en schema_migrations.
type Migrator struct {
	db   DB
	fsys fs.FS
}

// NewMigrator construye el migrador sobre el pool.
func NewMigrator(db DB) *Migrator {
	return &Migrator{db: db, fsys: migrationFiles}
}

// Status devuelve todas las migraciones conocidas con su fecha de aplicación (nil si pendiente).
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	list, err := loadMigrations(m.fsys)
	if err != nil {
		return nil, err
	}
	if _, err := m.db.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("crear schema_migrations: %w", err)
	}
	rows, err := m.db.Query(ctx, `SELECT version, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("leer schema_migrations: %w", err)
	}
	defer rows.Close()
	applied := map[string]time.Time{}
	for rows.Next() {
		var v string
		var at time.Time
		if err := rows.Scan(&v, &at); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[v] = at
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range list {
		if at, ok := applied[list[i].Version]; ok {
			at := at
			list[i].AppliedAt = &at
		}
	}
	return list, nil
}

// Up aplica en orden las migraciones pendientes, cada una en su propia transacción.
// Devuelve las versiones aplicadas.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	list, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}
	var done []string
	for _, mig := range list {
		if mig.AppliedAt != nil {
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return done, err
		}
		done = append(done, mig.Version)
	}
	return done, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s: %w", mig.Version, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, mig.SQL); err != nil {
		return fmt.Errorf("aplicar %s: %w", mig.Version, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
		return fmt.Errorf("registrar %s: %w", mig.Version, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", mig.Version, err)
	}
	return nil
}
