package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/samirrijal/tripmap/internal/adapters/postgres"
	"github.com/samirrijal/tripmap/internal/pkg/config"
)

const (
	migrationsDir = "migrations"
	downSuffix    = ".down.sql"
)

type migration struct {
	version string
	up      string
	down    string
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|down|status>")
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load("tripmap-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	if _, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		log.Fatalf("schema_migrations: %v", err)
	}

	all, err := discover(migrationsDir)
	if err != nil {
		log.Fatalf("discover: %v", err)
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		log.Fatalf("applied versions: %v", err)
	}

	switch os.Args[1] {
	case "up":
		n := 0
		for _, m := range all {
			if applied[m.version] {
				continue
			}
			if err := apply(ctx, db, m.up, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.version); err != nil {
				log.Fatalf("up %s: %v", m.version, err)
			}
			fmt.Printf("UP    %s\n", m.version)
			n++
		}
		log.Printf("%d migration(s) applied", n)
	case "down":
		for i := len(all) - 1; i >= 0; i-- {
			m := all[i]
			if !applied[m.version] {
				continue
			}
			if m.down == "" {
				log.Fatalf("down %s: no %s file", m.version, downSuffix)
			}
			if err := apply(ctx, db, m.down, `DELETE FROM schema_migrations WHERE version = $1`, m.version); err != nil {
				log.Fatalf("down %s: %v", m.version, err)
			}
			fmt.Printf("DOWN  %s\n", m.version)
			return
		}
		log.Println("nothing to roll back")
	case "status":
		for _, m := range all {
			state := "pending"
			if applied[m.version] {
				state = "applied"
			}
			fmt.Printf("%-8s %s\n", state, m.version)
		}
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

// discover pairs NNN_name.sql files with their optional NNN_name.down.sql.
func discover(dir string) ([]migration, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	byVersion := make(map[string]*migration)
	for _, f := range files {
		base := filepath.Base(f)
		version := strings.TrimSuffix(strings.TrimSuffix(base, downSuffix), ".sql")
		m, ok := byVersion[version]
		if !ok {
			m = &migration{version: version}
			byVersion[version] = m
		}
		if strings.HasSuffix(base, downSuffix) {
			m.down = f
		} else {
			m.up = f
		}
	}

	out := make([]migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.up == "" {
			return nil, fmt.Errorf("%s has a down file but no up file", m.version)
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func appliedVersions(ctx context.Context, db *postgres.DB) (map[string]bool, error) {
	rows, err := db.Pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(versions))
	for _, v := range versions {
		out[v] = true
	}
	return out, nil
}

// apply runs a migration file and its bookkeeping statement in one transaction.
func apply(ctx context.Context, db *postgres.DB, file, bookkeeping, version string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(data)); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, bookkeeping, version)
		return err
	})
}
