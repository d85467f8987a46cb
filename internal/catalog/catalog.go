/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package catalog keeps an embedded SQLite record of every render: source,
// output, preset, and the caption text indexed for full-text search. The
// database lives next to the outputs so a directory of renders stays
// searchable without any external service.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "gocaptioner/internal/log"
	"gocaptioner/internal/version"
	"log/slog"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// CatalogDirName stores the catalog database under the output root.
	CatalogDirName  = ".gcap"
	CatalogFileName = "catalog.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump on breaking
	// changes and add a migration step.
	schemaVersion = 1
)

// Path returns the full path to the catalog database under root.
func Path(root string) string {
	return filepath.Join(root, CatalogDirName, CatalogFileName)
}

// Catalog wraps the open database handle.
type Catalog struct {
	db *sql.DB
}

// Open ensures the catalog database exists under root, opens it, enables
// WAL mode, and brings the schema up to date.
func Open(root string) (*Catalog, error) {
	l := applog.WithOperation(applog.WithComponent("catalog"), "open").With(
		slog.String("root", root),
	)
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("catalog root is required")
	}
	if err := os.MkdirAll(filepath.Join(root, CatalogDirName), 0o755); err != nil {
		l.Error("create catalog dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	path := Path(root)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("catalog ready", slog.String("path", path))
	return &Catalog{db: db}, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error { return c.db.Close() }

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS renders (
			render_id     INTEGER PRIMARY KEY,
			created_at    TEXT    NOT NULL,
			source_path   TEXT    NOT NULL,
			output_path   TEXT    NOT NULL,
			preset        TEXT    NOT NULL,
			format        TEXT    NOT NULL,
			caption       TEXT    NOT NULL,
			line_count    INTEGER NOT NULL,
			canvas_width  INTEGER NOT NULL,
			canvas_height INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_renders_source ON renders(source_path);`,
		`CREATE INDEX IF NOT EXISTS idx_renders_preset ON renders(preset);`,
		`CREATE INDEX IF NOT EXISTS idx_renders_created ON renders(created_at);`,

		// Contentless FTS5 index over caption text fed via triggers.
		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_renders USING fts5(
			caption,
			content='',
			tokenize = 'unicode61'
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure catalog schema: %w", err)
		}
	}
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS renders_ai AFTER INSERT ON renders BEGIN
			INSERT INTO fts_renders(rowid, caption) VALUES (new.render_id, new.caption);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS renders_ad AFTER DELETE ON renders BEGIN
			INSERT INTO fts_renders(fts_renders, rowid, caption) VALUES ('delete', old.render_id, old.caption);
		END;`,
	}
	for _, q := range triggers {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure fts triggers: %w", err)
		}
	}
	return nil
}

// Render is one catalog entry.
type Render struct {
	ID           int64
	CreatedAt    time.Time
	SourcePath   string
	OutputPath   string
	Preset       string
	Format       string
	Caption      string
	LineCount    int
	CanvasWidth  int
	CanvasHeight int
}

// Record inserts a render entry and returns its ID.
func (c *Catalog) Record(ctx context.Context, r Render) (int64, error) {
	if strings.TrimSpace(r.OutputPath) == "" {
		return 0, errors.New("output path is required")
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO renders (created_at, source_path, output_path, preset, format, caption, line_count, canvas_width, canvas_height)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.UTC().Format(time.RFC3339), r.SourcePath, r.OutputPath, r.Preset, r.Format,
		r.Caption, r.LineCount, r.CanvasWidth, r.CanvasHeight)
	if err != nil {
		return 0, fmt.Errorf("insert render: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("render id: %w", err)
	}
	return id, nil
}
