/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SearchQuery describes a catalog search.
// Text uses SQLite FTS5 syntax (simple terms, phrases in quotes, AND/OR/NOT)
// against the recorded caption text. Filters are optional.
// Limit/Offset implement pagination; reasonable defaults applied if zero.
type SearchQuery struct {
	Text   string
	Preset string
	Format string
	Limit  int
	Offset int
}

// SearchResult is a single match. Snippet is a highlighted excerpt using
// [ ] markers when FTS text is used, empty otherwise.
type SearchResult struct {
	Render
	Snippet string
}

// Search runs full-text search with optional filters. When q.Text is empty,
// it falls back to a filtered scan ordered by recency.
func (c *Catalog) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	var args []any
	var sb strings.Builder
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		sb.WriteString("SELECT r.render_id, r.created_at, r.source_path, r.output_path, r.preset, r.format, r.caption, r.line_count, r.canvas_width, r.canvas_height, snippet(fts_renders, 0, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_renders JOIN renders r ON fts_renders.rowid = r.render_id\n")
		sb.WriteString("WHERE fts_renders MATCH ?\n")
		args = append(args, q.Text)
	} else {
		sb.WriteString("SELECT r.render_id, r.created_at, r.source_path, r.output_path, r.preset, r.format, r.caption, r.line_count, r.canvas_width, r.canvas_height, ''\n")
		sb.WriteString("FROM renders r\nWHERE 1=1\n")
	}
	if s := strings.TrimSpace(q.Preset); s != "" {
		sb.WriteString(" AND r.preset = ?\n")
		args = append(args, s)
	}
	if s := strings.TrimSpace(q.Format); s != "" {
		sb.WriteString(" AND r.format = ?\n")
		args = append(args, strings.ToLower(s))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	sb.WriteString("ORDER BY r.created_at DESC, r.render_id DESC\n")
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	rows, err := c.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var created string
		var sn sql.NullString
		if err := rows.Scan(&r.ID, &created, &r.SourcePath, &r.OutputPath, &r.Preset, &r.Format,
			&r.Caption, &r.LineCount, &r.CanvasWidth, &r.CanvasHeight, &sn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if ts, perr := time.Parse(time.RFC3339, created); perr == nil {
			r.CreatedAt = ts
		}
		if sn.Valid {
			r.Snippet = sn.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Recent returns the latest renders, newest first.
func (c *Catalog) Recent(ctx context.Context, limit int) ([]SearchResult, error) {
	return c.Search(ctx, SearchQuery{Limit: limit})
}
