// Package registry persists the scan roots a user has registered and the
// history of scans run against them, in a single SQLite database.
package registry

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bakerapp/baker/internal/logging"
	"github.com/bakerapp/baker/internal/scanner"
)

//go:embed schema.sql
var schemaFS embed.FS

var (
	ErrRootNotFound = errors.New("scan root not found")
	ErrScanNotFound = errors.New("scan not found")
)

// Root is a directory the user scans for project folders.
type Root struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Path      string `json:"path"`
	Label     string `json:"label,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// ScanRecord is one row of scan history for a root.
type ScanRecord struct {
	ID              string `json:"id"`
	RootID          string `json:"root_id"`
	StartedAt       int64  `json:"started_at"`
	FinishedAt      int64  `json:"finished_at,omitempty"`
	Status          string `json:"status"`
	TotalFolders    int    `json:"total_folders"`
	ValidProjects   int    `json:"valid_projects"`
	TotalFolderSize uint64 `json:"total_folder_size"`
}

// Registry manages roots and scan history in SQLite.
type Registry struct {
	db     *sql.DB
	logger logging.Logger
}

// NewRegistry runs migrations from schema.sql and sets pragmas.
// db should be the SQLite DB at <storage root>/baker.db.
func NewRegistry(db *sql.DB, logger logging.Logger) (*Registry, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Registry{db: db, logger: logger}, nil
}

// normalizeSlug makes a slug safe and simple.
func normalizeSlug(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = uuid.New().String()[:8]
	}
	return out
}

// CreateRoot registers a scan root. An empty slug is derived from the label
// or path.
func (r *Registry) CreateRoot(ctx context.Context, slug, path, label string) (*Root, error) {
	if path == "" {
		return nil, fmt.Errorf("root path is required")
	}
	if slug == "" {
		if label != "" {
			slug = label
		} else {
			slug = path
		}
	}
	slug = normalizeSlug(slug)

	root := &Root{
		ID:        uuid.New().String(),
		Slug:      slug,
		Path:      path,
		Label:     label,
		CreatedAt: time.Now().Unix(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roots (id, slug, path, label, created_at) VALUES (?, ?, ?, ?, ?)`,
		root.ID, root.Slug, root.Path, root.Label, root.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert root: %w", err)
	}
	return root, nil
}

// GetRootBySlug returns a root by slug, or ErrRootNotFound.
func (r *Registry) GetRootBySlug(ctx context.Context, slug string) (*Root, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, slug, path, label, created_at FROM roots WHERE slug = ? LIMIT 1`,
		normalizeSlug(slug),
	)
	var root Root
	if err := row.Scan(&root.ID, &root.Slug, &root.Path, &root.Label, &root.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRootNotFound
		}
		return nil, err
	}
	return &root, nil
}

// ListRoots returns all registered roots, newest first.
func (r *Registry) ListRoots(ctx context.Context) ([]Root, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, slug, path, label, created_at FROM roots ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roots []Root
	for rows.Next() {
		var root Root
		if err := rows.Scan(&root.ID, &root.Slug, &root.Path, &root.Label, &root.CreatedAt); err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, rows.Err()
}

// RecordScanStart inserts a running scan row and returns its id.
func (r *Registry) RecordScanStart(ctx context.Context, rootID string) (string, error) {
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scans (id, root_id, started_at, status) VALUES (?, ?, ?, 'running')`,
		id, rootID, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("insert scan: %w", err)
	}
	return id, nil
}

// RecordScanFinish closes a scan row with its final status and totals.
func (r *Registry) RecordScanFinish(ctx context.Context, scanID, status string, result *scanner.Result) error {
	var folders, projects int
	var size uint64
	if result != nil {
		folders = result.TotalFolders
		projects = result.ValidProjects
		size = result.TotalFolderSize
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE scans SET finished_at = ?, status = ?, total_folders = ?, valid_projects = ?, total_folder_size = ?
         WHERE id = ?`,
		time.Now().Unix(), status, folders, projects, size, scanID,
	)
	if err != nil {
		return fmt.Errorf("update scan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrScanNotFound
	}
	return nil
}

// ListScans returns recent scan history for a root, newest first.
func (r *Registry) ListScans(ctx context.Context, rootID string, limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, root_id, started_at, COALESCE(finished_at, 0), status, total_folders, valid_projects, total_folder_size
         FROM scans WHERE root_id = ? ORDER BY started_at DESC LIMIT ?`,
		rootID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		if err := rows.Scan(&rec.ID, &rec.RootID, &rec.StartedAt, &rec.FinishedAt, &rec.Status,
			&rec.TotalFolders, &rec.ValidProjects, &rec.TotalFolderSize); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
