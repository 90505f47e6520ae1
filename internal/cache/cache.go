/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cache is the embedded local store for UI state that survives
// restarts: the last selected tab/page, display toggles, and page snapshots
// for fast redraw before the network answers. It is derived state only; the
// backend stays authoritative.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"log/slog"

	"paneldesk/internal/domain"
	applog "paneldesk/internal/log"
	"paneldesk/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	FileName = "state.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump on breaking changes
	// and add a migration step.
	schemaVersion = 1
)

// Well-known state keys.
const (
	KeyCurrentTab       = "current_tab_id"
	KeyCurrentPage      = "current_page_id"
	KeyTheme            = "theme"
	KeySidebarCollapsed = "sidebar_collapsed"
	KeyShowMemoField    = "show_memo_field"
)

// ErrNoSnapshot is returned when no cached snapshot exists for a page.
var ErrNoSnapshot = errors.New("no cached page snapshot")

// Store wraps the embedded database.
type Store struct {
	db *sql.DB
}

// Path returns the full path of the state database inside dir.
func Path(dir string) string { return filepath.Join(dir, FileName) }

// Open ensures the state database exists under dir, enables WAL mode, and
// ensures the schema. Callers close the store when done.
func Open(dir string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("cache"), "open").With(
		slog.String("dir", dir),
	)
	if dir == "" {
		return nil, errors.New("state dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.Error("create state dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	path := Path(dir)
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
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("state store ready", slog.String("path", path))
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS state (
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
		`CREATE TABLE IF NOT EXISTS page_snapshots (
			page_id    INTEGER PRIMARY KEY,
			body       BLOB NOT NULL,
			updated_at TEXT NOT NULL
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

// Get returns the value for key, or "" when unset.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM state WHERE key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read state %q: %w", key, err)
	}
	return v, nil
}

// Set upserts a state value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("write state %q: %w", key, err)
	}
	return nil
}

// Delete removes a state value; deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM state WHERE key=?`, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

// GetID returns the stored identifier for key, or 0 when unset or malformed.
// Stale or garbage values are treated as absent, never as errors.
func (s *Store) GetID(ctx context.Context, key string) int64 {
	v, err := s.Get(ctx, key)
	if err != nil || v == "" {
		return 0
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// SetID stores an identifier; a zero id clears the key.
func (s *Store) SetID(ctx context.Context, key string, id int64) error {
	if id == 0 {
		return s.Delete(ctx, key)
	}
	return s.Set(ctx, key, strconv.FormatInt(id, 10))
}

// GetBool reads a boolean toggle, defaulting to false.
func (s *Store) GetBool(ctx context.Context, key string) bool {
	v, err := s.Get(ctx, key)
	return err == nil && v == "1"
}

// SetBool stores a boolean toggle.
func (s *Store) SetBool(ctx context.Context, key string, on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return s.Set(ctx, key, v)
}

// SavePageSnapshot caches the page including sections for fast redraw on the
// next start.
func (s *Store) SavePageSnapshot(ctx context.Context, page *domain.Page) error {
	body, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode page snapshot: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO page_snapshots(page_id, body, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(page_id) DO UPDATE SET body=excluded.body, updated_at=excluded.updated_at`,
		page.ID, body, now)
	if err != nil {
		return fmt.Errorf("write page snapshot: %w", err)
	}
	return nil
}

// LoadPageSnapshot returns the cached page, or ErrNoSnapshot.
func (s *Store) LoadPageSnapshot(ctx context.Context, pageID int64) (*domain.Page, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM page_snapshots WHERE page_id=?`, pageID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read page snapshot: %w", err)
	}
	var page domain.Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode page snapshot: %w", err)
	}
	return &page, nil
}

// DeletePageSnapshot drops the cached copy, used when a page is deleted.
func (s *Store) DeletePageSnapshot(ctx context.Context, pageID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM page_snapshots WHERE page_id=?`, pageID); err != nil {
		return fmt.Errorf("delete page snapshot: %w", err)
	}
	return nil
}
