// Package storage persists marketplace items in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"mercari/internal/item"

	_ "github.com/mattn/go-sqlite3"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			image_name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_name ON items(name)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// AddItem inserts it and returns it with its assigned ID.
func (s *Store) AddItem(ctx context.Context, it item.Item) (item.Item, error) {
	if err := it.Validate(); err != nil {
		return item.Item{}, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (name, category, image_name) VALUES (?, ?, ?)`,
		it.Name, it.Category, it.ImageName)
	if err != nil {
		return item.Item{}, fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return item.Item{}, fmt.Errorf("insert item: %w", err)
	}
	it.ID = id
	return it, nil
}

// ListItems returns all items in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]item.Item, error) {
	return s.query(ctx, `SELECT id, name, category, image_name FROM items ORDER BY id`)
}

// SearchItems returns items whose name contains keyword.
func (s *Store) SearchItems(ctx context.Context, keyword string) ([]item.Item, error) {
	return s.query(ctx,
		`SELECT id, name, category, image_name FROM items WHERE name LIKE '%' || ? || '%' ORDER BY id`,
		keyword)
}

// GetItem returns the item with id, or nil if there is none.
func (s *Store) GetItem(ctx context.Context, id int64) (*item.Item, error) {
	var it item.Item
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, image_name FROM items WHERE id = ?`, id).
		Scan(&it.ID, &it.Name, &it.Category, &it.ImageName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *Store) query(ctx context.Context, q string, args ...interface{}) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []item.Item{}
	for rows.Next() {
		var it item.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.ImageName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
