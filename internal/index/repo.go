package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/d0sboots/VaultDict/internal/apperr"
)

// WordRow represents a row in the words table. Name is the case-folded
// lookup key; Display keeps the declared spelling.
type WordRow struct {
	Name         string
	Display      string
	Equivalences []string
	Components   []string
	Glyphs       string
	UpdatedAt    time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Name    string
	Display string
	Glyphs  string
	Snippet string
}

// UpsertWord inserts or replaces a word and its FTS entry within a transaction.
func (db *DB) UpsertWord(w WordRow) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	equivJSON, _ := json.Marshal(w.Equivalences)
	compJSON, _ := json.Marshal(w.Components)

	_, err = tx.Exec(`
		INSERT INTO words (name, display, equivalences, components, glyphs, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			display      = excluded.display,
			equivalences = excluded.equivalences,
			components   = excluded.components,
			glyphs       = excluded.glyphs,
			updated_at   = excluded.updated_at
	`, w.Name, w.Display, string(equivJSON), string(compJSON), w.Glyphs, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert word: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, w.Name, w.Display, w.Equivalences, w.Components); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteWord removes a word and its FTS entry.
func (db *DB) DeleteWord(name string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, name)
	_, _ = tx.Exec(`DELETE FROM words WHERE name = ?`, name)

	return tx.Commit()
}

// GetWord returns one word row by folded name.
func (db *DB) GetWord(name string) (*WordRow, error) {
	var (
		row                 WordRow
		equivJSON, compJSON string
	)
	err := db.conn.QueryRow(`
		SELECT name, display, equivalences, components, glyphs, updated_at
		FROM words WHERE name = ?
	`, name).Scan(&row.Name, &row.Display, &equivJSON, &compJSON, &row.Glyphs, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("index: get word: %w", err)
	}
	_ = json.Unmarshal([]byte(equivJSON), &row.Equivalences)
	_ = json.Unmarshal([]byte(compJSON), &row.Components)
	return &row, nil
}

// ListWords returns paginated words sorted by name, plus the total count.
func (db *DB) ListWords(limit, offset int) ([]WordRow, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM words`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count words: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT name, display, equivalences, components, glyphs, updated_at
		FROM words ORDER BY name LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list words: %w", err)
	}
	defer rows.Close()

	var out []WordRow
	for rows.Next() {
		var (
			row                 WordRow
			equivJSON, compJSON string
		)
		if err := rows.Scan(&row.Name, &row.Display, &equivJSON, &compJSON, &row.Glyphs, &row.UpdatedAt); err != nil {
			return nil, 0, err
		}
		_ = json.Unmarshal([]byte(equivJSON), &row.Equivalences)
		_ = json.Unmarshal([]byte(compJSON), &row.Components)
		out = append(out, row)
	}
	return out, total, rows.Err()
}

// AllNames returns every indexed word name.
func (db *DB) AllNames() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT name FROM words`)
	if err != nil {
		return nil, fmt.Errorf("index: all names: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out[n] = struct{}{}
	}
	return out, rows.Err()
}
