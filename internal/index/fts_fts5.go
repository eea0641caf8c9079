//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS words_fts USING fts5(
			name UNINDEXED,
			display,
			equivalences,
			components,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, name, display string, equivalences, components []string) error {
	_, _ = tx.Exec(`DELETE FROM words_fts WHERE name = ?`, name)
	_, err := tx.Exec(`INSERT INTO words_fts (name, display, equivalences, components) VALUES (?, ?, ?, ?)`,
		name, display, strings.Join(equivalences, " "), strings.Join(components, " "))
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, name string) {
	_, _ = tx.Exec(`DELETE FROM words_fts WHERE name = ?`, name)
}

// Search performs an FTS5 full-text search over display names, equivalences,
// and component lists.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT f.name,
		       w.display,
		       w.glyphs,
		       snippet(words_fts, 1, '<b>', '</b>', '...', 16)
		FROM words_fts f
		JOIN words w ON w.name = f.name
		WHERE words_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Name, &r.Display, &r.Glyphs, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
