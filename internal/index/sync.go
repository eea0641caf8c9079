package index

import (
	"log/slog"
	"time"

	"github.com/d0sboots/VaultDict/internal/lexicon"
	"github.com/d0sboots/VaultDict/internal/script"
)

// Sync brings the index in line with a lexicon snapshot:
//   - every resolved word is upserted
//   - rows for words no longer declared are deleted
func Sync(db *DB, snap *lexicon.Snapshot, logger *slog.Logger) error {
	names, err := db.AllNames()
	if err != nil {
		return err
	}

	now := time.Now()
	current := make(map[string]struct{})
	for _, e := range snap.Entries() {
		key := script.FoldName(e.Name)
		current[key] = struct{}{}
		row := WordRow{
			Name:         key,
			Display:      e.Name,
			Equivalences: e.Equivalences,
			Components:   e.Components,
			Glyphs:       e.Glyphs,
			UpdatedAt:    now,
		}
		if err := db.UpsertWord(row); err != nil {
			logger.Warn("sync: upsert failed", slog.String("name", e.Name), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("name", e.Name))
		}
	}

	// Remove stale entries.
	for n := range names {
		if _, ok := current[n]; !ok {
			if err := db.DeleteWord(n); err != nil {
				logger.Warn("sync: delete failed", slog.String("name", n), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed", slog.String("name", n))
			}
		}
	}
	return nil
}
