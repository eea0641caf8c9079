package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/d0sboots/VaultDict/internal/checksum"
	"github.com/d0sboots/VaultDict/internal/gamedata"
	"github.com/d0sboots/VaultDict/internal/lexicon"
)

// ReloadCallback is called after a watcher-driven reload has been published.
type ReloadCallback func(checksum string)

// Watch starts an fsnotify watcher on the game data file and rebuilds the
// lexicon whenever the file changes, until ctx is cancelled. It calls cb (if
// non-nil) after each successful reload.
//
// Events are debounced, since game exports and editors tend to produce a
// burst of writes (or a rename-over) per save. A reload that fails to parse
// or resolve keeps the previous lexicon and index.
func Watch(ctx context.Context, db *DB, svc *lexicon.Service, src *gamedata.FileSource, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the parent directory: replace-by-rename would otherwise detach
	// the watch from the file itself.
	dataPath := src.Path()
	if err := w.Add(filepath.Dir(dataPath)); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", dataPath))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			reload(db, svc, src, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != dataPath {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}

// reload rebuilds the lexicon from the data file, swaps it in, and resyncs
// the index. A checksum match with the current snapshot skips the rebuild.
func reload(db *DB, svc *lexicon.Service, src *gamedata.FileSource, logger *slog.Logger, cb ReloadCallback) {
	raw, err := src.Read()
	if err != nil {
		logger.Warn("reload: read failed", slog.String("error", err.Error()))
		return
	}
	sum := checksum.Sum(raw)
	if sum == svc.Checksum() {
		logger.Debug("reload: unchanged", slog.String("checksum", sum))
		return
	}

	doc, err := gamedata.Parse(raw)
	if err != nil {
		logger.Warn("reload: parse failed, keeping previous lexicon", slog.String("error", err.Error()))
		return
	}
	snap, err := lexicon.Build(doc, raw)
	if err != nil {
		logger.Warn("reload: resolve failed, keeping previous lexicon", slog.String("error", err.Error()))
		return
	}

	svc.Swap(snap)
	if err := Sync(db, snap, logger); err != nil {
		logger.Warn("reload: index sync failed", slog.String("error", err.Error()))
	}
	logger.Info("reload: lexicon rebuilt",
		slog.Int("words", len(snap.Entries())),
		slog.String("checksum", sum))

	if cb != nil {
		cb(sum)
	}
}
