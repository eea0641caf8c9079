// Package lexicon holds the resolved dictionary and serves lookups over it.
package lexicon

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/d0sboots/VaultDict/internal/apperr"
	"github.com/d0sboots/VaultDict/internal/checksum"
	"github.com/d0sboots/VaultDict/internal/gamedata"
	"github.com/d0sboots/VaultDict/internal/script"
)

// Entry is the external representation of one resolved word.
type Entry struct {
	Name         string   `json:"name"`
	Equivalences []string `json:"equivalences,omitempty"`
	Components   []string `json:"components"`
	Glyphs       string   `json:"glyphs"`
}

// Breakdown pairs one component reference with its own glyph rendering.
type Breakdown struct {
	Component string `json:"component"`
	Glyphs    string `json:"glyphs"`
}

// Detail is an Entry enriched with the per-component glyph breakdown.
type Detail struct {
	Entry
	Breakdown []Breakdown `json:"breakdown,omitempty"`
}

// AtomInfo describes one glyph of the alphabet.
type AtomInfo struct {
	Glyph    string `json:"glyph"`
	Concept  string `json:"concept"`
	Category string `json:"category"`
}

// Snapshot is one immutable build of the lexicon. A reload produces a fresh
// snapshot; nothing in a published snapshot is ever mutated.
type Snapshot struct {
	table    script.Table
	words    map[string]*script.Word
	entries  []Entry
	checksum string
}

// Build resolves the whole document into a snapshot. Either every word
// resolves or Build fails; there is no partial lexicon.
func Build(doc *gamedata.Document, raw []byte) (*Snapshot, error) {
	table, err := script.NewTable(doc.AtomDecls())
	if err != nil {
		return nil, err
	}
	words, err := script.Resolve(doc.WordDecls(), table)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(words))
	for _, w := range words {
		entries = append(entries, Entry{
			Name:         w.Name,
			Equivalences: w.Equivalences,
			Components:   w.Components,
			Glyphs:       w.Glyphs,
		})
	}
	// Map order is not stable; consumers get a sorted view.
	sort.Slice(entries, func(i, j int) bool {
		return script.FoldName(entries[i].Name) < script.FoldName(entries[j].Name)
	})

	return &Snapshot{
		table:    table,
		words:    words,
		entries:  entries,
		checksum: checksum.Sum(raw),
	}, nil
}

// Checksum returns the checksum of the raw data this snapshot was built from.
func (s *Snapshot) Checksum() string { return s.checksum }

// Entries returns all resolved words sorted case-insensitively by name.
func (s *Snapshot) Entries() []Entry { return s.entries }

// Table returns the atom table.
func (s *Snapshot) Table() script.Table { return s.table }

// Words returns the resolved word map keyed by folded name.
func (s *Snapshot) Words() map[string]*script.Word { return s.words }

// Service serves dictionary queries against the current snapshot and lets the
// watcher swap in a rebuilt one.
type Service struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewService creates a service around an initial snapshot.
func NewService(snap *Snapshot) *Service {
	return &Service{snap: snap}
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Swap publishes a rebuilt snapshot.
func (s *Service) Swap(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Checksum returns the current snapshot's data checksum.
func (s *Service) Checksum() string {
	return s.Snapshot().Checksum()
}

// List returns a page of entries plus the total count. A non-positive limit
// means everything.
func (s *Service) List(_ context.Context, limit, offset int) ([]Entry, int) {
	entries := s.Snapshot().Entries()
	total := len(entries)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return entries[offset:end], total
}

// Get returns one word with its component breakdown. Declared words win;
// a name that is only an atomic concept falls back to its single glyph.
func (s *Service) Get(_ context.Context, name string) (*Detail, error) {
	snap := s.Snapshot()
	if w, ok := snap.words[script.FoldName(name)]; ok {
		d := &Detail{Entry: Entry{
			Name:         w.Name,
			Equivalences: w.Equivalences,
			Components:   w.Components,
			Glyphs:       w.Glyphs,
		}}
		for _, part := range w.Components {
			glyphs, err := script.Lookup(part, snap.words, snap.table)
			if err != nil {
				return nil, err
			}
			d.Breakdown = append(d.Breakdown, Breakdown{Component: part, Glyphs: glyphs})
		}
		return d, nil
	}
	if g, ok := script.GlyphFor(name); ok {
		return &Detail{Entry: Entry{Name: name, Glyphs: string(g)}}, nil
	}
	return nil, fmt.Errorf("lexicon: %q: %w", name, apperr.ErrNotFound)
}

// Transcribe resolves an ad-hoc component list into a canonical glyph string
// without touching the stored lexicon.
func (s *Service) Transcribe(_ context.Context, components []string) (string, error) {
	snap := s.Snapshot()
	return script.Expand(components, snap.words, snap.table)
}

// Atoms returns the alphabet sorted by glyph.
func (s *Service) Atoms(_ context.Context) []AtomInfo {
	snap := s.Snapshot()
	out := make([]AtomInfo, 0, len(snap.table))
	for g, e := range snap.table {
		out = append(out, AtomInfo{
			Glyph:    string(g),
			Concept:  e.Concept,
			Category: e.Category.String(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Glyph < out[j].Glyph })
	return out
}
