// Package wikitable renders the resolved lexicon as MediaWiki table rows for
// the community wiki's word list.
package wikitable

import (
	"fmt"
	"io"
	"strings"

	"github.com/d0sboots/VaultDict/internal/lexicon"
	"github.com/d0sboots/VaultDict/internal/script"
)

// Render writes one table row per word, sorted case-insensitively by name:
// the rendered glyph string, the word's names, and the per-component glyph
// breakdown. Glyphs go through {{ALB|<nowiki>…</nowiki>}} so the wiki shows
// them in the ancientrunes font without mangling the punctuation characters.
func Render(w io.Writer, snap *lexicon.Snapshot) error {
	for _, e := range snap.Entries() {
		names := append([]string{e.Name}, e.Equivalences...)
		if _, err := fmt.Fprintf(w, "|-\n| %s\n| %s\n", glyphCell(e.Glyphs), strings.Join(names, " / ")); err != nil {
			return err
		}

		parts := make([]string, 0, len(e.Components))
		for _, c := range e.Components {
			glyphs, err := script.Lookup(c, snap.Words(), snap.Table())
			if err != nil {
				return fmt.Errorf("wikitable: word %q: %w", e.Name, err)
			}
			parts = append(parts, fmt.Sprintf("%s (%s)", glyphCell(glyphs), c))
		}
		if _, err := fmt.Fprintf(w, "| %s\n", strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}

func glyphCell(glyphs string) string {
	return fmt.Sprintf("{{ALB|<nowiki>%s</nowiki>}}", glyphs)
}
