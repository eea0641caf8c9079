package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/d0sboots/VaultDict/internal/apperr"
)

type resolveState int

const (
	stateUnresolved resolveState = iota
	stateResolving
	stateResolved
)

// WordDecl is a word declaration from the game data. Each component is either
// a concept name or the name of another declared word, case-insensitively.
type WordDecl struct {
	Name         string
	Equivalences []string
	Components   []string
}

// Word is a declared word together with its resolved glyph string.
type Word struct {
	Name         string
	Equivalences []string
	Components   []string
	Glyphs       string

	state resolveState
}

// Resolve expands every declared word into its punctuated glyph string and
// returns the result keyed by case-folded word name. A word referenced by many
// others is resolved once and memoized.
//
// Resolution fails on the first component that is neither a concept nor a
// declared word, and on any cyclic definition; there is no partial success.
func Resolve(decls []WordDecl, table Table) (map[string]*Word, error) {
	words := make(map[string]*Word, len(decls))
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		folded := FoldName(d.Name)
		words[folded] = &Word{
			Name:         d.Name,
			Equivalences: d.Equivalences,
			Components:   d.Components,
		}
		names = append(names, folded)
	}
	// Deterministic resolution order, so the same bad data always reports
	// the same error.
	sort.Strings(names)
	for _, name := range names {
		if _, err := resolveWord(words[name], words, table); err != nil {
			return nil, err
		}
	}
	return words, nil
}

// Expand flattens an ad-hoc component list against a word map and
// canonicalizes the result. Resolved words are reused as-is; nothing new is
// added to the map.
func Expand(components []string, words map[string]*Word, table Table) (string, error) {
	var sb strings.Builder
	for _, part := range components {
		glyphs, err := Lookup(part, words, table)
		if err != nil {
			return "", err
		}
		sb.WriteString(glyphs)
	}
	return Canonicalize(sb.String(), table), nil
}

// resolveWord computes a word's glyph string depth-first, memoizing the
// result on the word itself. Entering a word that is already mid-resolution
// means the declarations reference each other in a loop.
func resolveWord(w *Word, words map[string]*Word, table Table) (string, error) {
	switch w.state {
	case stateResolved:
		return w.Glyphs, nil
	case stateResolving:
		return "", fmt.Errorf("script: word %q: %w", w.Name, apperr.ErrCyclicDefinition)
	}
	w.state = stateResolving

	var sb strings.Builder
	for _, part := range w.Components {
		if g, ok := GlyphFor(part); ok {
			sb.WriteRune(g)
			continue
		}
		sub, ok := words[FoldName(part)]
		if !ok {
			return "", fmt.Errorf("script: word %q: component %q: %w", w.Name, part, apperr.ErrUnknownReference)
		}
		glyphs, err := resolveWord(sub, words, table)
		if err != nil {
			return "", err
		}
		sb.WriteString(glyphs)
	}

	w.Glyphs = Canonicalize(sb.String(), table)
	w.state = stateResolved
	return w.Glyphs, nil
}

// Lookup resolves one name the way component breakdowns and transcription
// do: a concept renders as its bare glyph, a word as its canonical glyph
// string. Concepts shadow words of the same name.
func Lookup(name string, words map[string]*Word, table Table) (string, error) {
	if g, ok := GlyphFor(name); ok {
		return string(g), nil
	}
	w, ok := words[FoldName(name)]
	if !ok {
		return "", fmt.Errorf("script: component %q: %w", name, apperr.ErrUnknownReference)
	}
	if w.state != stateResolved {
		return resolveWord(w, words, table)
	}
	return w.Glyphs, nil
}
