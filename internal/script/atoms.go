package script

import (
	"fmt"

	"github.com/d0sboots/VaultDict/internal/apperr"
)

// AtomCategory classifies a glyph for the canonicalizer's punctuation rules.
type AtomCategory int

const (
	CategoryAtom AtomCategory = iota
	CategoryPrefix
	CategoryType
	CategoryPunctuation
)

// String returns the category name as it appears in the game data.
func (c AtomCategory) String() string {
	switch c {
	case CategoryAtom:
		return "atom"
	case CategoryPrefix:
		return "prefix"
	case CategoryType:
		return "modifier"
	case CategoryPunctuation:
		return "punctuation"
	}
	return fmt.Sprintf("AtomCategory(%d)", int(c))
}

// AtomDecl is a single atom declaration from the game data, already parsed
// at the boundary into a category.
type AtomDecl struct {
	Name     string
	Category AtomCategory
}

// Entry records the declared concept behind a glyph and its category.
type Entry struct {
	Concept  string
	Category AtomCategory
}

// Table maps every glyph of the writing system to its atom entry. Built once
// per load and read-only afterwards.
type Table map[rune]Entry

// NewTable builds the atom table from the declared atom list. The three
// punctuation concepts are injected unconditionally; they are part of the
// font but never declared in the data. The resulting table must cover every
// glyph the font map knows about, otherwise the data is unusable and an
// error naming the missing concept is returned.
func NewTable(decls []AtomDecl) (Table, error) {
	t := make(Table, len(decls)+3)
	for _, d := range decls {
		g, ok := GlyphFor(d.Name)
		if !ok {
			return nil, fmt.Errorf("script: declared atom %q: %w", d.Name, apperr.ErrMissingGlyph)
		}
		t[g] = Entry{Concept: d.Name, Category: d.Category}
	}
	t[GlyphColonJoin] = Entry{Concept: "joinGlyph1", Category: CategoryPunctuation}
	t[GlyphDotJoin] = Entry{Concept: "joinGlyph2", Category: CategoryPunctuation}
	t[GlyphPrimitive] = Entry{Concept: "primitive", Category: CategoryPunctuation}

	for _, concept := range Concepts() {
		g := fontMap[concept]
		if _, ok := t[g]; !ok {
			return nil, fmt.Errorf("script: concept %q not found in data: %w", concept, apperr.ErrMissingGlyph)
		}
	}
	return t, nil
}

// Category returns the category of g, defaulting to CategoryAtom for glyphs
// outside the table. Callers feed the canonicalizer only glyphs obtained from
// the font map, which the table is validated to cover.
func (t Table) Category(g rune) AtomCategory {
	return t[g].Category
}
