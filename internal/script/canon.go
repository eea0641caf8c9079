package script

import "strings"

// joinState carries the canonicalizer's scan state between glyphs during
// punctuation insertion.
type joinState struct {
	prevGlyph rune
	prevCat   AtomCategory
	// length tracks the live length of the output built so far, including
	// joiners already inserted. The original engine inserts into the list
	// while iterating over it, so a length test later in the same word sees
	// the inflated count; the dot-after-"of" rule depends on that.
	length    int
	needsJoin bool
}

// next reports the joiner to insert before glyph g of category cat, if any,
// and advances the state. The rules are mutually exclusive and checked in
// priority order: post-modifier transitions win over the "of" length rule,
// which wins over prefix colon insertion.
func (st *joinState) next(g rune, cat AtomCategory) (rune, bool) {
	joiner := rune(0)
	switch {
	// Most dots come from here: a modifier glyph followed by anything that
	// is not another modifier. Because this outranks prefix handling, dots
	// show up in places a colon might be expected.
	case st.prevCat == CategoryType && cat != CategoryType:
		joiner = GlyphDotJoin
	// The length cap makes some possessives render without a dot, collapsing
	// them into plain "of NOUN". It applies to the whole flattened word, so
	// compounds can lose the dot when embedded in a longer word.
	case st.prevGlyph == glyphOf && st.length <= 4:
		joiner = GlyphDotJoin
	// Colons join a prefix to whatever preceded it. The first colon is
	// skipped when the word opens with a plain atom, which is why several
	// words keep their leading subword unjoined.
	case cat == CategoryPrefix && st.prevCat != CategoryPrefix:
		if st.needsJoin || st.prevCat != CategoryAtom {
			joiner = GlyphColonJoin
		}
		st.needsJoin = true
	}
	if joiner != 0 {
		st.length++
	}
	st.prevGlyph = g
	st.prevCat = cat
	return joiner, joiner != 0
}

// Canonicalize turns a flat, unpunctuated glyph sequence into the punctuated
// form the game engine renders. Deterministic and pure; the table must cover
// every glyph in the input.
//
// The engine does not join subwords with punctuation as it composes them: it
// flattens everything and re-adds punctuation from scratch. Canonicalize
// therefore strips any punctuation it is handed before doing anything else,
// which also makes it safe to run over already canonical strings.
func Canonicalize(atoms string, table Table) string {
	// Strip punctuation.
	squashed := make([]rune, 0, len(atoms))
	for _, g := range atoms {
		if table.Category(g) != CategoryPunctuation {
			squashed = append(squashed, g)
		}
	}
	origLen := len(squashed)

	// Collapse adjacent duplicate prefix and modifier glyphs. This handles
	// verb tense stacking, along with some odder omissions the engine makes.
	// An atom glyph resets the suppression window.
	deduped := make([]rune, 0, origLen)
	var suppressed rune
	for _, g := range squashed {
		switch table.Category(g) {
		case CategoryPrefix, CategoryType:
			if g == suppressed {
				continue
			}
			suppressed = g
		case CategoryAtom:
			suppressed = 0
		}
		deduped = append(deduped, g)
	}
	if len(deduped) == 0 {
		return ""
	}

	// Insert joiners left to right. The first glyph is emitted as-is.
	st := joinState{
		prevGlyph: deduped[0],
		prevCat:   table.Category(deduped[0]),
		length:    len(deduped),
	}
	st.needsJoin = st.prevCat == CategoryPrefix
	out := make([]rune, 0, len(deduped)+4)
	out = append(out, deduped[0])
	for _, g := range deduped[1:] {
		if joiner, ok := st.next(g, table.Category(g)); ok {
			out = append(out, joiner)
		}
		out = append(out, g)
	}

	result := string(out)
	// Two-glyph words opening with a prefix get a trailing primitive mark.
	if origLen == 2 && table.Category(out[0]) == CategoryPrefix {
		result += string(GlyphPrimitive)
	}
	// Colons are dropped entirely from short results.
	pruned := strings.ReplaceAll(result, string(GlyphColonJoin), "")
	if len([]rune(pruned)) <= 3 {
		result = pruned
	}
	return result
}
