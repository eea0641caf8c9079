// Package script reconstructs the Ancient writing system from the game's
// exported data: it maps rune concepts to font glyphs, expands word
// compositions into flat glyph sequences, and re-inserts punctuation the way
// the game engine renders it.
package script

import (
	"sort"

	"golang.org/x/text/cases"
)

// Punctuation glyphs of the ancientrunes font. The colon and dot joiners and
// the primitive separator never appear in word compositions; they are inserted
// (and stripped) by the canonicalizer.
const (
	GlyphColonJoin = ':'
	GlyphDotJoin   = '.'
	GlyphPrimitive = ','

	// glyphOf is the rendered glyph of the "of" concept. It gets special
	// treatment during punctuation insertion.
	glyphOf = '\''
)

// fontMap assigns each rune concept its glyph in the ancientrunes font.
// This is out-of-game knowledge: the exported data names the concepts but
// says nothing about how the font encodes them.
var fontMap = map[string]rune{
	"verb":       '"',
	"of":         glyphOf,
	"property":   '(',
	"noun":       ')',
	"primitive":  GlyphPrimitive,
	"joinglyph2": GlyphDotJoin,
	"0":          '0',
	"1":          '1',
	"2":          '2',
	"3":          '3',
	"4":          '4',
	"5":          '5',
	"6":          '6',
	"7":          '7',
	"8":          '8',
	"9":          '9',
	"joinglyph1": GlyphColonJoin,
	"quality":    ';',
	"water":      '=',
	"query":      '?',
	"truth":      'a',
	"past_tense": 'b',
	"time":       'c',
	"beginning":  'd',
	"possession": 'e',
	"many":       'f',
	"say":        'g',
	"light":      'h',
	"high":       'i',
	"being":      'j',
	"creature":   'k',
	"life":       'l',
	"separate":   'm',
	"join":       'n',
	"circle":     'o',
	"knowledge":  'p',
	"food":       'q',
	"person":     'r',
	"motion":     's',
	"plant":      't',
	"place":      'u',
	"rock":       'v',
	"and":        'w',
	"not":        'x',
	"mineral":    'y',
	"heat":       'z',
}

// GlyphFor returns the glyph of the named concept. The lookup is
// case-insensitive.
func GlyphFor(concept string) (rune, bool) {
	g, ok := fontMap[FoldName(concept)]
	return g, ok
}

// Concepts returns every known concept name in sorted order.
func Concepts() []string {
	names := make([]string, 0, len(fontMap))
	for name := range fontMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FoldName case-folds an identifier the way all name lookups in this package
// do. Full Unicode folding, since display names in the data are not
// guaranteed to be ASCII.
func FoldName(s string) string {
	return cases.Fold().String(s)
}
