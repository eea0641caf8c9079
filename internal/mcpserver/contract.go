package mcpserver

// ScriptReference describes the glyph system for LLM consumers so that
// transcribe calls produce sensible component sequences.
const ScriptReference = `# Script Reference

The script writes each word as a string of single-character glyphs, one per
atomic concept, with punctuation glyphs inserted automatically between them.

## Glyph categories

- **atom** – an ordinary concept glyph (water, truth, person, …). Most glyphs
  are atoms.
- **prefix** – a glyph that modifies what follows it (verb, noun, property,
  quality, of). Prefixes attach to the next glyph group.
- **modifier** – a glyph that modifies what precedes it (past_tense, query,
  not, many).
- **punctuation** – joiner glyphs the renderer inserts itself: ` + "`:`" + ` (join),
  ` + "`.`" + ` (dot) and ` + "`,`" + ` (primitive marker). Never supply these as components.

## Rendering rules

Components are resolved to their glyphs in order, then canonicalized:

1. A dot is inserted after a modifier when another non-modifier glyph follows.
2. A dot closes a short "of" phrase (four glyphs or fewer at that point).
3. A colon separates a prefix from what came before it, once the word is long
   enough to need explicit grouping.
4. Two-glyph words that start with a prefix get a trailing ` + "`,`" + `.
5. Words whose pruned form is three glyphs or shorter drop their colons.

The same component sequence always renders to the same glyph string.

## Using the tools

- Call ` + "`list_atoms`" + ` to see every concept and its category.
- Components passed to ` + "`transcribe`" + ` may be atomic concepts or existing
  dictionary words; words expand to their full glyph strings before
  canonicalization.
- Component names are case-insensitive.
`
