package script

import (
	"strings"
	"testing"
)

// testTable builds an atom table with a fixed category assignment: the
// bracket-like glyphs act as prefixes, a handful of qualifier glyphs as
// modifiers, everything else as plain atoms.
func testTable(t *testing.T) Table {
	t.Helper()
	var decls []AtomDecl
	for _, concept := range Concepts() {
		g, _ := GlyphFor(concept)
		var cat AtomCategory
		switch {
		case strings.ContainsRune(":.,", g):
			continue // injected by NewTable
		case strings.ContainsRune(`"'();`, g):
			cat = CategoryPrefix
		case strings.ContainsRune("b?xf", g):
			cat = CategoryType
		default:
			cat = CategoryAtom
		}
		decls = append(decls, AtomDecl{Name: concept, Category: cat})
	}
	table, err := NewTable(decls)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestCanonicalize_Golden(t *testing.T) {
	table := testTable(t)
	cases := []struct{ in, want string }{
		{"ab", "ab"},
		{"aba", "ab.a"},
		{"ba", "b.a"},
		{"b", "b"},
		{"a", "a"},
		{"'a", "'.a,"},
		{"'al", "'.al"},
		{"'alu", "'.alu"},
		{"'aluv", "'aluv"},
		{"a'l", "a'.l"},
		{"al'u", "al'.u"},
		{"aa", "aa"},
		{"bb", "b"},
		{"bba", "b.a"},
		{"bab", "b.ab"},
		{`"s`, `"s,`},
		{`"s"s`, `"s:"s`},
		{`a"s`, `a"s`},
		{`"sb`, `"sb`},
		{"absb", "ab.sb"},
		{`ab"s`, `ab."s`},
		{"r'e", "r'.e"},
		{"r'el", "r'.el"},
		{"l'e'c", "l'e:'c"},
		{"''a", "'.a"},
		{"abba", "ab.a"},
		{"afba", "afb.a"},
		{`"a"`, `"a"`},
		{"(a)", "(a)"},
		{"a(b)c", "a(b.)c"},
		{`";a`, `";a`},
		{`u"s`, `u"s`},
		{`uvl"s`, `uvl"s`},
		{"a'uvl", "a'uvl"},
		{"'uv", "'.uv"},
		{"'uvl", "'.uvl"},
		{"ab'cd", "ab.'cd"},
		{"'abcd", "'ab.cd"},
		{"a'bcd", "a'b.cd"},
		{"abcd'e", "ab.cd'e"},
		{"ac'u", "ac'.u"},
		{"acu'v", "acu'v"},
		{"s'", "s'"},
		{"'", "'"},
		{"''", "',"},
		{"(((a", "(a"},
		{`"ab"ab`, `"ab."ab`},
		{`r"e`, `r"e`},
		{`re"l`, `re"l`},
		{`"e`, `"e,`},
		{`e"`, `e"`},
		{"zab", "zab"},
		{"z?a", "z?.a"},
		{"?za", "?.za"},
		{"a?z", "a?.z"},
		{"??z", "?.z"},
		{"fa", "f.a"},
		{"faf", "f.af"},
		{"affa", "af.a"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Canonicalize(tc.in, table); got != tc.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalize_Deterministic(t *testing.T) {
	table := testTable(t)
	for _, in := range []string{"'aluv", "l'e'c", `"s"s`, "abcd'e"} {
		first := Canonicalize(in, table)
		second := Canonicalize(in, table)
		if first != second {
			t.Errorf("Canonicalize(%q) unstable: %q vs %q", in, first, second)
		}
	}
}

// Re-squashing canonical output must reproduce the deduplicated input:
// inserted punctuation strips back out cleanly.
func TestCanonicalize_RoundTrip(t *testing.T) {
	table := testTable(t)
	squash := func(s string) string {
		var sb strings.Builder
		for _, g := range s {
			if table.Category(g) != CategoryPunctuation {
				sb.WriteRune(g)
			}
		}
		return sb.String()
	}
	for _, in := range []string{"ab.a", "'.al", "l'e:'c", `"s:"s`, "ac'.u", "zab"} {
		out := Canonicalize(in, table)
		if got, want := squash(out), squash(in); got != want {
			t.Errorf("squash(Canonicalize(%q)) = %q, want %q", in, got, want)
		}
	}
}

// For inputs with nothing to collapse, insertion can only grow the string;
// and canonicalizing canonical output is a no-op.
func TestCanonicalize_LengthAndIdempotence(t *testing.T) {
	table := testTable(t)
	for _, in := range []string{"ab", "aba", "'aluv", "l'e'c", `"s"s`, "abcd'e", "zab"} {
		out := Canonicalize(in, table)
		if len(out) < len(in) {
			t.Errorf("Canonicalize(%q) = %q: shorter than input", in, out)
		}
		if again := Canonicalize(out, table); again != out {
			t.Errorf("Canonicalize(%q) not idempotent: %q then %q", in, out, again)
		}
	}
}

// No colon joiner survives in a result that would be three glyphs or fewer
// without them.
func TestCanonicalize_ColonPruning(t *testing.T) {
	table := testTable(t)
	for _, in := range []string{`"s"s`, "l'e'c", `"a"`, "'a", "ba", "''"} {
		out := Canonicalize(in, table)
		pruned := strings.ReplaceAll(out, string(GlyphColonJoin), "")
		if len([]rune(pruned)) <= 3 && out != pruned {
			t.Errorf("Canonicalize(%q) = %q: colon joiner in short result", in, out)
		}
	}
}

func TestCanonicalize_ShortPrefixComma(t *testing.T) {
	table := testTable(t)
	// Two squashed glyphs, first a prefix: comma appended.
	for _, in := range []string{`"s`, "'a", `"e`} {
		out := Canonicalize(in, table)
		if !strings.HasSuffix(out, string(GlyphPrimitive)) {
			t.Errorf("Canonicalize(%q) = %q, want trailing %q", in, out, GlyphPrimitive)
		}
	}
	// Length measured before deduplication: three declared glyphs collapsing
	// to two do not trigger the comma.
	if out := Canonicalize("''a", table); strings.HasSuffix(out, string(GlyphPrimitive)) {
		t.Errorf("Canonicalize(%q) = %q: comma on collapsed word", "''a", out)
	}
}

func TestJoinState_RulePriority(t *testing.T) {
	// A modifier-to-prefix transition must produce a dot, not a colon.
	st := joinState{prevGlyph: 'b', prevCat: CategoryType, length: 2}
	joiner, ok := st.next('"', CategoryPrefix)
	if !ok || joiner != GlyphDotJoin {
		t.Fatalf("modifier→prefix: joiner = %q, ok = %v; want dot", joiner, ok)
	}
	if st.length != 3 {
		t.Errorf("length after insert = %d, want 3", st.length)
	}
}

func TestJoinState_OfRuleLengthWindow(t *testing.T) {
	st := joinState{prevGlyph: '\'', prevCat: CategoryPrefix, length: 4}
	if joiner, ok := st.next('a', CategoryAtom); !ok || joiner != GlyphDotJoin {
		t.Errorf("of-rule at length 4: joiner = %q, ok = %v; want dot", joiner, ok)
	}
	st = joinState{prevGlyph: '\'', prevCat: CategoryPrefix, length: 5}
	if _, ok := st.next('a', CategoryAtom); ok {
		t.Error("of-rule at length 5: unexpected joiner")
	}
}

func TestJoinState_NeedsJoin(t *testing.T) {
	st := joinState{prevGlyph: 'r', prevCat: CategoryAtom, length: 6}
	if _, ok := st.next('"', CategoryPrefix); ok {
		t.Fatal("first prefix after leading atom should not take a colon")
	}
	if !st.needsJoin {
		t.Fatal("needsJoin should latch after a prefix")
	}
	st.prevGlyph, st.prevCat = 's', CategoryAtom
	if joiner, ok := st.next('"', CategoryPrefix); !ok || joiner != GlyphColonJoin {
		t.Errorf("second prefix: joiner = %q, ok = %v; want colon", joiner, ok)
	}
}
