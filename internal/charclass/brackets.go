package charclass

// This file stands in for the external "makebraces"-style collaborator
// (spec §1, §9) that would otherwise parse UnicodeData.txt/BidiBrackets.txt
// into an (opener, closer) pair table; per spec §1 that table builder is out
// of scope, and the engine only ever consumes two facts from it: whether a
// closing scalar is the mate of an opening one, and whether a scalar is an
// opener/closer at all. This is the small, hand-patched static table the
// engine is allowed to own directly (original_source/makebraces.c derives
// an equivalent table from BidiBrackets.txt plus manual fixups for
// characters whose names encode "LEFT"/"RIGHT" without bidi mirroring
// entries).

type bracketTable struct {
	openToClose map[rune]rune
	closeToOpen map[rune]rune
	quotes      map[rune]bool
}

var brackets = buildBracketTable()

func buildBracketTable() *bracketTable {
	t := &bracketTable{
		openToClose: map[rune]rune{},
		closeToOpen: map[rune]rune{},
		quotes:      map[rune]bool{},
	}
	pairs := [][2]rune{
		{'(', ')'},
		{'[', ']'},
		{'{', '}'},
		{'<', '>'},
		{0x2018, 0x2019}, // ‘ ’
		{0x201C, 0x201D}, // “ ”
		{0x2039, 0x203A}, // ‹ ›
		{0x00AB, 0x00BB}, // « »
		{0x3008, 0x3009}, // 〈 〉
		{0x300A, 0x300B}, // 《 》
		{0x300C, 0x300D}, // 「 」
		{0x300E, 0x300F}, // 『 』
		{0x3010, 0x3011}, // 【 】
		{0x2308, 0x2309}, // ⌈ ⌉
		{0x230A, 0x230B}, // ⌊ ⌋
		{0xFF08, 0xFF09}, // full-width ( )
		{0xFF3B, 0xFF3D}, // full-width [ ]
		{0xFF5B, 0xFF5D}, // full-width { }
	}
	for _, p := range pairs {
		t.openToClose[p[0]] = p[1]
		t.closeToOpen[p[1]] = p[0]
	}
	// Symmetric quote characters: the same scalar both opens and closes.
	for _, q := range []rune{'\'', '"', '`', 0x00B4} {
		t.quotes[q] = true
	}
	return t
}

// IsMate reports whether close is the paired closing bracket for the
// opening bracket open.
func IsMate(open, close rune) bool {
	c, ok := brackets.openToClose[open]
	return ok && c == close
}

// IsOpener reports whether r is a recognized opening bracket character.
func IsOpener(r rune) bool {
	_, ok := brackets.openToClose[r]
	return ok
}

// IsCloser reports whether r is a recognized closing bracket character.
func IsCloser(r rune) bool {
	_, ok := brackets.closeToOpen[r]
	return ok
}

// QuoteEqual implements the bracket-equal ("quote-match") comparison used by
// \m...; back-references (spec §6, glossary): two scalars match iff they are
// mates under the bracket table, or they are identical and that scalar is a
// recognized symmetric quote character.
func QuoteEqual(a, b rune) bool {
	if a == b {
		return brackets.quotes[a]
	}
	return IsMate(a, b) || IsMate(b, a)
}

// MateEqual reports whether a and b are bracket-table mates of each other
// in either direction, excluding the symmetric same-scalar quote case that
// QuoteEqual allows. This is the stricter relation a quote-close check
// needs: a closing bracket must be the actual counterpart of the opener
// that was captured, not merely "the same quote character again".
func MateEqual(a, b rune) bool {
	return IsMate(a, b) || IsMate(b, a)
}

// IsBracketChar reports whether r is a scalar the bracket table knows
// about at all: an opener, a closer, or a symmetric quote character.
func IsBracketChar(r rune) bool {
	return IsOpener(r) || IsCloser(r) || brackets.quotes[r]
}

// OpenerSet returns the property set backing \o / {open-brace}.
func OpenerSet() *Set {
	runes := make([]rune, 0, len(brackets.openToClose))
	for r := range brackets.openToClose {
		runes = append(runes, r)
	}
	return setOfRunes(runes)
}

// CloserSet returns the property set backing \c / {close-brace}.
func CloserSet() *Set {
	runes := make([]rune, 0, len(brackets.closeToOpen))
	for r := range brackets.closeToOpen {
		runes = append(runes, r)
	}
	return setOfRunes(runes)
}

func setOfRunes(runes []rune) *Set {
	s := Empty()
	for _, r := range runes {
		s = s.Union(Char(r))
	}
	return s
}
