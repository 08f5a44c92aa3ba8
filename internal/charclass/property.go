package charclass

import "unicode"

// Digit implements \d = \p{Nd} (spec §6).
func Digit() *Set { return FromRangeTable(unicode.Nd) }

// Word implements \w = [\p{alpha}\p{m}\p{n}\p{pc}\p{joinc}] (spec §6).
// \p{alpha} is taken as Letter plus letter-number, matching how the rest of
// the pattern language's property shortcuts compose from the stdlib
// per-category tables.
func Word() *Set {
	return Merge(unicode.L, unicode.Nl, unicode.M, unicode.N, unicode.Pc, unicode.Join_Control)
}

// Space implements \s = \p{whitespace} (spec §6), using the same
// Unicode-maintained White_Space property the rest of the ecosystem sources
// from unicode.Properties rather than hand-listing code points.
func Space() *Set { return FromRangeTable(unicode.Properties["White_Space"]) }

// VSpace implements \v, the explicit line-terminator set used for ^/$
// (spec §6): \n \v \f \r \x85    .
func VSpace() *Set {
	return Range(0x0A, 0x0D).Union(Char(0x85)).Union(Range(0x2028, 0x2029))
}

// HSpace implements \h = [\t\p{zs}] (spec §6).
func HSpace() *Set { return Merge(unicode.Zs).Union(Char('\t')) }

// namedShortcuts covers the directive/property names this engine defines
// itself (spec §6) rather than deferring to a stdlib Unicode table.
var namedShortcuts = map[string]func() *Set{
	"digit":       Digit,
	"word":        Word,
	"space":       Space,
	"vspace":      VSpace,
	"hspace":      HSpace,
	"open-brace":  OpenerSet,
	"close-brace": CloserSet,
	"alpha":       func() *Set { return Merge(unicode.L, unicode.Nl) },
}

// Property resolves a `\p{name}` / Unicode-property-fallback name (spec §4.2
// "directive-vs-property fallback") to a Set. Resolution order: this
// engine's own named shortcuts, then the stdlib unicode.Categories,
// unicode.Scripts, and unicode.Properties tables — the same three lookup
// tables any Go Unicode-property matcher (including the stdlib regexp/syntax
// package) consults for `\p{Name}` classes.
func Property(name string) (*Set, bool) {
	if f, ok := namedShortcuts[name]; ok {
		return f(), true
	}
	if t, ok := unicode.Categories[name]; ok {
		return FromRangeTable(t), true
	}
	if t, ok := unicode.Scripts[name]; ok {
		return FromRangeTable(t), true
	}
	if t, ok := unicode.Properties[name]; ok {
		return FromRangeTable(t), true
	}
	return nil, false
}
