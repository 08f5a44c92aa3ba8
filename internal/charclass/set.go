// Package charclass implements the opaque scalar-set primitive (spec §3) and
// the Unicode property / bracket-pair tables the parser and executor consume
// (spec §6). Initial property sets are sourced from the stdlib unicode
// category tables via golang.org/x/text/unicode/rangetable, merged with
// rangetable.Merge the way the rest of the example pack composes
// *unicode.RangeTable values, then normalized into our own sorted interval
// list so union/intersect/difference/complement stay simple and exact over
// the full scalar range (including unassigned code points, which a true
// character-set negation must still cover).
package charclass

import (
	"sort"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// MaxScalar is the highest valid Unicode scalar.
const MaxScalar rune = 0x10FFFF

type interval struct{ lo, hi rune }

// Set is an opaque, immutable-by-convention set of Unicode scalars,
// represented as a sorted list of disjoint, non-adjacent closed intervals.
type Set struct {
	ivs []interval
}

// Empty returns a Set with no members.
func Empty() *Set { return &Set{} }

// Char returns a Set containing exactly one scalar.
func Char(r rune) *Set { return &Set{ivs: []interval{{r, r}}} }

// Range returns a Set containing the closed interval [lo, hi].
func Range(lo, hi rune) *Set {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &Set{ivs: []interval{{lo, hi}}}
}

// FromRangeTable converts a stdlib *unicode.RangeTable into a Set.
func FromRangeTable(t *unicode.RangeTable) *Set {
	var ivs []interval
	for _, r := range t.R16 {
		for lo := rune(r.Lo); lo <= rune(r.Hi); lo += rune(r.Stride) {
			ivs = append(ivs, interval{lo, lo})
			if r.Stride == 0 {
				break
			}
		}
	}
	for _, r := range t.R32 {
		for lo := rune(r.Lo); lo <= rune(r.Hi); lo += rune(r.Stride) {
			ivs = append(ivs, interval{lo, lo})
			if r.Stride == 0 {
				break
			}
		}
	}
	return normalize(ivs)
}

// Merge composes several property tables into one Set, using
// rangetable.Merge the way the example pack's Unicode-heavy modules do,
// before folding the merged table into our interval representation.
func Merge(tables ...*unicode.RangeTable) *Set {
	return FromRangeTable(rangetable.Merge(tables...))
}

func normalize(ivs []interval) *Set {
	if len(ivs) == 0 {
		return &Set{}
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].lo < ivs[j].lo })
	out := make([]interval, 0, len(ivs))
	cur := ivs[0]
	for _, iv := range ivs[1:] {
		if iv.lo <= cur.hi+1 {
			if iv.hi > cur.hi {
				cur.hi = iv.hi
			}
			continue
		}
		out = append(out, cur)
		cur = iv
	}
	out = append(out, cur)
	return &Set{ivs: out}
}

// Contains reports whether r is a member of the set.
func (s *Set) Contains(r rune) bool {
	if s == nil {
		return false
	}
	ivs := s.ivs
	lo, hi := 0, len(ivs)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case r < ivs[mid].lo:
			hi = mid
		case r > ivs[mid].hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	if s == nil {
		return &Set{}
	}
	ivs := make([]interval, len(s.ivs))
	copy(ivs, s.ivs)
	return &Set{ivs: ivs}
}

// Union returns the set of scalars in s or o.
func (s *Set) Union(o *Set) *Set {
	all := append(append([]interval{}, s.ivs...), o.ivs...)
	return normalize(all)
}

// Intersect returns the set of scalars in both s and o.
func (s *Set) Intersect(o *Set) *Set {
	var out []interval
	i, j := 0, 0
	for i < len(s.ivs) && j < len(o.ivs) {
		a, b := s.ivs[i], o.ivs[j]
		lo := a.lo
		if b.lo > lo {
			lo = b.lo
		}
		hi := a.hi
		if b.hi < hi {
			hi = b.hi
		}
		if lo <= hi {
			out = append(out, interval{lo, hi})
		}
		if a.hi < b.hi {
			i++
		} else {
			j++
		}
	}
	return normalize(out)
}

// Difference returns the scalars in s that are not in o.
func (s *Set) Difference(o *Set) *Set {
	var out []interval
	for _, a := range s.ivs {
		lo := a.lo
		for _, b := range o.ivs {
			if b.hi < lo || b.lo > a.hi {
				continue
			}
			if b.lo > lo {
				out = append(out, interval{lo, b.lo - 1})
			}
			if b.hi+1 > lo {
				lo = b.hi + 1
			}
			if lo > a.hi {
				break
			}
		}
		if lo <= a.hi {
			out = append(out, interval{lo, a.hi})
		}
	}
	return normalize(out)
}

// SymDiff returns the scalars in exactly one of s, o.
func (s *Set) SymDiff(o *Set) *Set {
	return s.Difference(o).Union(o.Difference(s))
}

// Complement returns the scalars in [0, MaxScalar] not in s, skipping the
// surrogate range (which is never a valid scalar).
func (s *Set) Complement() *Set {
	full := Range(0, MaxScalar).Difference(Range(0xD800, 0xDFFF))
	return full.Difference(s)
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool { return s == nil || len(s.ivs) == 0 }

// Ranges returns the sorted, disjoint [lo, hi] intervals backing the set.
// Used by the disassembler to render a set's pattern representation.
func (s *Set) Ranges() [][2]rune {
	out := make([][2]rune, len(s.ivs))
	for i, iv := range s.ivs {
		out[i] = [2]rune{iv.lo, iv.hi}
	}
	return out
}
