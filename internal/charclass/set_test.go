package charclass

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeContains(t *testing.T) {
	s := Range('a', 'z')
	require.True(t, s.Contains('m'))
	require.False(t, s.Contains('A'))
	require.False(t, s.Contains('{'))
}

func TestUnionMergesAdjacentIntervals(t *testing.T) {
	s := Range('a', 'm').Union(Range('n', 'z'))
	for r := 'a'; r <= 'z'; r++ {
		require.True(t, s.Contains(r), "%q should be in union", r)
	}
	require.Equal(t, 1, len(s.Ranges()), "adjacent ranges should merge into one interval")
}

func TestIntersectAndDifference(t *testing.T) {
	digits := Range('0', '9')
	evens := Range('0', '4')
	require.True(t, digits.Intersect(evens).Contains('3'))
	require.False(t, digits.Intersect(evens).Contains('7'))

	diff := digits.Difference(evens)
	require.False(t, diff.Contains('3'))
	require.True(t, diff.Contains('7'))
}

func TestSymDiff(t *testing.T) {
	a := Range('a', 'm')
	b := Range('g', 'z')
	sym := a.SymDiff(b)
	require.True(t, sym.Contains('a'))
	require.True(t, sym.Contains('z'))
	require.False(t, sym.Contains('h'))
}

func TestComplementExcludesSurrogates(t *testing.T) {
	s := Char('x')
	comp := s.Complement()
	require.False(t, comp.Contains('x'))
	require.True(t, comp.Contains('y'))
	require.False(t, comp.Contains(0xD900), "surrogate range is never a valid scalar")
}

func TestCloneIsIndependent(t *testing.T) {
	s := Char('a')
	clone := s.Clone()
	merged := clone.Union(Char('b'))
	require.False(t, s.Contains('b'))
	require.True(t, merged.Contains('b'))
}

func TestBracketMateAndQuoteEqual(t *testing.T) {
	require.True(t, IsMate('(', ')'))
	require.False(t, IsMate('(', ']'))
	require.True(t, IsOpener('('))
	require.True(t, IsCloser(')'))
	require.False(t, IsOpener(')'))

	require.True(t, QuoteEqual('(', ')'))
	require.True(t, QuoteEqual('"', '"'))
	require.False(t, QuoteEqual('(', ']'))
	require.False(t, QuoteEqual('a', 'b'))
}

func TestMateEqualAndBracketChar(t *testing.T) {
	require.True(t, MateEqual('(', ')'))
	require.True(t, MateEqual(')', '('))
	require.False(t, MateEqual('"', '"'), "MateEqual excludes the identical symmetric-quote case QuoteEqual allows")
	require.False(t, MateEqual('(', ']'))

	require.True(t, IsBracketChar('('))
	require.True(t, IsBracketChar(')'))
	require.True(t, IsBracketChar('"'))
	require.False(t, IsBracketChar('a'))
}

func TestDigitWordSpaceProperties(t *testing.T) {
	require.True(t, Digit().Contains('5'))
	require.False(t, Digit().Contains('a'))

	require.True(t, Word().Contains('a'))
	require.True(t, Word().Contains('_'))
	require.False(t, Word().Contains(' '))

	require.True(t, Space().Contains(' '))
	require.True(t, VSpace().Contains('\n'))
	require.True(t, HSpace().Contains('\t'))
}

func TestPropertyFallsBackToUnicodeTables(t *testing.T) {
	set, ok := Property("Nd")
	require.True(t, ok)
	require.True(t, set.Contains('7'))

	_, ok = Property("NoSuchProperty")
	require.False(t, ok)
}
