package nametab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupTableStartsWithWholeMatch(t *testing.T) {
	g := NewGroupTable()
	require.Equal(t, 1, g.Count())
	require.Equal(t, []string{""}, g.Names())
	require.Equal(t, "", g.Undefined())
}

func TestGroupReferenceThenDefineResolves(t *testing.T) {
	g := NewGroupTable()
	idx := g.Reference("word")
	require.Equal(t, 1, idx)
	require.Equal(t, "word", g.Undefined(), "referenced but not yet defined")

	defIdx := g.Define("word")
	require.Equal(t, idx, defIdx, "define reuses the same slot a reference created")
	require.Equal(t, "", g.Undefined())
}

func TestGroupLookupDoesNotRegister(t *testing.T) {
	g := NewGroupTable()
	_, known := g.Lookup("quote")
	require.False(t, known)
	require.Equal(t, 1, g.Count(), "Lookup must not add an entry")

	idx := g.Define("quote")
	gotIdx, known := g.Lookup("quote")
	require.True(t, known)
	require.Equal(t, idx, gotIdx)
}

func TestGroupDefineIsIdempotentOnIndex(t *testing.T) {
	g := NewGroupTable()
	a := g.Define("x")
	b := g.Define("x")
	require.Equal(t, a, b)
	require.Equal(t, 2, g.Count())
}

func TestProcTableRedefinitionIsReported(t *testing.T) {
	p := NewProcTable()
	_, redefined := p.Define("p")
	require.False(t, redefined)
	_, redefined = p.Define("p")
	require.True(t, redefined)
}

func TestProcTableUndefinedCall(t *testing.T) {
	p := NewProcTable()
	p.Reference("missing")
	require.Equal(t, "missing", p.Undefined())

	p.Define("missing")
	require.Equal(t, "", p.Undefined())
}

func TestProcTableAnonNamesCannotCollideWithUserNames(t *testing.T) {
	p := NewProcTable()
	idx, name := p.NewAnon()
	require.True(t, strings.HasPrefix(name, "\x00"), "anon names start with a byte no pattern name scan can produce")
	entry := p.Entry(idx)
	require.True(t, entry.HasBody)
}

func TestProcTableSetAddrs(t *testing.T) {
	p := NewProcTable()
	idx, _ := p.Define("p")
	p.SetAddrs(idx, 10, 20)
	entry := p.Entry(idx)
	require.Equal(t, 10, entry.ForwardAddr)
	require.Equal(t, 20, entry.ReverseAddr)
}
