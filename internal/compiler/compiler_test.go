package compiler

import (
	"testing"

	"github.com/sentra-lang/uregex/internal/parser"
	"github.com/sentra-lang/uregex/internal/program"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, pattern string) *program.Program {
	t.Helper()
	res, err := parser.Parse([]rune(pattern), parser.DefaultLimits)
	require.NoError(t, err)
	prog, err := Compile(res, DefaultLimits)
	require.NoError(t, err)
	return prog
}

func TestCompileEmitsUnanchoredSkipThenMatch(t *testing.T) {
	prog := mustCompile(t, "a")
	require.NotEmpty(t, prog.Code)
	last := prog.Code[len(prog.Code)-1]
	require.Equal(t, program.OpMatch, last.Op)
}

func TestCompileProducesAddressesInBounds(t *testing.T) {
	prog := mustCompile(t, "(?/p:a\\gp;?b)\\gp;(?name:x+)(?=y)(?<=z)")
	for i, inst := range prog.Code {
		switch inst.Op {
		case program.OpJump, program.OpSplitLo, program.OpSplitHi,
			program.OpLook, program.OpNLook, program.OpLookR, program.OpNLookR,
			program.OpProc, program.OpNProc, program.OpCond:
			require.True(t, inst.Addr >= 0 && inst.Addr <= len(prog.Code),
				"instruction %d (%s) has out-of-bounds address %d", i, inst.Op, inst.Addr)
		}
	}
}

func TestCompileGroupNamesIncludeWholeMatch(t *testing.T) {
	prog := mustCompile(t, "(?word:\\d+)")
	require.Equal(t, []string{"", "word"}, prog.GroupNames)
}

func TestCompileProcedureEmitsForwardAndReverseEntries(t *testing.T) {
	res, err := parser.Parse([]rune("(?/p:ab)\\gp;"), parser.DefaultLimits)
	require.NoError(t, err)
	_, err = Compile(res, DefaultLimits)
	require.NoError(t, err)

	entry := res.Procs.Entry(0)
	require.NotEqual(t, entry.ForwardAddr, entry.ReverseAddr)
}

func TestCompileRepeatZeroZeroEmitsNothingExtra(t *testing.T) {
	withRepeat := mustCompile(t, "a{0,0}b")
	plain := mustCompile(t, "b")
	require.Equal(t, len(plain.Code), len(withRepeat.Code),
		"{0,0} must compile to zero instructions, per spec's resolved open question")
}

func TestCompileExceedsInstructionCeiling(t *testing.T) {
	res, err := parser.Parse([]rune("a{100,200}"), parser.DefaultLimits)
	require.NoError(t, err)
	_, err = Compile(res, Limits{MaxInstructions: 4})
	require.Error(t, err)
}

func TestCompileLookaheadUsesForwardBody(t *testing.T) {
	prog := mustCompile(t, "a(?=b)")
	found := false
	for _, inst := range prog.Code {
		if inst.Op == program.OpLook {
			found = true
		}
	}
	require.True(t, found, "(?=b) should compile to a forward Look, not LookR")
}

func TestCompileLookbehindUsesReverseBody(t *testing.T) {
	prog := mustCompile(t, "a(?<=b)")
	found := false
	for _, inst := range prog.Code {
		if inst.Op == program.OpLookR {
			found = true
		}
	}
	require.True(t, found, "(?<=b) should compile to LookR")
}
