// vm tests exercise the executor directly against compiler output, the way
// other_examples/eaburns-T/re1's vm tests drive add/step without going
// through a public Compile/Execute wrapper (grounded on matcher.go's own
// header comment).
package vm

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/kr/text"
	"github.com/sentra-lang/uregex/internal/compiler"
	"github.com/sentra-lang/uregex/internal/parser"
	"github.com/sentra-lang/uregex/internal/program"
	"github.com/sentra-lang/uregex/internal/ucursor"
	"github.com/stretchr/testify/require"
)

// requireCaptures compares the full submatch slot vector against want,
// rather than checking one pair at a time: a mismatch anywhere prints a
// kr/pretty-formatted diff of the whole vector, indented with kr/text so it
// reads clearly under Go's multi-line test failure output (SPEC_FULL.md's
// rationale for golden-style comparison over a 2n-element vector).
func requireCaptures(t *testing.T, got []int, want ...int) {
	t.Helper()
	if !require.ObjectsAreEqual(got, want) {
		diff := pretty.Sprintf("got:  %# v\nwant: %# v", got, want)
		t.Fatalf("capture vector mismatch:\n%s", text.Indent(diff, "    "))
	}
}

func compileProg(t *testing.T, pattern string) *program.Program {
	t.Helper()
	res, err := parser.Parse([]rune(pattern), parser.DefaultLimits)
	require.NoError(t, err)
	prog, err := compiler.Compile(res, compiler.DefaultLimits)
	require.NoError(t, err)
	return prog
}

func run(t *testing.T, pattern, input string) ([]int, bool) {
	t.Helper()
	prog := compileProg(t, pattern)
	prog.ResetGenerations()
	m := NewMatcher(prog, ucursor.Encode16([]rune(input)), DefaultLimits)
	return m.Run(0)
}

func TestLiteralMatchFindsLeftmost(t *testing.T) {
	slots, ok := run(t, "bc", "abcabc")
	require.True(t, ok)
	require.Equal(t, 1, slots[0])
	require.Equal(t, 3, slots[1])
}

func TestNamedCaptureScenario1(t *testing.T) {
	slots, ok := run(t, "(?name:\\d+)", "abc123xyz")
	require.True(t, ok)
	requireCaptures(t, slots, 3, 6, 3, 6)
}

func TestBackrefScenario2(t *testing.T) {
	slots, ok := run(t, "(?w:\\w+)\\s+\\k w;", "foo foo")
	require.True(t, ok)
	require.Equal(t, 0, slots[0])
	require.Equal(t, 7, slots[1])

	_, ok = run(t, "(?w:\\w+)\\s+\\k w;", "foo bar")
	require.False(t, ok)
}

func TestQuoteRefScenario3(t *testing.T) {
	_, ok := run(t, "\\m(;.*\\M(;", "(hello]")
	require.False(t, ok)

	slots, ok := run(t, "\\m(;.*\\M(;", "(hello)")
	require.True(t, ok)
	require.Equal(t, 0, slots[0])
	require.Equal(t, 7, slots[1])
}

func TestProcedureRecursionScenario4(t *testing.T) {
	slots, ok := run(t, "(?/p:a(\\gp;)?b)\\gp;", "aaabbb")
	require.True(t, ok)
	require.Equal(t, 0, slots[0])
	require.Equal(t, 6, slots[1])
}

func TestLookaroundScenario5(t *testing.T) {
	slots, ok := run(t, "a(?=b)", "ab")
	require.True(t, ok)
	require.Equal(t, 0, slots[0])
	require.Equal(t, 1, slots[1])

	_, ok = run(t, "a(?=b)", "ac")
	require.False(t, ok)

	slots, ok = run(t, "a(?<=[ab])", "ba")
	require.True(t, ok)
	require.Equal(t, 1, slots[0])
	require.Equal(t, 2, slots[1])
}

func TestConditionalScenario6(t *testing.T) {
	pattern := "(?/a:x)(??\\ga; b | c)"

	slots, ok := run(t, pattern, "xb")
	require.True(t, ok)
	require.Equal(t, 0, slots[0])
	require.Equal(t, 2, slots[1])

	slots, ok = run(t, pattern, "yc")
	require.True(t, ok)
	require.Equal(t, 1, slots[0])
	require.Equal(t, 2, slots[1])
}

func TestGreedyVsLazyStar(t *testing.T) {
	slots, ok := run(t, "a.*b", "axbxb")
	require.True(t, ok)
	require.Equal(t, 0, slots[0])
	require.Equal(t, 5, slots[1]) // greedy: consumes to the last b

	slots, ok = run(t, "a.*?b", "axbxb")
	require.True(t, ok)
	require.Equal(t, 0, slots[0])
	require.Equal(t, 3, slots[1]) // lazy: stops at the first b
}

func TestUnmatchedGroupIsNull(t *testing.T) {
	slots, ok := run(t, "(?a:x)|(?b:y)", "y")
	require.True(t, ok)
	require.Equal(t, -1, slots[2]) // group "a" did not participate
	require.Equal(t, -1, slots[3])
	require.Equal(t, 0, slots[4])
	require.Equal(t, 1, slots[5])
}

func TestNoMatchReturnsFalse(t *testing.T) {
	_, ok := run(t, "xyz", "abc")
	require.False(t, ok)
}

func TestWordBoundary(t *testing.T) {
	slots, ok := run(t, "\\bcat\\b", "a cat sat")
	require.True(t, ok)
	require.Equal(t, 2, slots[0])
	require.Equal(t, 5, slots[1])
}

func TestAnchors(t *testing.T) {
	_, ok := run(t, "^abc$", "abc")
	require.True(t, ok)

	_, ok = run(t, "^abc$", "xabc")
	require.False(t, ok)
}

func TestSurrogatePairMatchedAsOneScalar(t *testing.T) {
	slots, ok := run(t, ".", string([]rune{0x1F600}))
	require.True(t, ok)
	require.Equal(t, 0, slots[0])
	require.Equal(t, 2, slots[1], "a supplementary scalar spans two UTF-16 code units")
}
