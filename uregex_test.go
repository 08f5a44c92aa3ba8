package uregex

import (
	"testing"

	"github.com/sentra-lang/uregex/internal/rxerr"
	"github.com/stretchr/testify/require"
)

func TestCompileAndExecuteNamedCapture(t *testing.T) {
	prog, err := Compile(`(?name:\d+)`)
	require.NoError(t, err)
	require.Equal(t, []string{"", "name"}, prog.GroupNames())
	require.Equal(t, 2, prog.GroupCount())

	spans, ok := prog.ExecuteString("abc123xyz")
	require.True(t, ok)
	require.True(t, spans[0].Matched)
	require.Equal(t, Span{Start: 3, End: 6, Matched: true}, spans[0])
	require.Equal(t, spans[0], spans[1])
}

func TestExecuteNoMatch(t *testing.T) {
	prog, err := Compile("xyz")
	require.NoError(t, err)
	_, ok := prog.ExecuteString("abc")
	require.False(t, ok)
}

func TestCompileErrorReportsKind(t *testing.T) {
	_, err := Compile("(?n:a")
	require.Error(t, err)
	ce, ok := err.(*rxerr.CompileError)
	require.True(t, ok)
	require.Equal(t, rxerr.MissingParen, ce.Kind)
}

func TestExecuteRepeatedlyOnSameProgram(t *testing.T) {
	prog, err := Compile(`\d+`)
	require.NoError(t, err)

	spans1, ok1 := prog.ExecuteString("a42b")
	require.True(t, ok1)
	require.Equal(t, 1, spans1[0].Start)
	require.Equal(t, 3, spans1[0].End)

	spans2, ok2 := prog.ExecuteString("x7y")
	require.True(t, ok2)
	require.Equal(t, 1, spans2[0].Start)
	require.Equal(t, 2, spans2[0].End)
}

func TestPrintProducesNonEmptyDump(t *testing.T) {
	prog, err := Compile("a+")
	require.NoError(t, err)
	require.NotEmpty(t, prog.Print())
}

func TestExecuteOnRawUTF16Buffer(t *testing.T) {
	prog, err := Compile("b.")
	require.NoError(t, err)
	buf := []uint16{'a', 'b', 'c'}
	spans, ok := prog.Execute(buf)
	require.True(t, ok)
	require.Equal(t, 1, spans[0].Start)
	require.Equal(t, 3, spans[0].End)
}
