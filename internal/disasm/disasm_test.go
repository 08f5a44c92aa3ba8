package disasm

import (
	"strings"
	"testing"

	"github.com/sentra-lang/uregex/internal/compiler"
	"github.com/sentra-lang/uregex/internal/parser"
	"github.com/stretchr/testify/require"
)

func TestDumpListsEveryInstructionAndGroup(t *testing.T) {
	res, err := parser.Parse([]rune("(?name:a+)"), parser.DefaultLimits)
	require.NoError(t, err)
	prog, err := compiler.Compile(res, compiler.DefaultLimits)
	require.NoError(t, err)

	out := Dump(prog)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// one line per instruction, plus the trailing groups line.
	require.Len(t, lines, len(prog.Code)+1)
	require.Contains(t, out, "match")
	require.Contains(t, out, `groups: 0="", 1="name"`)
}

func TestDumpRendersSetOperand(t *testing.T) {
	res, err := parser.Parse([]rune("[a-c]"), parser.DefaultLimits)
	require.NoError(t, err)
	prog, err := compiler.Compile(res, compiler.DefaultLimits)
	require.NoError(t, err)

	out := Dump(prog)
	require.Contains(t, out, `'a'-'c'`)
}
