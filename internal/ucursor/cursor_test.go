package ucursor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextCombinesSurrogatePair(t *testing.T) {
	buf := Encode16([]rune{0x1F600}) // emoji, supplementary plane
	require.Len(t, buf, 2)

	c := Init(buf, 0, len(buf))
	r := c.Next()
	require.Equal(t, rune(0x1F600), r)
	require.Equal(t, 2, c.Pos())
	require.Equal(t, EOF, c.Next())
}

func TestNextYieldsUnpairedLeadSurrogateAlone(t *testing.T) {
	buf := []uint16{0xD800, 0x0041} // lone high surrogate, then 'A'
	c := Init(buf, 0, len(buf))

	require.Equal(t, rune(0xD800), c.Next())
	require.Equal(t, rune('A'), c.Next())
}

func TestPrevIsSymmetricWithNext(t *testing.T) {
	buf := Encode16([]rune{'a', 0x1F600, 'b'})
	c := Init(buf, 0, len(buf))

	var got []rune
	for !c.AtEnd() {
		got = append(got, c.Next())
	}
	require.Equal(t, []rune{'a', 0x1F600, 'b'}, got)

	var back []rune
	for !c.AtStart() {
		back = append(back, c.Prev())
	}
	require.Equal(t, []rune{'b', 0x1F600, 'a'}, back)
}

func TestPeekDoesNotMutate(t *testing.T) {
	buf := Encode16([]rune{'x', 'y'})
	c := Init(buf, 0, len(buf))

	require.Equal(t, rune('x'), c.Peek())
	require.Equal(t, rune('x'), c.Peek())
	require.Equal(t, 0, c.Pos())
}

func TestBoundariesReturnEOFWithoutMoving(t *testing.T) {
	buf := Encode16([]rune{'z'})
	c := Init(buf, 0, len(buf))

	require.Equal(t, EOF, c.Prev())
	require.Equal(t, 0, c.Pos())

	c.Next()
	require.Equal(t, EOF, c.Next())
	require.Equal(t, 1, c.Pos())
}
