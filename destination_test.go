package fbhost

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDestinationEmpty(t *testing.T) {
	d := ParseDestination("")
	require.True(t, d.Empty())
	require.Equal(t, "", d.String())
}

func TestParseDestinationSegments(t *testing.T) {
	d := ParseDestination("res1.blk1")
	require.False(t, d.Empty())
	require.Equal(t, "res1.blk1", d.String())

	head, rest := d.Pop()
	require.Equal(t, "res1", head)
	require.Equal(t, Destination{"blk1"}, rest)

	head, rest = rest.Pop()
	require.Equal(t, "blk1", head)
	require.True(t, rest.Empty())
}

func TestParsePortDestination(t *testing.T) {
	pd, ok := ParsePortDestination("blk1.Q")
	require.True(t, ok)
	require.Equal(t, PortDestination{Block: "blk1", Port: "Q"}, pd)
	require.Equal(t, "blk1.Q", pd.String())
}

func TestParsePortDestinationRejectsZeroOrMultipleDots(t *testing.T) {
	for _, s := range []string{"blk1", "blk1.a.b", ".Q", "blk1.", ""} {
		_, ok := ParsePortDestination(s)
		require.False(t, ok, "expected %q to be rejected", s)
	}
}
