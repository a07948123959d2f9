package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDRoundTrip(t *testing.T) {
	cells := []cellKey{
		{0, 0, 0},
		{-1, -1, -1},
		{5000, -4999, 12},
		{-axisOffset, axisOffset - 1, 0},
	}
	for _, c := range cells {
		for _, index := range []int{0, 1, maxStarsPerCell} {
			for member := range maxMembers {
				id := encodeID(c, index, member)
				gotCell, gotIndex, gotMember := decodeID(id)
				assert.Equal(t, c, gotCell)
				assert.Equal(t, index, gotIndex)
				assert.Equal(t, member, gotMember)
				assert.Equal(t, encodeID(c, index, 0), primaryID(id))
				assert.Less(t, id, uint64(1)<<63)
			}
		}
	}
}

func TestStochasticRoundBounds(t *testing.T) {
	rng := newRand(1, "test")
	for range 100 {
		n := stochasticRound(rng, 2.25)
		assert.True(t, n == 2 || n == 3)
	}
	assert.Equal(t, 0, stochasticRound(rng, -1))
}
