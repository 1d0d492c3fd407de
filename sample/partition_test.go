package sample

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoPartitionDisjoint(t *testing.T) {
	p := NewTwoPartition[int](20, 15, rand.New(rand.NewSource(7)))
	for i := 0; i < 1000; i++ {
		p.Offer(i)
	}

	first := p.First()
	second := p.Second()
	require.LessOrEqual(t, len(first), 20)
	require.LessOrEqual(t, len(second), 15)

	seen := make(map[int]bool, len(first)+len(second))
	for _, v := range first {
		assert.False(t, seen[v], "value %d retained by both partitions", v)
		seen[v] = true
	}
	for _, v := range second {
		assert.False(t, seen[v], "value %d retained by both partitions", v)
		seen[v] = true
	}
}

func TestTwoPartitionTakesAllWhenStreamShort(t *testing.T) {
	p := NewTwoPartition[int](10, 10, rand.New(rand.NewSource(1)))
	for i := 0; i < 8; i++ {
		p.Offer(i)
	}
	assert.Equal(t, 8, len(p.First())+len(p.Second()))
}

func TestTwoPartitionDeterministic(t *testing.T) {
	run := func(seed int64) ([]int, []int) {
		p := NewTwoPartition[int](10, 10, rand.New(rand.NewSource(seed)))
		for i := 0; i < 300; i++ {
			p.Offer(i)
		}
		return p.First(), p.Second()
	}

	a1, a2 := run(99)
	b1, b2 := run(99)
	assert.ElementsMatch(t, a1, b1)
	assert.ElementsMatch(t, a2, b2)
}
