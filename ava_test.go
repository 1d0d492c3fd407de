package lrge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvaBuilderDefaults(t *testing.T) {
	s := NewAvaBuilder().Build("reads.fastq")
	assert.Equal(t, "reads.fastq", s.input)
	assert.Equal(t, uint32(DefaultAvaReads), s.numReads)
	assert.Equal(t, Nanopore, s.platform)
	assert.True(t, s.filterInternal)
	assert.True(t, s.subtractSelf)
	assert.Nil(t, s.seed)
}

func TestAvaBuilderOverrides(t *testing.T) {
	s := NewAvaBuilder().
		NumReads(1000).
		Threads(2).
		Seed(1).
		Platform(PacBio).
		SubtractSelf(false).
		Build("reads.fastq")

	assert.Equal(t, uint32(1000), s.numReads)
	assert.Equal(t, uint32(2), s.threads)
	require.NotNil(t, s.seed)
	assert.Equal(t, uint64(1), *s.seed)
	assert.Equal(t, PacBio, s.platform)
	assert.False(t, s.subtractSelf)
}

func TestNewAvaStrategyFromConfig(t *testing.T) {
	cfg := DefaultConfig("reads.fastq")
	n := uint32(500)
	cfg.Num = &n

	s := NewAvaStrategy(cfg)

	assert.Equal(t, cfg.Input, s.input)
	assert.Equal(t, n, s.numReads)
	assert.Equal(t, cfg.AllVsAllSubtractSelf, s.subtractSelf)
}

func TestNewAvaStrategyDefaultsNumReadsWhenConfigNumNil(t *testing.T) {
	cfg := DefaultConfig("reads.fastq")
	cfg.Num = nil

	s := NewAvaStrategy(cfg)

	assert.Equal(t, uint32(DefaultAvaReads), s.numReads)
}

func TestAvaStrategyImplementsEstimate(t *testing.T) {
	var _ Estimate = &AvaStrategy{}
}
