package lrge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTwoSetBuilderDefaults(t *testing.T) {
	s := NewTwoSetBuilder().Build("reads.fastq")
	assert.Equal(t, "reads.fastq", s.input)
	assert.Equal(t, uint32(DefaultTargetReads), s.targetNumReads)
	assert.Equal(t, uint32(DefaultQueryReads), s.queryNumReads)
	assert.Equal(t, Nanopore, s.platform)
	assert.Equal(t, DefaultOverhangRatio, s.overhangRatio)
	assert.Equal(t, uint32(DefaultOverlapThreshold), s.overlapThreshold)
	assert.True(t, s.filterInternal)
	assert.True(t, s.useMinRef)
	assert.Nil(t, s.seed)
}

func TestTwoSetBuilderOverrides(t *testing.T) {
	s := NewTwoSetBuilder().
		Target(100).
		Query(50).
		Threads(4).
		Seed(42).
		Platform(PacBio).
		OverhangRatio(0.1).
		OverlapThreshold(200).
		FilterInternal(false).
		UseMinRef(false).
		KeepTemp(true).
		Build("reads.fastq")

	assert.Equal(t, uint32(100), s.targetNumReads)
	assert.Equal(t, uint32(50), s.queryNumReads)
	assert.Equal(t, uint32(4), s.threads)
	require := assert.New(t)
	require.NotNil(s.seed)
	require.Equal(uint64(42), *s.seed)
	assert.Equal(t, PacBio, s.platform)
	assert.Equal(t, 0.1, s.overhangRatio)
	assert.Equal(t, uint32(200), s.overlapThreshold)
	assert.False(t, s.filterInternal)
	assert.False(t, s.useMinRef)
	assert.True(t, s.keepTemp)
}

func TestNewTwoSetStrategyFromConfig(t *testing.T) {
	cfg := DefaultConfig("reads.fastq")
	seed := uint64(7)
	cfg.Seed = &seed

	s := NewTwoSetStrategy(cfg)

	assert.Equal(t, cfg.Input, s.input)
	assert.Equal(t, cfg.Target, s.targetNumReads)
	assert.Equal(t, cfg.Query, s.queryNumReads)
	assert.Equal(t, *cfg.Seed, *s.seed)
	assert.Equal(t, cfg.FilterInternal, s.filterInternal)
	assert.Equal(t, cfg.UseMinRef, s.useMinRef)
}

func TestTwoSetStrategyImplementsEstimate(t *testing.T) {
	var _ Estimate = &TwoSetStrategy{}
}
