package paf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	line := "SRR28370649.1\t4402\t40\t237\t-\tSRR28370649.7311\t5094\t41\t238\t190\t197\t0\ttp:A:S\tcm:i:59\ts1:i:190\tdv:f:0.0022\trl:i:56"
	r, err := Parse(line)
	require.NoError(t, err)

	assert.Equal(t, "SRR28370649.1", r.QueryName)
	assert.Equal(t, 4402, r.QueryLen)
	assert.Equal(t, 40, r.QueryStart)
	assert.Equal(t, 237, r.QueryEnd)
	assert.Equal(t, byte('-'), r.Strand)
	assert.Equal(t, "SRR28370649.7311", r.TargetName)
	assert.Equal(t, 5094, r.TargetLen)
	assert.Equal(t, 41, r.TargetStart)
	assert.Equal(t, 238, r.TargetEnd)
	assert.Equal(t, 190, r.MatchLen)
	assert.Equal(t, 197, r.BlockLen)
	assert.Equal(t, 0, r.MapQ)

	tp, ok := r.Tag("tp")
	require.True(t, ok)
	assert.Equal(t, "S", tp)

	assert.InDelta(t, 0.0022, r.DV(), 1e-9)
}

func TestParseRecordTooFewFields(t *testing.T) {
	_, err := Parse("a\t1\t2\t3\t+\tb\t1\t2\t3")
	assert.Error(t, err)
}

func TestParseRecordBadStrand(t *testing.T) {
	line := "a\t10\t0\t5\tX\tb\t10\t0\t5\t5\t5\t60"
	_, err := Parse(line)
	assert.Error(t, err)
}

func TestParseRecordBadTag(t *testing.T) {
	line := "a\t10\t0\t5\t+\tb\t10\t0\t5\t5\t5\t60\tbadtag"
	_, err := Parse(line)
	assert.Error(t, err)
}

func TestParseRecordNoTags(t *testing.T) {
	line := "a\t10\t0\t5\t+\tb\t10\t0\t5\t5\t5\t60"
	r, err := Parse(line)
	require.NoError(t, err)
	assert.Empty(t, r.Tags)
	assert.Equal(t, float64(0), r.DV())
}
