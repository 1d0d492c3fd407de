package lrge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateEmptyYieldsNaN(t *testing.T) {
	r := Aggregate(nil, false, LowerQuantile, UpperQuantile)
	assert.True(t, math.IsNaN(r.Estimate))
	assert.True(t, math.IsNaN(r.Low))
	assert.True(t, math.IsNaN(r.High))
}

func TestAggregateAllInfiniteExcludedYieldsNaN(t *testing.T) {
	estimates := []float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	r := Aggregate(estimates, false, LowerQuantile, UpperQuantile)
	assert.True(t, math.IsNaN(r.Estimate))
}

func TestAggregateMedianOfOddCount(t *testing.T) {
	estimates := []float64{10, 30, 20}
	r := Aggregate(estimates, false, 0, 1)
	assert.Equal(t, 20.0, r.Estimate)
	assert.Equal(t, 10.0, r.Low)
	assert.Equal(t, 30.0, r.High)
}

func TestAggregateIncludeInfiniteDominatesUpperQuantile(t *testing.T) {
	estimates := []float64{10, 20, 30, math.Inf(1)}
	r := Aggregate(estimates, true, 0, 1)
	assert.True(t, math.IsInf(r.High, 1))
}

func TestAggregateLinearInterpolationBetweenRanks(t *testing.T) {
	// sorted: 0,10,20,30,40; q=0.5 -> h=(5-1)*0.5=2 -> v[2]=20
	estimates := []float64{40, 0, 20, 10, 30}
	r := Aggregate(estimates, false, 0.25, 0.75)
	assert.InDelta(t, 20.0, r.Estimate, 1e-9)
	// q=0.25 -> h=1.0 -> v[1]=10
	assert.InDelta(t, 10.0, r.Low, 1e-9)
	// q=0.75 -> h=3.0 -> v[3]=30
	assert.InDelta(t, 30.0, r.High, 1e-9)
}
