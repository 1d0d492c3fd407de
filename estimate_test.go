package lrge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerReadEstimateZeroOverlapsIsInfinite(t *testing.T) {
	got := PerReadEstimate(5000, 100, 4800, 0, 100)
	assert.True(t, math.IsInf(got, 1))
}

func TestPerReadEstimateBasicFormula(t *testing.T) {
	// |T|=100, |q|=5000, mean_T=4800, OT=100, o=10
	// numerator = 100 * (5000 + 4800 - 200) = 100 * 9600 = 960000
	// estimate = 960000 / 10 = 96000
	got := PerReadEstimate(5000, 100, 4800, 10, 100)
	assert.InDelta(t, 96000.0, got, 1e-9)
}

func TestPerReadEstimateClampsNegativeNumeratorToZero(t *testing.T) {
	// |q|+mean_T < 2*OT
	got := PerReadEstimate(10, 10, 5, 1, 1000)
	assert.Equal(t, 0.0, got)
}

func TestMeanLengthOfEmptyIsZero(t *testing.T) {
	var m MeanLength
	assert.Equal(t, 0.0, m.Mean())
	assert.Equal(t, uint64(0), m.Sum())
	assert.Equal(t, uint64(0), m.Count())
}

func TestMeanLengthAccumulates(t *testing.T) {
	var m MeanLength
	m.Add(10)
	m.Add(20)
	m.Add(30)
	assert.Equal(t, uint64(60), m.Sum())
	assert.Equal(t, uint64(3), m.Count())
	assert.InDelta(t, 20.0, m.Mean(), 1e-9)
}
