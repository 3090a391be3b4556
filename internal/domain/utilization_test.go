package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

// roundedPercentage считает floor(current*100/max + 1/2) в точных дробях
func roundedPercentage(current, max int) int {
	r := big.NewRat(int64(current)*100, int64(max))
	r.Add(r, big.NewRat(1, 2))
	return int(new(big.Int).Quo(r.Num(), r.Denom()).Int64())
}

func TestClassify_MatchesRoundedRatio(t *testing.T) {
	for max := 1; max <= 40; max++ {
		for current := 0; current <= 60; current++ {
			u := Classify(current, max)

			assert.Equal(t, roundedPercentage(current, max), u.Percentage, "current=%d max=%d", current, max)
			assert.Equal(t, current > max, u.IsOver, "current=%d max=%d", current, max)
		}
	}
}

func TestClassify_HalfRoundsUp(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		max      int
		expected int
	}{
		{name: "57.5 percent", current: 23, max: 40, expected: 58},
		{name: "102.5 percent", current: 41, max: 40, expected: 103},
		{name: "127.5 percent", current: 51, max: 40, expected: 128},
		{name: "12.5 percent", current: 1, max: 8, expected: 13},
		{name: "just below half", current: 1, max: 3, expected: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.current, tt.max).Percentage)
		})
	}
}

func TestClassify_ZeroLimit(t *testing.T) {
	for _, current := range []int{0, 1, 5, 1000} {
		u := Classify(current, 0)
		assert.Equal(t, 0, u.Percentage)
		assert.False(t, u.IsOver)
	}

	u := Classify(3, -2)
	assert.Equal(t, 0, u.Percentage)
	assert.False(t, u.IsOver)
}

func TestClassify_Examples(t *testing.T) {
	near := Classify(18, 20)
	assert.Equal(t, Utilization{Percentage: 90, IsOver: false}, near)
	assert.Equal(t, StatusNearCapacity, Present(near.Percentage, near.IsOver).Label)

	over := Classify(22, 20)
	assert.Equal(t, Utilization{Percentage: 110, IsOver: true}, over)
	assert.Equal(t, StatusOverCapacity, Present(over.Percentage, over.IsOver).Label)
	assert.Equal(t, 100, BarWidth(over.Percentage))
	assert.Equal(t, "110%", FormatPercentage(over.Percentage))

	unconfigured := Classify(5, 0)
	assert.Equal(t, Utilization{Percentage: 0, IsOver: false}, unconfigured)
	assert.Equal(t, StatusAvailable, Present(unconfigured.Percentage, unconfigured.IsOver).Label)
}

func TestClassify_OverEvenWhenRoundedToHundred(t *testing.T) {
	// 201/200 = 100.5% rounds to 101, 1001/1000 = 100.1% rounds to 100
	u := Classify(1001, 1000)
	assert.Equal(t, 100, u.Percentage)
	assert.True(t, u.IsOver)
	assert.Equal(t, StatusOverCapacity, Present(u.Percentage, u.IsOver).Label)
}

func TestClassify_NegativeCurrent(t *testing.T) {
	assert.Equal(t, Utilization{}, Classify(-4, 10))
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 0, BarWidth(-1))
	assert.Equal(t, 0, BarWidth(0))
	assert.Equal(t, 55, BarWidth(55))
	assert.Equal(t, 100, BarWidth(100))
	assert.Equal(t, 100, BarWidth(134))
	assert.Equal(t, "134%", FormatPercentage(134))
}
