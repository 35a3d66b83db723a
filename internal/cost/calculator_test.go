package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculator_PerClass(t *testing.T) {
	c := NewCalculator(DefaultRates())

	assert.InDelta(t, 0.032, c.Nearby(1), 1e-9)
	assert.InDelta(t, 0.032, c.Text(1), 1e-9)
	assert.InDelta(t, 0.017, c.Details(1), 1e-9)
	assert.InDelta(t, 32.00, c.Nearby(1000), 1e-9)
}

func TestCalculator_Run(t *testing.T) {
	c := NewCalculator(DefaultRates())

	// 6 nearby pages + 1 text + 11 details (target + 10 competitors).
	got := c.Run(6, 1, 11)
	want := 0.032*6 + 0.032 + 0.017*11
	assert.InDelta(t, want, got, 1e-9)
}

func TestCalculator_ZeroCalls(t *testing.T) {
	c := NewCalculator(DefaultRates())
	assert.Zero(t, c.Run(0, 0, 0))
}

func TestCalculator_CustomRates(t *testing.T) {
	c := NewCalculator(Rates{NearbyPer1000: 10, TextPer1000: 20, DetailsPer1000: 30})
	assert.InDelta(t, 0.01+0.02+0.03, c.Run(1, 1, 1), 1e-9)
}
