// Package cost computes billed spend for places provider usage.
package cost

// Rates holds places API pricing in USD per 1000 calls, per call class.
type Rates struct {
	NearbyPer1000  float64 `yaml:"nearby_per_1000" mapstructure:"nearby_per_1000"`
	TextPer1000    float64 `yaml:"text_per_1000" mapstructure:"text_per_1000"`
	DetailsPer1000 float64 `yaml:"details_per_1000" mapstructure:"details_per_1000"`
}

// DefaultRates returns current list pricing.
func DefaultRates() Rates {
	return Rates{
		NearbyPer1000:  32.00,
		TextPer1000:    32.00,
		DetailsPer1000: 17.00,
	}
}

// Calculator computes costs for places API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Nearby returns the cost of n nearby-search calls (pages bill like
// fresh searches).
func (c *Calculator) Nearby(n int) float64 {
	return float64(n) / 1000 * c.rates.NearbyPer1000
}

// Text returns the cost of n text-search calls.
func (c *Calculator) Text(n int) float64 {
	return float64(n) / 1000 * c.rates.TextPer1000
}

// Details returns the cost of n place-details calls.
func (c *Calculator) Details(n int) float64 {
	return float64(n) / 1000 * c.rates.DetailsPer1000
}

// Run totals the cost of one discovery run's call mix.
func (c *Calculator) Run(nearby, text, details int) float64 {
	return c.Nearby(nearby) + c.Text(text) + c.Details(details)
}
