// Package competitor implements local competitor discovery and ranking:
// an adaptive radius-expansion search over a places provider, category
// filtering, deterministic distance ranking, best-effort enrichment, and
// a reputation-gap comparison against the discovered set.
package competitor

import (
	"github.com/presencelab/competitor-engine/pkg/places"
)

// Target is the business competitors are discovered for. Discovery
// requires both PlaceID and Location; without them the engine reports a
// degraded empty result instead of guessing.
type Target struct {
	PlaceID       string         `json:"place_id,omitempty"`
	Location      *places.LatLng `json:"location,omitempty"`
	CategoryLabel string         `json:"category_label,omitempty"`
	ProviderTypes []string       `json:"provider_types,omitempty"`
	Rating        *float64       `json:"rating,omitempty"`
	ReviewCount   *int           `json:"review_count,omitempty"`
}

// Candidate is a prospective competitor. Fields accumulate as it moves
// through filtering (PrimaryType), ranking (DistanceMeters), and
// enrichment (Website, Phone, ComparisonNotes).
type Candidate struct {
	PlaceID         string         `json:"place_id"`
	Name            string         `json:"name"`
	Types           []string       `json:"types,omitempty"`
	PrimaryType     string         `json:"primary_type,omitempty"`
	Location        *places.LatLng `json:"location,omitempty"`
	Rating          *float64       `json:"rating,omitempty"`
	ReviewCount     *int           `json:"review_count,omitempty"`
	Address         string         `json:"address,omitempty"`
	DistanceMeters  *int           `json:"distance_meters,omitempty"`
	Website         string         `json:"website,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	ComparisonNotes []string       `json:"comparison_notes,omitempty"`
}

// GapStatus classifies the target's reputation against its competitors.
type GapStatus string

// Gap statuses.
const (
	StatusAhead       GapStatus = "ahead"
	StatusBehind      GapStatus = "behind"
	StatusCompetitive GapStatus = "competitive"
	StatusUnknown     GapStatus = "unknown"
)

// ReputationGap compares the target's rating and review count against
// the competitor set's median and top values.
type ReputationGap struct {
	TargetRating  *float64  `json:"target_rating,omitempty"`
	TargetReviews int       `json:"target_reviews"`
	MedianRating  *float64  `json:"median_rating,omitempty"`
	MedianReviews int       `json:"median_reviews"`
	TopRating     *float64  `json:"top_rating,omitempty"`
	TopReviews    int       `json:"top_reviews"`
	RatingGap     *float64  `json:"rating_gap,omitempty"`
	ReviewsGap    int       `json:"reviews_gap"`
	Status        GapStatus `json:"status"`
}

// Search methods reported in Result for observability.
const (
	MethodRadiusExpansion = "radius_expansion"
	MethodProvidedList    = "provided_list"
)

// Result is what a discovery run produces. Error is a reported degraded
// condition (missing credentials or target identity), never a panic path;
// budget exhaustion and individual call failures yield partial results
// with an empty Error.
type Result struct {
	RunID          string        `json:"run_id"`
	Competitors    []Candidate   `json:"competitors"`
	WithWebsite    int           `json:"with_website"`
	WithoutWebsite int           `json:"without_website"`
	Gap            ReputationGap `json:"reputation_gap"`
	Method         string        `json:"method"`
	APICalls       int           `json:"api_calls"`
	CostUSD        float64       `json:"cost_usd"`
	Trail          []string      `json:"trail,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// countWebsites fills the with/without-website tallies from the final set.
func (r *Result) countWebsites() {
	r.WithWebsite, r.WithoutWebsite = 0, 0
	for _, c := range r.Competitors {
		if c.Website != "" {
			r.WithWebsite++
		} else {
			r.WithoutWebsite++
		}
	}
}
