package competitor

import (
	"context"
	"fmt"
	"sync"

	"github.com/presencelab/competitor-engine/internal/config"
	"github.com/presencelab/competitor-engine/pkg/places"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func ids(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.PlaceID)
	}
	return out
}

// strategyKey identifies a nearby search by radius and filter so tests
// can script distinct responses per strategy.
func strategyKey(radius int, typ, keyword string) string {
	return fmt.Sprintf("%d|%s|%s", radius, typ, keyword)
}

// mockClient implements places.Client with scripted responses.
type mockClient struct {
	mu sync.Mutex

	nearby  map[string]*places.SearchResponse // keyed by strategyKey
	pages   map[string]*places.SearchResponse // keyed by page token
	details map[string]*places.Place
	text    *places.SearchResponse

	nearbyErr  error
	detailsErr map[string]error

	nearbyCalls  int
	pageCalls    int
	textCalls    int
	detailsCalls int
}

func (m *mockClient) NearbySearch(_ context.Context, req places.NearbySearchRequest) (*places.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nearbyCalls++
	if m.nearbyErr != nil {
		return nil, m.nearbyErr
	}
	if resp, ok := m.nearby[strategyKey(req.RadiusMeters, req.Type, req.Keyword)]; ok {
		return resp, nil
	}
	return &places.SearchResponse{Status: "ZERO_RESULTS"}, nil
}

func (m *mockClient) NextPage(_ context.Context, token string) (*places.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageCalls++
	if resp, ok := m.pages[token]; ok {
		return resp, nil
	}
	return &places.SearchResponse{Status: "ZERO_RESULTS"}, nil
}

func (m *mockClient) TextSearch(_ context.Context, _ string, _ *places.LatLng) (*places.SearchResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textCalls++
	if m.text != nil {
		return m.text, nil
	}
	return &places.SearchResponse{Status: "ZERO_RESULTS"}, nil
}

func (m *mockClient) GetDetails(_ context.Context, placeID string) (*places.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailsCalls++
	if err, ok := m.detailsErr[placeID]; ok {
		return nil, err
	}
	if p, ok := m.details[placeID]; ok {
		return p, nil
	}
	return &places.Place{PlaceID: placeID}, nil
}

func (m *mockClient) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nearbyCalls + m.pageCalls + m.textCalls + m.detailsCalls
}

// testConfig returns a config with a short ladder and no pagination
// delay so tests run without wall-clock waiting.
func testConfig() *config.Config {
	return &config.Config{
		Discovery: config.DiscoveryConfig{
			RadiusLadderMeters: []int{1500, 3000},
			MaxCompetitors:     10,
			MaxCallsPerRun:     60,
			MaxPagesPerSearch:  3,
			PageDelaySecs:      0,
			DualStrategy:       true,
		},
		Pricing: config.PricingConfig{
			NearbyPer1000:  32.00,
			TextPer1000:    32.00,
			DetailsPer1000: 17.00,
		},
		Reputation: config.ReputationConfig{
			RatingGapThreshold:    0.2,
			RatingNoteThreshold:   0.3,
			ReviewsNoteFraction:   0.5,
			ReviewsBehindFraction: 0.3,
		},
	}
}

// Cafe Aroma in Cape Town, the recurring test target.
var (
	aromaLoc = places.LatLng{Lat: -33.9, Lng: 18.4}

	cafeAroma = Target{
		PlaceID:     "ChIJ-self",
		Location:    &aromaLoc,
		Rating:      ptrF(4.2),
		ReviewCount: ptrI(100),
	}
)

// place builds a raw record near the target, offset north by roughly
// offsetMeters.
func place(id, name string, types []string, offsetMeters int) places.Place {
	loc := &places.LatLng{
		Lat: aromaLoc.Lat + float64(offsetMeters)/111320.0,
		Lng: aromaLoc.Lng,
	}
	return places.Place{
		PlaceID:  id,
		Name:     name,
		Types:    types,
		Geometry: places.Geometry{Location: loc},
		Vicinity: "somewhere near Kloof St",
	}
}

func aromaDetails() *places.Place {
	return &places.Place{
		PlaceID:          "ChIJ-self",
		Name:             "Cafe Aroma",
		Types:            []string{"cafe", "point_of_interest", "establishment"},
		Geometry:         places.Geometry{Location: &aromaLoc},
		Rating:           ptrF(4.2),
		UserRatingsTotal: ptrI(100),
	}
}
