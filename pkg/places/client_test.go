package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presencelab/competitor-engine/internal/budget"
	"github.com/presencelab/competitor-engine/internal/resilience"
)

func fastRetry() resilience.Policy {
	return resilience.Policy{MaxAttempts: 2, InitialBackoff: time.Millisecond, Multiplier: 2}
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestNearbySearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/nearbysearch/json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "-33.9,18.4", q.Get("location"))
		assert.Equal(t, "1500", q.Get("radius"))
		assert.Equal(t, "cafe", q.Get("type"))
		assert.Empty(t, q.Get("keyword"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResponse{
			Status: "OK",
			Results: []Place{
				{
					PlaceID:          "ChIJ-cafe1",
					Name:             "Cafe Aroma",
					Types:            []string{"cafe", "point_of_interest"},
					Geometry:         Geometry{Location: &LatLng{Lat: -33.9, Lng: 18.4}},
					Rating:           ptrF(4.6),
					UserRatingsTotal: ptrI(210),
					Vicinity:         "12 Kloof St",
				},
			},
			NextPageToken: "tok-1",
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.NearbySearch(context.Background(), NearbySearchRequest{
		Location:     LatLng{Lat: -33.9, Lng: 18.4},
		RadiusMeters: 1500,
		Type:         "cafe",
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "ChIJ-cafe1", resp.Results[0].PlaceID)
	assert.Equal(t, "tok-1", resp.NextPageToken)
	assert.InDelta(t, 4.6, *resp.Results[0].Rating, 0.001)
}

func TestNextPage_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-1", r.URL.Query().Get("pagetoken"))
		_ = json.NewEncoder(w).Encode(SearchResponse{Status: "OK"})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.NextPage(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.NextPageToken)
}

func TestTextSearch_WithBias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/textsearch/json", r.URL.Path)
		assert.Equal(t, "coffee shop", r.URL.Query().Get("query"))
		assert.Equal(t, "-33.9,18.4", r.URL.Query().Get("location"))
		_ = json.NewEncoder(w).Encode(SearchResponse{Status: "ZERO_RESULTS"})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.TextSearch(context.Background(), "coffee shop", &LatLng{Lat: -33.9, Lng: 18.4})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestGetDetails_FieldMaskAndCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "ChIJ-x", r.URL.Query().Get("place_id"))
		assert.Contains(t, r.URL.Query().Get("fields"), "user_ratings_total")
		assert.Contains(t, r.URL.Query().Get("fields"), "website")
		_ = json.NewEncoder(w).Encode(detailsResponse{
			Status: "OK",
			Result: &Place{PlaceID: "ChIJ-x", Name: "Cafe X", Website: "https://cafex.example"},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithDetailsCache(time.Minute))

	p1, err := client.GetDetails(context.Background(), "ChIJ-x")
	require.NoError(t, err)
	assert.Equal(t, "Cafe X", p1.Name)

	// Second lookup is served from cache.
	p2, err := client.GetDetails(context.Background(), "ChIJ-x")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_BudgetDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("request should not reach the network when budget is exhausted")
		_ = json.NewEncoder(w).Encode(SearchResponse{Status: "OK"})
	}))
	defer srv.Close()

	guard := budget.NewGuard(map[string]int{BudgetChannel: 0})
	client := NewClient("test-key", WithBaseURL(srv.URL), WithBudgetGuard(guard))

	_, err := client.NearbySearch(context.Background(), NearbySearchRequest{RadiusMeters: 1000})
	require.Error(t, err)
	assert.True(t, errors.Is(err, budget.ErrExhausted))
}

func TestClient_BudgetCharged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(SearchResponse{Status: "OK"})
	}))
	defer srv.Close()

	guard := budget.NewGuard(map[string]int{BudgetChannel: 2})
	client := NewClient("test-key", WithBaseURL(srv.URL), WithBudgetGuard(guard))

	_, err := client.NearbySearch(context.Background(), NearbySearchRequest{RadiusMeters: 1000})
	require.NoError(t, err)
	_, err = client.NextPage(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, guard.Used(BudgetChannel))

	_, err = client.NextPage(context.Background(), "tok")
	assert.True(t, errors.Is(err, budget.ErrExhausted))
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(SearchResponse{Status: "OK"})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRetryPolicy(fastRetry()))
	_, err := client.NearbySearch(context.Background(), NearbySearchRequest{RadiusMeters: 500})
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL), WithRetryPolicy(fastRetry()))
	_, err := client.NearbySearch(context.Background(), NearbySearchRequest{RadiusMeters: 500})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_ProviderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(SearchResponse{Status: "OVER_QUERY_LIMIT"})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.NearbySearch(context.Background(), NearbySearchRequest{RadiusMeters: 500})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestClient_MissingKey(t *testing.T) {
	client := NewClient("")
	_, err := client.NearbySearch(context.Background(), NearbySearchRequest{RadiusMeters: 500})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestPlace_Address(t *testing.T) {
	assert.Equal(t, "12 Kloof St", Place{Vicinity: "12 Kloof St", FormattedAddress: "12 Kloof St, Cape Town"}.Address())
	assert.Equal(t, "12 Kloof St, Cape Town", Place{FormattedAddress: "12 Kloof St, Cape Town"}.Address())
	assert.Empty(t, Place{}.Address())
}
