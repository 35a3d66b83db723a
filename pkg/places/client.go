// Package places is the engine's only I/O boundary: a client for a
// nearby-search places provider. Every billed call is paced by a rate
// limiter and charged against an injected budget guard before the
// request leaves the process.
package places

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/presencelab/competitor-engine/internal/budget"
	"github.com/presencelab/competitor-engine/internal/resilience"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// BudgetChannel names the guard channel all billed places calls spend from.
const BudgetChannel = "places-api"

// ErrNoAPIKey is returned by every operation when the client was built
// without credentials. Callers match it with errors.Is.
var ErrNoAPIKey = eris.New("places: api key not configured")

// detailsFields restricts detail responses to the fields the engine
// consumes, which is also what the provider bills for.
const detailsFields = "place_id,name,rating,user_ratings_total,website,formatted_phone_number,types,geometry,vicinity,formatted_address"

// Client performs places provider operations.
type Client interface {
	// NearbySearch finds places around a point, optionally filtered by a
	// provider type or a free-text keyword.
	NearbySearch(ctx context.Context, req NearbySearchRequest) (*SearchResponse, error)

	// NextPage fetches the next result page. The provider only honors a
	// token a short, server-mandated delay after issuing it; pacing is
	// the caller's responsibility.
	NextPage(ctx context.Context, pageToken string) (*SearchResponse, error)

	// TextSearch finds places matching a free-text query, optionally
	// biased toward a location.
	TextSearch(ctx context.Context, query string, bias *LatLng) (*SearchResponse, error)

	// GetDetails fetches the full record for one place.
	GetDetails(ctx context.Context, placeID string) (*Place, error)
}

// NearbySearchRequest describes one nearby search.
type NearbySearchRequest struct {
	Location     LatLng
	RadiusMeters int
	Type         string
	Keyword      string
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Results       []Place `json:"results"`
	NextPageToken string  `json:"next_page_token"`
	Status        string  `json:"status"`
}

// Place is a raw provider record. Rating and UserRatingsTotal are
// pointers because absence is meaningful downstream.
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Types            []string `json:"types"`
	Geometry         Geometry `json:"geometry"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	Vicinity         string   `json:"vicinity,omitempty"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Website          string   `json:"website,omitempty"`
	Phone            string   `json:"formatted_phone_number,omitempty"`
}

// Geometry holds a place's coordinates.
type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address returns the best available display address.
func (p Place) Address() string {
	if p.Vicinity != "" {
		return p.Vicinity
	}
	return p.FormattedAddress
}

type detailsResponse struct {
	Result *Place `json:"result"`
	Status string `json:"status"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithBudgetGuard charges every billed call against the guard. Calls
// the guard denies return an error wrapping budget.ErrExhausted without
// touching the network.
func WithBudgetGuard(g *budget.Guard) Option {
	return func(c *httpClient) {
		c.guard = g
	}
}

// WithRateLimit paces outbound calls at n requests per second.
func WithRateLimit(n float64) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithRetryPolicy overrides the transient-failure retry policy.
func WithRetryPolicy(p resilience.Policy) Option {
	return func(c *httpClient) {
		c.retry = p
	}
}

// WithDetailsCache caches GetDetails responses for ttl, so repeated
// lookups of the same place within a process do not rebill.
func WithDetailsCache(ttl time.Duration) Option {
	return func(c *httpClient) {
		if ttl > 0 {
			c.cache = gocache.New(ttl, ttl)
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	guard   *budget.Guard
	limiter *rate.Limiter
	retry   resilience.Policy
	cache   *gocache.Cache
}

// NewClient creates a places provider client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		retry: resilience.DefaultPolicy(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) NearbySearch(ctx context.Context, req NearbySearchRequest) (*SearchResponse, error) {
	params := url.Values{
		"location": {formatLatLng(req.Location)},
		"radius":   {strconv.Itoa(req.RadiusMeters)},
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}

	var resp SearchResponse
	if err := c.call(ctx, "nearbysearch", "/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) NextPage(ctx context.Context, pageToken string) (*SearchResponse, error) {
	params := url.Values{
		"pagetoken": {pageToken},
	}

	var resp SearchResponse
	if err := c.call(ctx, "nextpage", "/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) TextSearch(ctx context.Context, query string, bias *LatLng) (*SearchResponse, error) {
	params := url.Values{
		"query": {query},
	}
	if bias != nil {
		params.Set("location", formatLatLng(*bias))
	}

	var resp SearchResponse
	if err := c.call(ctx, "textsearch", "/textsearch/json", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) GetDetails(ctx context.Context, placeID string) (*Place, error) {
	if c.cache != nil {
		if hit, ok := c.cache.Get(placeID); ok {
			return hit.(*Place), nil
		}
	}

	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailsFields},
	}

	var resp detailsResponse
	if err := c.call(ctx, "details", "/details/json", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, eris.Errorf("places: empty details result for %s", placeID)
	}

	if c.cache != nil {
		c.cache.SetDefault(placeID, resp.Result)
	}
	return resp.Result, nil
}

// call performs one billed GET: rate-limit wait, budget reservation,
// then the request with transient-only retries.
func (c *httpClient) call(ctx context.Context, op, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return eris.Wrap(ErrNoAPIKey, "places: "+op)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "places: rate limit wait")
		}
	}

	if c.guard != nil && !c.guard.TrySpend(BudgetChannel) {
		return eris.Wrap(budget.ErrExhausted, "places: "+op)
	}

	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	body, err := resilience.Retry(ctx, c.retry, "places."+op, func(ctx context.Context) ([]byte, error) {
		return c.get(ctx, reqURL)
	})
	if err != nil {
		return eris.Wrap(err, "places: "+op)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "places: unmarshal "+op)
	}
	return nil
}

func (c *httpClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		if resilience.IsTransientStatus(resp.StatusCode) {
			return nil, resilience.Transient(err, resp.StatusCode)
		}
		return nil, err
	}
	return body, nil
}

// checkStatus maps provider application statuses to errors. ZERO_RESULTS
// is a valid empty answer, not a failure.
func checkStatus(status string) error {
	switch status {
	case "OK", "ZERO_RESULTS", "":
		return nil
	case "OVER_QUERY_LIMIT", "RESOURCE_EXHAUSTED":
		return eris.Errorf("places: provider quota exceeded (%s)", status)
	default:
		return eris.Errorf("places: provider status %s", status)
	}
}

func formatLatLng(l LatLng) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}
