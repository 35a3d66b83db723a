package competitor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/presencelab/competitor-engine/internal/budget"
	"github.com/presencelab/competitor-engine/internal/category"
	"github.com/presencelab/competitor-engine/internal/config"
	"github.com/presencelab/competitor-engine/internal/cost"
	"github.com/presencelab/competitor-engine/pkg/places"
)

// Searcher discovers and ranks local competitors for a target business.
// It is safe for concurrent use; all per-invocation state lives in a run.
type Searcher struct {
	client places.Client
	calc   *cost.Calculator
	cfg    *config.Config
}

// NewSearcher creates a Searcher with the given provider client and
// configuration. The global budget guard is injected into the client,
// not the searcher: billing enforcement lives at the I/O boundary while
// the searcher tracks only its per-invocation cap.
func NewSearcher(client places.Client, cfg *config.Config) *Searcher {
	return &Searcher{
		client: client,
		calc: cost.NewCalculator(cost.Rates{
			NearbyPer1000:  cfg.Pricing.NearbyPer1000,
			TextPer1000:    cfg.Pricing.TextPer1000,
			DetailsPer1000: cfg.Pricing.DetailsPer1000,
		}),
		cfg: cfg,
	}
}

// run is the ephemeral state of one discovery invocation. Two strategy
// goroutines share it during a radius step, so counters are mutex
// protected.
type run struct {
	id string

	mu       sync.Mutex
	calls    int
	maxCalls int
	nearby   int
	text     int
	details  int

	accepted []Candidate
	seen     map[string]struct{}
	trail    []string
}

func newRun(maxCalls int) *run {
	return &run{
		id:       uuid.NewString()[:8],
		maxCalls: maxCalls,
		seen:     make(map[string]struct{}),
	}
}

// reserveCall reserves one call against the per-invocation cap. The
// global budget is the provider client's concern.
func (r *run) reserveCall() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxCalls > 0 && r.calls >= r.maxCalls {
		return false
	}
	r.calls++
	return true
}

func (r *run) callsUsed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *run) countNearby(n int) {
	r.mu.Lock()
	r.nearby += n
	r.mu.Unlock()
}

func (r *run) countText() {
	r.mu.Lock()
	r.text++
	r.mu.Unlock()
}

func (r *run) countDetails() {
	r.mu.Lock()
	r.details++
	r.mu.Unlock()
}

func (r *run) trace(format string, args ...any) {
	r.mu.Lock()
	r.trail = append(r.trail, fmt.Sprintf(format, args...))
	r.mu.Unlock()
}

// Discover runs the full radius-expansion search for the target and
// returns a ranked, enriched competitor list with a reputation gap.
// Degraded conditions (no provider, no target identity) come back as an
// empty Result with Error set; partial conditions (budget or deadline
// exhaustion, individual call failures) come back as partial results.
func (s *Searcher) Discover(ctx context.Context, target Target) *Result {
	r := newRun(s.cfg.Discovery.MaxCallsPerRun)
	log := zap.L().With(
		zap.String("run_id", r.id),
		zap.String("place_id", target.PlaceID),
	)

	result := &Result{RunID: r.id, Method: MethodRadiusExpansion, Gap: ReputationGap{Status: StatusUnknown}}

	if s.client == nil {
		result.Error = "places provider not configured"
		return result
	}
	if target.PlaceID == "" || target.Location == nil {
		result.Error = "competitor discovery requires the target's place id and coordinates"
		log.Info("discovery skipped", zap.String("reason", result.Error))
		return result
	}

	// One details call teaches us the target's own provider types,
	// rating, and review count.
	if err := s.fetchTargetDetails(ctx, r, &target); errors.Is(err, places.ErrNoAPIKey) {
		result.Error = "places provider credentials not configured"
		log.Info("discovery skipped", zap.String("reason", result.Error))
		return result
	}

	primaryType := category.PrimaryType(target.ProviderTypes)
	family := category.ResolveFamily(target.CategoryLabel, target.ProviderTypes)
	r.trace("target primary type %q, family %s", primaryType, family)
	log.Info("starting discovery",
		zap.String("primary_type", primaryType),
		zap.String("family", family.String()),
	)

	filter := NewFilter(target.PlaceID, primaryType)
	if primaryType == "" && target.CategoryLabel != "" {
		s.textFallback(ctx, r, target, filter)
	}
	s.expand(ctx, r, target, filter, primaryType)

	Rank(r.accepted)
	s.enrich(ctx, r, target)

	s.finish(r, target, result)
	log.Info("discovery complete",
		zap.Int("competitors", len(result.Competitors)),
		zap.Int("api_calls", result.APICalls),
		zap.String("gap_status", string(result.Gap.Status)),
	)
	return result
}

// EnrichProvided skips discovery for a pre-supplied competitor list and
// runs only the category filter, enrichment, and gap analysis. The
// family check still applies; an upstream list cannot bypass it.
func (s *Searcher) EnrichProvided(ctx context.Context, target Target, provided []Candidate) *Result {
	r := newRun(s.cfg.Discovery.MaxCallsPerRun)
	log := zap.L().With(zap.String("run_id", r.id), zap.String("place_id", target.PlaceID))

	result := &Result{RunID: r.id, Method: MethodProvidedList, Gap: ReputationGap{Status: StatusUnknown}}
	if s.client == nil {
		result.Error = "places provider not configured"
		return result
	}

	if len(target.ProviderTypes) == 0 && target.PlaceID != "" {
		if err := s.fetchTargetDetails(ctx, r, &target); errors.Is(err, places.ErrNoAPIKey) {
			result.Error = "places provider credentials not configured"
			return result
		}
	}
	primaryType := category.PrimaryType(target.ProviderTypes)
	r.trace("enriching provided list of %d, target primary type %q", len(provided), primaryType)

	limit := s.cfg.Discovery.MaxCompetitors
	for _, c := range provided {
		if limit > 0 && len(r.accepted) >= limit {
			break
		}
		if c.PlaceID == "" {
			continue
		}
		if _, dup := r.seen[c.PlaceID]; dup {
			continue
		}
		if c.PlaceID == target.PlaceID {
			r.trace("rejected %s: %s", c.PlaceID, ReasonSelfMatch)
			continue
		}
		if primaryType != "" && len(c.Types) > 0 && !category.MatchesFamily(c.Types, primaryType) {
			r.trace("rejected %s: %s", c.PlaceID, ReasonFamilyMismatch)
			continue
		}
		if c.Location != nil && target.Location != nil && c.DistanceMeters == nil {
			d := DistanceMeters(*target.Location, *c.Location)
			c.DistanceMeters = &d
		}
		r.seen[c.PlaceID] = struct{}{}
		r.accepted = append(r.accepted, c)
	}

	Rank(r.accepted)
	s.enrich(ctx, r, target)

	// Bare-id candidates only reveal their types through enrichment, so
	// the family check runs again over the enriched set. A list of place
	// ids cannot smuggle in an off-category business.
	if primaryType != "" {
		kept := r.accepted[:0]
		for _, c := range r.accepted {
			if len(c.Types) > 0 && !category.MatchesFamily(c.Types, primaryType) {
				r.trace("rejected %s after enrichment: %s", c.PlaceID, ReasonFamilyMismatch)
				continue
			}
			kept = append(kept, c)
		}
		r.accepted = kept
	}
	Rank(r.accepted)

	s.finish(r, target, result)
	log.Info("provided-list enrichment complete",
		zap.Int("competitors", len(result.Competitors)),
		zap.Int("api_calls", result.APICalls),
	)
	return result
}

// fetchTargetDetails merges the target's own provider record into any
// caller-supplied fields. Best effort apart from missing credentials,
// which the caller turns into a reported degraded result: on any other
// failure the search continues with what the caller gave us.
func (s *Searcher) fetchTargetDetails(ctx context.Context, r *run, target *Target) error {
	if !r.reserveCall() {
		return nil
	}
	r.countDetails()

	details, err := s.client.GetDetails(ctx, target.PlaceID)
	if err != nil {
		r.trace("target details fetch failed: %v", err)
		zap.L().Warn("target details fetch failed",
			zap.String("run_id", r.id),
			zap.Error(err),
		)
		return err
	}

	if len(details.Types) > 0 {
		target.ProviderTypes = details.Types
	}
	if target.Rating == nil && details.Rating != nil {
		target.Rating = details.Rating
	}
	if target.ReviewCount == nil && details.UserRatingsTotal != nil {
		target.ReviewCount = details.UserRatingsTotal
	}
	if target.Location == nil && details.Geometry.Location != nil {
		target.Location = details.Geometry.Location
	}
	r.trace("target details fetched, %d types", len(details.Types))
	return nil
}

// textFallback runs one location-biased text search when the target's
// provider types taught us nothing. The category label drives the query
// unless it is a blocked no-signal term, in which case the resolved
// family's first allowed keyword stands in.
func (s *Searcher) textFallback(ctx context.Context, r *run, target Target, filter *Filter) {
	query := strings.TrimSpace(target.CategoryLabel)
	if category.IsBlocked(query) {
		family := category.ResolveFamily(target.CategoryLabel, nil)
		if kws := category.AllowedKeywords(family); len(kws) > 0 {
			query = kws[0]
		}
	}
	if query == "" || !r.reserveCall() {
		return
	}
	r.countText()

	resp, err := s.client.TextSearch(ctx, query, target.Location)
	if err != nil {
		r.trace("text fallback %q failed: %v", query, err)
		return
	}
	accepted := s.acceptCandidates(r, target, filter, resp.Results, s.cfg.Discovery.MaxCompetitors)
	r.trace("text fallback %q: %d raw, %d accepted", query, len(resp.Results), accepted)
}

// expand walks the radius ladder, merging and filtering each step's
// strategy results into the accumulated set until the competitor cap or
// the call budget is reached.
func (s *Searcher) expand(ctx context.Context, r *run, target Target, filter *Filter, primaryType string) {
	maxAccepted := s.cfg.Discovery.MaxCompetitors
	log := zap.L().With(zap.String("run_id", r.id))

	for _, radius := range s.cfg.Discovery.RadiusLadderMeters {
		if maxAccepted > 0 && len(r.accepted) >= maxAccepted {
			r.trace("stopping expansion: competitor cap reached")
			break
		}
		if r.callsUsed() >= r.maxCalls && r.maxCalls > 0 {
			r.trace("stopping expansion: per-run call budget spent")
			break
		}
		if ctx.Err() != nil {
			r.trace("stopping expansion: %v", ctx.Err())
			break
		}

		merged := s.searchRadius(ctx, r, target, radius, primaryType)
		accepted := s.acceptCandidates(r, target, filter, merged, maxAccepted)
		r.trace("radius %dm: %d raw, %d accepted, %d total", radius, len(merged), accepted, len(r.accepted))
		log.Debug("radius step complete",
			zap.Int("radius_m", radius),
			zap.Int("raw", len(merged)),
			zap.Int("accepted", accepted),
		)
	}
}

// searchRadius issues this radius step's strategies concurrently and
// merges their pages, deduplicating by place id within the merge.
func (s *Searcher) searchRadius(ctx context.Context, r *run, target Target, radius int, primaryType string) []places.Place {
	reqs := s.strategies(target, radius, primaryType)

	results := make([][]places.Place, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			f := &fetcher{
				client:    s.client,
				maxPages:  s.cfg.Discovery.MaxPagesPerSearch,
				pageDelay: time.Duration(s.cfg.Discovery.PageDelaySecs) * time.Second,
				reserve:   r.reserveCall,
			}
			recs, calls, err := f.fetchAll(gctx, req)
			r.countNearby(calls)
			results[i] = recs
			// Cancellation and deadline expiry are graceful stops, not
			// strategy failures. A failed strategy contributes nothing;
			// the run goes on.
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				if errors.Is(err, budget.ErrExhausted) {
					r.trace("strategy at %dm stopped: global budget exhausted", radius)
				} else {
					r.trace("strategy at %dm failed: %v", radius, err)
					zap.L().Warn("search strategy failed",
						zap.String("run_id", r.id),
						zap.Int("radius_m", radius),
						zap.Error(err),
					)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	var merged []places.Place
	local := make(map[string]struct{})
	for _, recs := range results {
		for _, p := range recs {
			if p.PlaceID == "" {
				continue
			}
			if _, dup := local[p.PlaceID]; dup {
				continue
			}
			local[p.PlaceID] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}

// strategies builds this radius step's search requests: a type-filtered
// search and a keyword search when the primary type is known, or a
// single unfiltered search when it is not.
func (s *Searcher) strategies(target Target, radius int, primaryType string) []places.NearbySearchRequest {
	base := places.NearbySearchRequest{
		Location:     *target.Location,
		RadiusMeters: radius,
	}

	if primaryType == "" {
		return []places.NearbySearchRequest{base}
	}

	typed := base
	typed.Type = primaryType
	reqs := []places.NearbySearchRequest{typed}

	if s.cfg.Discovery.DualStrategy {
		keyword := category.Humanize(primaryType)
		if keyword != "" && !category.IsBlocked(keyword) {
			kw := base
			kw.Keyword = keyword
			reqs = append(reqs, kw)
		}
	}
	return reqs
}

// acceptCandidates filters a radius step's merged records and appends
// survivors, deduplicated against every earlier step, closest first, up
// to the remaining capacity. Returns how many were accepted.
func (s *Searcher) acceptCandidates(r *run, target Target, filter *Filter, merged []places.Place, maxAccepted int) int {
	var survivors []Candidate
	for _, p := range merged {
		if p.PlaceID == "" {
			continue
		}
		if _, dup := r.seen[p.PlaceID]; dup {
			continue
		}
		if rejected, reason := filter.Reject(p); rejected {
			r.trace("rejected %s (%s): %s", p.PlaceID, p.Name, reason)
			continue
		}
		survivors = append(survivors, newCandidate(p, *target.Location))
	}

	// Closest survivors claim the remaining capacity.
	Rank(survivors)

	accepted := 0
	for _, c := range survivors {
		if maxAccepted > 0 && len(r.accepted) >= maxAccepted {
			break
		}
		r.seen[c.PlaceID] = struct{}{}
		r.accepted = append(r.accepted, c)
		accepted++
	}
	return accepted
}

// finish assembles the final Result from the run state.
func (s *Searcher) finish(r *run, target Target, result *Result) {
	result.Competitors = r.accepted
	if result.Competitors == nil {
		result.Competitors = []Candidate{}
	}
	result.countWebsites()
	result.Gap = AnalyzeGap(target, result.Competitors, s.cfg.Reputation)
	result.APICalls = r.callsUsed()
	result.CostUSD = s.calc.Run(r.nearby, r.text, r.details)
	result.Trail = r.trail
}
