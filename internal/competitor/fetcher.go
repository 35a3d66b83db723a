package competitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/presencelab/competitor-engine/pkg/places"
)

// fetcher drives the provider's nearby-search pagination protocol for
// one search strategy: page tokens, the server-mandated inter-page
// delay, a page cap, and a reserve hook consulted before every call.
type fetcher struct {
	client    places.Client
	maxPages  int
	pageDelay time.Duration

	// reserve is asked before each call whether the run may spend one
	// more; a false answer stops pagination without error.
	reserve func() bool
}

// fetchAll collects up to maxPages of results. A failing page ends
// pagination and returns whatever was collected along with the number of
// calls actually issued; partial results are acceptable, so callers log
// the error and keep going.
func (f *fetcher) fetchAll(ctx context.Context, req places.NearbySearchRequest) ([]places.Place, int, error) {
	var collected []places.Place
	calls := 0

	if !f.reserve() {
		return collected, calls, nil
	}
	resp, err := f.client.NearbySearch(ctx, req)
	calls++
	if err != nil {
		return collected, calls, err
	}
	collected = append(collected, resp.Results...)
	token := resp.NextPageToken

	for page := 1; page < f.maxPages && token != ""; page++ {
		// The provider rejects a page token until a minimum delay has
		// passed since it was issued. A plain sleep, not a backoff.
		timer := time.NewTimer(f.pageDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return collected, calls, ctx.Err()
		case <-timer.C:
		}

		if !f.reserve() {
			break
		}
		resp, err := f.client.NextPage(ctx, token)
		calls++
		if err != nil {
			zap.L().Debug("pagination stopped early",
				zap.Int("page", page),
				zap.Error(err),
			)
			break
		}
		collected = append(collected, resp.Results...)
		token = resp.NextPageToken
	}

	return collected, calls, nil
}
