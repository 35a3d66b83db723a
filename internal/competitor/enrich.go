package competitor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/presencelab/competitor-engine/internal/budget"
	"github.com/presencelab/competitor-engine/internal/category"
	"github.com/presencelab/competitor-engine/internal/config"
)

// enrich fetches full details for each accepted candidate in ranked
// order, one budget-checked call each. Enrichment is best effort per
// item: a failed fetch keeps the candidate with its search-response
// fields, and budget exhaustion leaves the remaining tail unenriched.
func (s *Searcher) enrich(ctx context.Context, r *run, target Target) {
	log := zap.L().With(zap.String("run_id", r.id))

	for i := range r.accepted {
		c := &r.accepted[i]

		if !r.reserveCall() {
			r.trace("enrichment stopped: call budget exhausted after %d of %d", i, len(r.accepted))
			break
		}
		r.countDetails()

		details, err := s.client.GetDetails(ctx, c.PlaceID)
		if err != nil {
			if errors.Is(err, budget.ErrExhausted) {
				r.trace("enrichment stopped: global budget exhausted after %d of %d", i, len(r.accepted))
				break
			}
			log.Warn("details fetch failed, keeping candidate unenriched",
				zap.String("place_id", c.PlaceID),
				zap.Error(err),
			)
			r.trace("enrichment failed for %s, kept search fields", c.PlaceID)
			continue
		}

		if details.Name != "" {
			c.Name = details.Name
		}
		if len(c.Types) == 0 && len(details.Types) > 0 {
			c.Types = details.Types
			c.PrimaryType = category.PrimaryType(details.Types)
		}
		if c.Location == nil && details.Geometry.Location != nil {
			c.Location = details.Geometry.Location
		}
		if c.DistanceMeters == nil && c.Location != nil && target.Location != nil {
			d := DistanceMeters(*target.Location, *c.Location)
			c.DistanceMeters = &d
		}
		if details.Rating != nil {
			c.Rating = details.Rating
		}
		if details.UserRatingsTotal != nil {
			c.ReviewCount = details.UserRatingsTotal
		}
		if details.Website != "" {
			c.Website = details.Website
		}
		if details.Phone != "" {
			c.Phone = details.Phone
		}
		if addr := details.Address(); addr != "" {
			c.Address = addr
		}

		c.ComparisonNotes = comparisonNotes(target, *c, s.cfg.Reputation)
	}
}

// comparisonNotes builds human-readable comparisons between the target
// and one competitor. Notes only appear when both sides have data.
func comparisonNotes(target Target, c Candidate, cfg config.ReputationConfig) []string {
	var notes []string

	noteThreshold := cfg.RatingNoteThreshold
	if noteThreshold <= 0 {
		noteThreshold = 0.3
	}
	reviewsFraction := cfg.ReviewsNoteFraction
	if reviewsFraction <= 0 {
		reviewsFraction = 0.5
	}

	if target.Rating != nil && c.Rating != nil {
		diff := *c.Rating - *target.Rating
		switch {
		case diff > noteThreshold:
			notes = append(notes, fmt.Sprintf("Rated higher than you (%.1f vs %.1f)", *c.Rating, *target.Rating))
		case diff < -noteThreshold:
			notes = append(notes, fmt.Sprintf("Rated lower than you (%.1f vs %.1f)", *c.Rating, *target.Rating))
		}
	}

	if target.ReviewCount != nil && c.ReviewCount != nil {
		targetReviews := float64(*target.ReviewCount)
		diff := float64(*c.ReviewCount) - targetReviews
		switch {
		case diff > reviewsFraction*targetReviews:
			notes = append(notes, fmt.Sprintf("Has more reviews (%d vs %d)", *c.ReviewCount, *target.ReviewCount))
		case diff < -reviewsFraction*targetReviews:
			notes = append(notes, fmt.Sprintf("Has fewer reviews (%d vs %d)", *c.ReviewCount, *target.ReviewCount))
		}
	}

	return notes
}
