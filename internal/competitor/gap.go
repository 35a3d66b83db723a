package competitor

import (
	"math"
	"sort"

	"github.com/presencelab/competitor-engine/internal/config"
)

// AnalyzeGap compares the target's rating and review count against the
// competitor set's median and top values and classifies the target as
// ahead, behind, competitive, or unknown.
//
// Medians use the sorted values' element at index n/2, not an
// interpolated median.
func AnalyzeGap(target Target, competitors []Candidate, cfg config.ReputationConfig) ReputationGap {
	gap := ReputationGap{
		TargetRating: target.Rating,
		Status:       StatusUnknown,
	}
	if target.ReviewCount != nil {
		gap.TargetReviews = *target.ReviewCount
	}

	var ratings []float64
	var reviews []int
	for _, c := range competitors {
		if c.Rating != nil {
			ratings = append(ratings, *c.Rating)
		}
		if c.ReviewCount != nil {
			reviews = append(reviews, *c.ReviewCount)
		}
	}

	if len(ratings) > 0 {
		sort.Float64s(ratings)
		m := ratings[len(ratings)/2]
		gap.MedianRating = &m
		top := ratings[len(ratings)-1]
		gap.TopRating = &top
	}
	if len(reviews) > 0 {
		sort.Ints(reviews)
		gap.MedianReviews = reviews[len(reviews)/2]
		gap.TopReviews = reviews[len(reviews)-1]
	}

	if target.Rating != nil && gap.MedianRating != nil {
		g := math.Round((*target.Rating-*gap.MedianRating)*10) / 10
		gap.RatingGap = &g
	}
	gap.ReviewsGap = gap.TargetReviews - gap.MedianReviews

	gap.Status = classify(gap, cfg)
	return gap
}

func classify(gap ReputationGap, cfg config.ReputationConfig) GapStatus {
	threshold := cfg.RatingGapThreshold
	if threshold <= 0 {
		threshold = 0.2
	}
	behindFraction := cfg.ReviewsBehindFraction
	if behindFraction <= 0 {
		behindFraction = 0.3
	}

	if gap.RatingGap != nil && *gap.RatingGap > threshold && gap.ReviewsGap >= 0 {
		return StatusAhead
	}
	if gap.RatingGap != nil && *gap.RatingGap < -threshold {
		return StatusBehind
	}
	if float64(gap.ReviewsGap) < -behindFraction*float64(gap.MedianReviews) {
		return StatusBehind
	}
	if gap.RatingGap != nil {
		return StatusCompetitive
	}
	if gap.TargetReviews > 0 {
		return StatusCompetitive
	}
	return StatusUnknown
}
