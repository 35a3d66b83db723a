package competitor

import (
	"math"
	"sort"

	"github.com/presencelab/competitor-engine/pkg/places"
)

// earthRadiusMeters is the mean Earth radius used for great-circle math.
const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle distance between two points,
// rounded to the nearest meter.
func DistanceMeters(a, b places.LatLng) int {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	d := 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return int(math.Round(d))
}

// Rank orders candidates deterministically: distance ascending, then
// review count descending, then rating descending. Candidates without a
// distance sort last; missing review counts and ratings count as zero
// for tie-breaking only. Sorting is stable, so re-ranking an already
// ranked set is a no-op.
func Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := rankDistance(candidates[i]), rankDistance(candidates[j])
		if di != dj {
			return di < dj
		}
		ri, rj := rankReviews(candidates[i]), rankReviews(candidates[j])
		if ri != rj {
			return ri > rj
		}
		return rankRating(candidates[i]) > rankRating(candidates[j])
	})
}

func rankDistance(c Candidate) float64 {
	if c.DistanceMeters == nil {
		return math.Inf(1)
	}
	return float64(*c.DistanceMeters)
}

func rankReviews(c Candidate) int {
	if c.ReviewCount == nil {
		return 0
	}
	return *c.ReviewCount
}

func rankRating(c Candidate) float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}
