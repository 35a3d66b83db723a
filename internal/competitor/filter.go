package competitor

import (
	"github.com/presencelab/competitor-engine/internal/category"
	"github.com/presencelab/competitor-engine/pkg/places"
)

// Rejection reason codes, one per filter rule, logged and appended to
// the run trail.
const (
	ReasonSelfMatch       = "self_match"
	ReasonMissingName     = "missing_name"
	ReasonMissingAddress  = "missing_address"
	ReasonMissingLocation = "missing_location"
	ReasonFamilyMismatch  = "family_mismatch"
	ReasonBroadContainer  = "broad_container"
)

// Filter applies the candidate exclusion rules for one target.
type Filter struct {
	targetPlaceID     string
	targetPrimaryType string
	targetIsBroad     bool
}

// NewFilter builds a Filter for a target with the given identity and
// derived primary type (may be empty when unknown).
func NewFilter(targetPlaceID, targetPrimaryType string) *Filter {
	return &Filter{
		targetPlaceID:     targetPlaceID,
		targetPrimaryType: targetPrimaryType,
		targetIsBroad:     category.IsBroadContainerType(targetPrimaryType),
	}
}

// Reject reports whether a raw record must be excluded and the reason
// code of the first rule that fired.
func (f *Filter) Reject(p places.Place) (bool, string) {
	if p.PlaceID != "" && p.PlaceID == f.targetPlaceID {
		return true, ReasonSelfMatch
	}
	if p.Name == "" {
		return true, ReasonMissingName
	}

	// Downstream display needs an address; coordinates guard the
	// distance math from ever seeing a nil location.
	if p.Address() == "" {
		return true, ReasonMissingAddress
	}
	if p.Geometry.Location == nil {
		return true, ReasonMissingLocation
	}

	primary := category.PrimaryType(p.Types)
	if f.targetPrimaryType != "" && primary != "" {
		if !category.InFamily(primary, f.targetPrimaryType) {
			return true, ReasonFamilyMismatch
		}
	}

	// Broad venues only compete with each other.
	if category.IsBroadContainerType(primary) && !f.targetIsBroad {
		return true, ReasonBroadContainer
	}

	return false, ""
}

// newCandidate converts an accepted raw record into a Candidate with its
// primary type derived and the distance to target computed.
func newCandidate(p places.Place, target places.LatLng) Candidate {
	c := Candidate{
		PlaceID:     p.PlaceID,
		Name:        p.Name,
		Types:       p.Types,
		PrimaryType: category.PrimaryType(p.Types),
		Location:    p.Geometry.Location,
		Rating:      p.Rating,
		ReviewCount: p.UserRatingsTotal,
		Address:     p.Address(),
		Website:     p.Website,
		Phone:       p.Phone,
	}
	if c.Location != nil {
		d := DistanceMeters(target, *c.Location)
		c.DistanceMeters = &d
	}
	return c
}
