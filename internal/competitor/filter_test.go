package competitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/presencelab/competitor-engine/pkg/places"
)

func TestFilter_SelfMatch(t *testing.T) {
	f := NewFilter("ChIJ-self", "cafe")
	rejected, reason := f.Reject(place("ChIJ-self", "Cafe Aroma", []string{"cafe"}, 0))
	assert.True(t, rejected)
	assert.Equal(t, ReasonSelfMatch, reason)
}

func TestFilter_MissingName(t *testing.T) {
	f := NewFilter("ChIJ-self", "cafe")
	p := place("ChIJ-x", "", []string{"cafe"}, 100)
	rejected, reason := f.Reject(p)
	assert.True(t, rejected)
	assert.Equal(t, ReasonMissingName, reason)
}

func TestFilter_MissingAddress(t *testing.T) {
	f := NewFilter("ChIJ-self", "cafe")
	p := place("ChIJ-x", "No Address Cafe", []string{"cafe"}, 100)
	p.Vicinity = ""
	p.FormattedAddress = ""
	rejected, reason := f.Reject(p)
	assert.True(t, rejected)
	assert.Equal(t, ReasonMissingAddress, reason)

	// A formatted address alone satisfies the rule.
	p.FormattedAddress = "1 Long St, Cape Town"
	rejected, _ = f.Reject(p)
	assert.False(t, rejected)
}

func TestFilter_MissingLocation(t *testing.T) {
	f := NewFilter("ChIJ-self", "cafe")
	p := place("ChIJ-x", "Nowhere Cafe", []string{"cafe"}, 100)
	p.Geometry.Location = nil
	rejected, reason := f.Reject(p)
	assert.True(t, rejected)
	assert.Equal(t, ReasonMissingLocation, reason)
}

func TestFilter_FamilyMismatch(t *testing.T) {
	f := NewFilter("ChIJ-self", "cafe")

	rejected, reason := f.Reject(place("ChIJ-hw", "Hank's Hardware", []string{"hardware_store"}, 400))
	assert.True(t, rejected)
	assert.Equal(t, ReasonFamilyMismatch, reason)

	rejected, _ = f.Reject(place("ChIJ-bk", "Daily Bread", []string{"bakery"}, 300))
	assert.False(t, rejected)
}

func TestFilter_NoFamilyFilterWithoutTargetType(t *testing.T) {
	f := NewFilter("ChIJ-self", "")
	rejected, _ := f.Reject(place("ChIJ-hw", "Hank's Hardware", []string{"hardware_store"}, 400))
	assert.False(t, rejected)
}

func TestFilter_NoFamilyFilterForGenericCandidate(t *testing.T) {
	// All-generic type lists fall back to the first type, which is not
	// in the cafe family, so the mismatch rule fires.
	f := NewFilter("ChIJ-self", "cafe")
	rejected, reason := f.Reject(place("ChIJ-g", "Mystery Spot", []string{"point_of_interest", "establishment"}, 100))
	assert.True(t, rejected)
	assert.Equal(t, ReasonFamilyMismatch, reason)
}

func TestFilter_BroadContainer(t *testing.T) {
	// With no target type the family rule is off, but malls still don't
	// compete with a specific business.
	f := NewFilter("ChIJ-self", "")
	rejected, reason := f.Reject(place("ChIJ-mall", "Canal Walk", []string{"shopping_mall"}, 900))
	assert.True(t, rejected)
	assert.Equal(t, ReasonBroadContainer, reason)
}

func TestFilter_BroadTargetKeepsBroadCandidates(t *testing.T) {
	f := NewFilter("ChIJ-self", "shopping_mall")
	rejected, _ := f.Reject(place("ChIJ-mall", "Canal Walk", []string{"shopping_mall"}, 900))
	assert.False(t, rejected)
}

// A target with a type outside the family tables still keeps candidates
// of its own exact type, including the ones its own type-filtered search
// returned.
func TestFilter_UnmappedTargetKeepsSameType(t *testing.T) {
	f := NewFilter("ChIJ-self", "tattoo_parlor")
	rejected, _ := f.Reject(place("ChIJ-ink", "Ink District", []string{"tattoo_parlor"}, 500))
	assert.False(t, rejected)

	rejected, reason := f.Reject(place("ChIJ-nails", "Polished", []string{"nail_salon"}, 400))
	assert.True(t, rejected)
	assert.Equal(t, ReasonFamilyMismatch, reason)
}

func TestNewCandidate_DerivesFields(t *testing.T) {
	p := place("ChIJ-bk", "Daily Bread", []string{"point_of_interest", "bakery"}, 300)
	p.Rating = ptrF(4.7)
	p.UserRatingsTotal = ptrI(210)
	p.Website = "https://dailybread.example"

	c := newCandidate(p, aromaLoc)
	assert.Equal(t, "bakery", c.PrimaryType)
	assert.Equal(t, "somewhere near Kloof St", c.Address)
	if assert.NotNil(t, c.DistanceMeters) {
		assert.InDelta(t, 300, *c.DistanceMeters, 5)
	}
	assert.Equal(t, "https://dailybread.example", c.Website)
}

func TestNewCandidate_NilLocation(t *testing.T) {
	p := places.Place{PlaceID: "x", Name: "X", Vicinity: "addr"}
	c := newCandidate(p, aromaLoc)
	assert.Nil(t, c.DistanceMeters)
}
