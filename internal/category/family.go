// Package category maps fine-grained provider business types to coarse
// competitor families and decides whether two businesses meaningfully
// compete. All lookups are pure and total; unrecognized input falls back
// to the generic local-business family.
package category

import "strings"

// Family is a coarse grouping of provider business types.
type Family int

// The closed set of families. FamilyGeneric is the fallback for anything
// the tables do not recognize.
const (
	FamilyGeneric Family = iota
	FamilyRestaurant
	FamilyCafeBakery
	FamilyBarNightlife
	FamilyDentalOrtho
	FamilyMedical
	FamilyFitness
	FamilyBeauty
	FamilyRetail
	FamilyAutomotive
	FamilyHomeServices
	FamilyLegalFinancial
	FamilyRealEstate
	FamilyLodging
	FamilyPetCare
)

var familyNames = map[Family]string{
	FamilyGeneric:        "generic_local_business",
	FamilyRestaurant:     "restaurant",
	FamilyCafeBakery:     "cafe_bakery",
	FamilyBarNightlife:   "bar_nightlife",
	FamilyDentalOrtho:    "dental_ortho",
	FamilyMedical:        "medical",
	FamilyFitness:        "fitness",
	FamilyBeauty:         "beauty",
	FamilyRetail:         "retail",
	FamilyAutomotive:     "automotive",
	FamilyHomeServices:   "home_services",
	FamilyLegalFinancial: "legal_financial",
	FamilyRealEstate:     "real_estate",
	FamilyLodging:        "lodging",
	FamilyPetCare:        "pet_care",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return familyNames[FamilyGeneric]
}

// ResolveFamily maps a human category label and/or a place's provider
// types to a Family. The label is tried first (exact, case-insensitive);
// otherwise provider types are scanned in order and the first recognized
// one wins. Never fails: unrecognized input resolves to FamilyGeneric.
func ResolveFamily(label string, providerTypes []string) Family {
	if label != "" {
		key := strings.ToLower(strings.TrimSpace(label))
		if f, ok := labelFamilies[key]; ok {
			return f
		}
	}
	for _, t := range providerTypes {
		if f, ok := typeFamilies[normalizeType(t)]; ok {
			return f
		}
	}
	return FamilyGeneric
}

// FamilyOfType returns the family of a single provider type.
func FamilyOfType(providerType string) Family {
	if f, ok := typeFamilies[normalizeType(providerType)]; ok {
		return f
	}
	return FamilyGeneric
}

// AllowedKeywords returns the family's keyword vocabulary in priority
// order, for query generation.
func AllowedKeywords(f Family) []string {
	kws := familyKeywords[f]
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

// ExpandedTypes returns the provider types a family's members may carry.
// Candidates whose primary type falls outside this set are not treated
// as competitors of the family.
func ExpandedTypes(f Family) []string {
	types := familyTypes[f]
	out := make([]string, len(types))
	copy(out, types)
	return out
}

// IsBlocked reports whether a term carries no usable category signal.
// A term is blocked if it matches the blocked set exactly or any of its
// whitespace-delimited tokens does (case-insensitive).
func IsBlocked(term string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return false
	}
	if _, ok := blockedTerms[t]; ok {
		return true
	}
	for _, tok := range strings.Fields(t) {
		if _, ok := blockedTerms[tok]; ok {
			return true
		}
	}
	return false
}

// MatchesFamily reports whether a candidate with the given provider types
// competes with a target whose primary type is targetPrimaryType. An empty
// target primary type means no filter applies. A candidate always matches
// a target of its own exact type, so types outside the family tables
// (which resolve to FamilyGeneric's empty expanded set) still compete
// with themselves.
func MatchesFamily(candidateTypes []string, targetPrimaryType string) bool {
	if targetPrimaryType == "" {
		return true
	}
	target := normalizeType(targetPrimaryType)
	expanded := familyTypeSets[FamilyOfType(targetPrimaryType)]
	for _, t := range candidateTypes {
		n := normalizeType(t)
		if n == target {
			return true
		}
		if _, ok := expanded[n]; ok {
			return true
		}
	}
	return false
}

// InFamily reports whether a single provider type belongs to the expanded
// type set of the family derived from targetPrimaryType. The target's own
// exact type always belongs, same as MatchesFamily.
func InFamily(candidateType, targetPrimaryType string) bool {
	if targetPrimaryType == "" {
		return true
	}
	n := normalizeType(candidateType)
	if n == normalizeType(targetPrimaryType) {
		return true
	}
	_, ok := familyTypeSets[FamilyOfType(targetPrimaryType)][n]
	return ok
}

// PrimaryType returns the first provider type that is not generic or
// administrative. If every type is generic the first one is returned
// as-is; an empty list yields "".
func PrimaryType(types []string) string {
	for _, t := range types {
		if !IsGenericType(t) {
			return normalizeType(t)
		}
	}
	if len(types) > 0 {
		return normalizeType(types[0])
	}
	return ""
}

// IsGenericType reports whether a provider type carries no business
// category signal (administrative and catch-all tags).
func IsGenericType(t string) bool {
	_, ok := genericTypes[normalizeType(t)]
	return ok
}

// IsBroadContainerType reports whether a provider type names a broad
// venue (mall, supermarket, school) rather than a specific business.
func IsBroadContainerType(t string) bool {
	_, ok := broadContainerTypes[normalizeType(t)]
	return ok
}

// Humanize converts a provider type tag to a keyword-search phrase
// ("hair_salon" -> "hair salon").
func Humanize(providerType string) string {
	return strings.ReplaceAll(normalizeType(providerType), "_", " ")
}

func normalizeType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
