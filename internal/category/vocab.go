package category

// typeFamilies maps provider place types to their family. First-match
// wins when scanning a place's ordered type list.
var typeFamilies = map[string]Family{
	// Restaurant
	"restaurant":            FamilyRestaurant,
	"meal_takeaway":         FamilyRestaurant,
	"meal_delivery":         FamilyRestaurant,
	"pizza_restaurant":      FamilyRestaurant,
	"sushi_restaurant":      FamilyRestaurant,
	"fast_food_restaurant":  FamilyRestaurant,
	"sandwich_shop":         FamilyRestaurant,
	"steak_house":           FamilyRestaurant,
	"seafood_restaurant":    FamilyRestaurant,
	"vegetarian_restaurant": FamilyRestaurant,

	// Cafe / bakery
	"cafe":           FamilyCafeBakery,
	"coffee_shop":    FamilyCafeBakery,
	"bakery":         FamilyCafeBakery,
	"tea_house":      FamilyCafeBakery,
	"dessert_shop":   FamilyCafeBakery,
	"ice_cream_shop": FamilyCafeBakery,
	"juice_shop":     FamilyCafeBakery,

	// Bar / nightlife
	"bar":        FamilyBarNightlife,
	"night_club": FamilyBarNightlife,
	"pub":        FamilyBarNightlife,
	"wine_bar":   FamilyBarNightlife,
	"brewery":    FamilyBarNightlife,

	// Dental / orthodontic
	"dentist":       FamilyDentalOrtho,
	"dental_clinic": FamilyDentalOrtho,
	"orthodontist":  FamilyDentalOrtho,

	// Medical
	"doctor":             FamilyMedical,
	"physiotherapist":    FamilyMedical,
	"chiropractor":       FamilyMedical,
	"medical_clinic":     FamilyMedical,
	"optometrist":        FamilyMedical,
	"dermatologist":      FamilyMedical,
	"wellness_center":    FamilyMedical,
	"physical_therapist": FamilyMedical,

	// Fitness
	"gym":            FamilyFitness,
	"fitness_center": FamilyFitness,
	"yoga_studio":    FamilyFitness,
	"pilates_studio": FamilyFitness,
	"sports_club":    FamilyFitness,
	"swimming_pool":  FamilyFitness,

	// Beauty
	"beauty_salon":   FamilyBeauty,
	"hair_salon":     FamilyBeauty,
	"hair_care":      FamilyBeauty,
	"nail_salon":     FamilyBeauty,
	"barber_shop":    FamilyBeauty,
	"spa":            FamilyBeauty,
	"massage":        FamilyBeauty,
	"tanning_studio": FamilyBeauty,

	// Retail
	"clothing_store":    FamilyRetail,
	"shoe_store":        FamilyRetail,
	"jewelry_store":     FamilyRetail,
	"book_store":        FamilyRetail,
	"electronics_store": FamilyRetail,
	"furniture_store":   FamilyRetail,
	"bicycle_store":     FamilyRetail,
	"florist":           FamilyRetail,
	"gift_shop":         FamilyRetail,
	"hardware_store":    FamilyRetail,
	"pet_store":         FamilyRetail,
	"liquor_store":      FamilyRetail,

	// Automotive
	"car_repair":         FamilyAutomotive,
	"car_dealer":         FamilyAutomotive,
	"car_wash":           FamilyAutomotive,
	"auto_parts_store":   FamilyAutomotive,
	"tire_shop":          FamilyAutomotive,
	"gas_station":        FamilyAutomotive,
	"car_rental":         FamilyAutomotive,
	"motorcycle_dealer":  FamilyAutomotive,
	"auto_body_shop":     FamilyAutomotive,
	"oil_change_service": FamilyAutomotive,

	// Home services
	"plumber":              FamilyHomeServices,
	"electrician":          FamilyHomeServices,
	"roofing_contractor":   FamilyHomeServices,
	"painter":              FamilyHomeServices,
	"locksmith":            FamilyHomeServices,
	"moving_company":       FamilyHomeServices,
	"general_contractor":   FamilyHomeServices,
	"hvac_contractor":      FamilyHomeServices,
	"landscaping_service":  FamilyHomeServices,
	"pest_control_service": FamilyHomeServices,
	"cleaning_service":     FamilyHomeServices,

	// Legal / financial
	"lawyer":            FamilyLegalFinancial,
	"accounting":        FamilyLegalFinancial,
	"accountant":        FamilyLegalFinancial,
	"insurance_agency":  FamilyLegalFinancial,
	"tax_preparation":   FamilyLegalFinancial,
	"financial_planner": FamilyLegalFinancial,
	"notary_public":     FamilyLegalFinancial,

	// Real estate
	"real_estate_agency":          FamilyRealEstate,
	"real_estate_agent":           FamilyRealEstate,
	"property_management_company": FamilyRealEstate,

	// Lodging
	"lodging":           FamilyLodging,
	"hotel":             FamilyLodging,
	"motel":             FamilyLodging,
	"bed_and_breakfast": FamilyLodging,
	"guest_house":       FamilyLodging,
	"hostel":            FamilyLodging,

	// Pet care
	"veterinary_care": FamilyPetCare,
	"pet_groomer":     FamilyPetCare,
	"pet_boarding":    FamilyPetCare,
	"dog_trainer":     FamilyPetCare,
}

// labelFamilies maps human category labels (as entered by users or stored
// on business profiles) to families. Tried before provider types.
var labelFamilies = map[string]Family{
	"restaurant":        FamilyRestaurant,
	"pizzeria":          FamilyRestaurant,
	"takeaway":          FamilyRestaurant,
	"diner":             FamilyRestaurant,
	"bistro":            FamilyRestaurant,
	"cafe":              FamilyCafeBakery,
	"coffee shop":       FamilyCafeBakery,
	"bakery":            FamilyCafeBakery,
	"patisserie":        FamilyCafeBakery,
	"bar":               FamilyBarNightlife,
	"pub":               FamilyBarNightlife,
	"nightclub":         FamilyBarNightlife,
	"brewery":           FamilyBarNightlife,
	"dentist":           FamilyDentalOrtho,
	"dental practice":   FamilyDentalOrtho,
	"orthodontist":      FamilyDentalOrtho,
	"doctor":            FamilyMedical,
	"clinic":            FamilyMedical,
	"physiotherapy":     FamilyMedical,
	"chiropractor":      FamilyMedical,
	"gym":               FamilyFitness,
	"fitness studio":    FamilyFitness,
	"yoga studio":       FamilyFitness,
	"crossfit":          FamilyFitness,
	"hair salon":        FamilyBeauty,
	"barber":            FamilyBeauty,
	"barbershop":        FamilyBeauty,
	"nail salon":        FamilyBeauty,
	"beauty salon":      FamilyBeauty,
	"spa":               FamilyBeauty,
	"boutique":          FamilyRetail,
	"clothing store":    FamilyRetail,
	"bookstore":         FamilyRetail,
	"florist":           FamilyRetail,
	"mechanic":          FamilyAutomotive,
	"auto repair":       FamilyAutomotive,
	"car dealership":    FamilyAutomotive,
	"car wash":          FamilyAutomotive,
	"plumber":           FamilyHomeServices,
	"electrician":       FamilyHomeServices,
	"roofer":            FamilyHomeServices,
	"landscaper":        FamilyHomeServices,
	"cleaning company":  FamilyHomeServices,
	"lawyer":            FamilyLegalFinancial,
	"law firm":          FamilyLegalFinancial,
	"accountant":        FamilyLegalFinancial,
	"insurance agency":  FamilyLegalFinancial,
	"real estate":       FamilyRealEstate,
	"realtor":           FamilyRealEstate,
	"hotel":             FamilyLodging,
	"guesthouse":        FamilyLodging,
	"bed and breakfast": FamilyLodging,
	"veterinarian":      FamilyPetCare,
	"vet":               FamilyPetCare,
	"pet groomer":       FamilyPetCare,
}

// familyKeywords is the allowed keyword vocabulary per family, in
// priority order, used for keyword-based nearby searches.
var familyKeywords = map[Family][]string{
	FamilyGeneric:        {"local business"},
	FamilyRestaurant:     {"restaurant", "takeaway", "diner", "eatery"},
	FamilyCafeBakery:     {"cafe", "coffee shop", "bakery", "tea house"},
	FamilyBarNightlife:   {"bar", "pub", "nightclub", "brewery"},
	FamilyDentalOrtho:    {"dentist", "dental clinic", "orthodontist"},
	FamilyMedical:        {"doctor", "clinic", "physiotherapist", "chiropractor"},
	FamilyFitness:        {"gym", "fitness studio", "yoga studio", "personal trainer"},
	FamilyBeauty:         {"hair salon", "barber", "nail salon", "beauty salon", "spa"},
	FamilyRetail:         {"shop", "store", "boutique"},
	FamilyAutomotive:     {"auto repair", "mechanic", "car dealer", "car wash"},
	FamilyHomeServices:   {"plumber", "electrician", "contractor", "handyman"},
	FamilyLegalFinancial: {"lawyer", "attorney", "accountant", "tax advisor"},
	FamilyRealEstate:     {"real estate agency", "realtor", "property management"},
	FamilyLodging:        {"hotel", "guest house", "bed and breakfast"},
	FamilyPetCare:        {"veterinarian", "pet groomer", "pet boarding"},
}

// familyTypes is the expanded provider type set per family: the types a
// competitor of that family may legitimately carry. Deliberately wider
// than the type->family mapping so that adjacent concepts (a cafe and a
// casual restaurant) still count as competitors.
var familyTypes = map[Family][]string{
	FamilyGeneric: {},
	FamilyRestaurant: {
		"restaurant", "meal_takeaway", "meal_delivery", "pizza_restaurant",
		"sushi_restaurant", "fast_food_restaurant", "sandwich_shop",
		"steak_house", "seafood_restaurant", "vegetarian_restaurant",
		"cafe", "bar", "bakery",
	},
	FamilyCafeBakery: {
		"cafe", "coffee_shop", "bakery", "tea_house", "dessert_shop",
		"ice_cream_shop", "juice_shop", "restaurant", "bar", "sandwich_shop",
	},
	FamilyBarNightlife: {
		"bar", "night_club", "pub", "wine_bar", "brewery", "restaurant", "cafe",
	},
	FamilyDentalOrtho: {
		"dentist", "dental_clinic", "orthodontist",
	},
	FamilyMedical: {
		"doctor", "physiotherapist", "chiropractor", "medical_clinic",
		"optometrist", "dermatologist", "wellness_center", "physical_therapist",
	},
	FamilyFitness: {
		"gym", "fitness_center", "yoga_studio", "pilates_studio",
		"sports_club", "swimming_pool", "personal_trainer",
	},
	FamilyBeauty: {
		"beauty_salon", "hair_salon", "hair_care", "nail_salon",
		"barber_shop", "spa", "massage", "tanning_studio",
	},
	FamilyRetail: {
		"clothing_store", "shoe_store", "jewelry_store", "book_store",
		"electronics_store", "furniture_store", "bicycle_store", "florist",
		"gift_shop", "hardware_store", "pet_store", "liquor_store",
	},
	FamilyAutomotive: {
		"car_repair", "car_dealer", "car_wash", "auto_parts_store",
		"tire_shop", "gas_station", "car_rental", "motorcycle_dealer",
		"auto_body_shop", "oil_change_service",
	},
	FamilyHomeServices: {
		"plumber", "electrician", "roofing_contractor", "painter",
		"locksmith", "moving_company", "general_contractor",
		"hvac_contractor", "landscaping_service", "pest_control_service",
		"cleaning_service",
	},
	FamilyLegalFinancial: {
		"lawyer", "accounting", "accountant", "insurance_agency",
		"tax_preparation", "financial_planner", "notary_public",
	},
	FamilyRealEstate: {
		"real_estate_agency", "real_estate_agent", "property_management_company",
	},
	FamilyLodging: {
		"lodging", "hotel", "motel", "bed_and_breakfast", "guest_house", "hostel",
	},
	FamilyPetCare: {
		"veterinary_care", "pet_groomer", "pet_boarding", "dog_trainer", "pet_store",
	},
}

// familyTypeSets is familyTypes as lookup sets, built at init.
var familyTypeSets = func() map[Family]map[string]struct{} {
	sets := make(map[Family]map[string]struct{}, len(familyTypes))
	for f, types := range familyTypes {
		set := make(map[string]struct{}, len(types))
		for _, t := range types {
			set[t] = struct{}{}
		}
		sets[f] = set
	}
	return sets
}()

// genericTypes are administrative and catch-all tags that never identify
// a business category.
var genericTypes = map[string]struct{}{
	"point_of_interest":           {},
	"establishment":               {},
	"premise":                     {},
	"subpremise":                  {},
	"street_address":              {},
	"route":                       {},
	"intersection":                {},
	"locality":                    {},
	"sublocality":                 {},
	"neighborhood":                {},
	"political":                   {},
	"postal_code":                 {},
	"country":                     {},
	"administrative_area_level_1": {},
	"administrative_area_level_2": {},
	"geocode":                     {},
	"plus_code":                   {},
	"food":                        {},
	"store":                       {},
	"health":                      {},
	"finance":                     {},
	"general_contractor_area":     {},
}

// broadContainerTypes are venues too broad to compete with a specific
// business (though they do compete with each other).
var broadContainerTypes = map[string]struct{}{
	"shopping_mall":          {},
	"department_store":       {},
	"supermarket":            {},
	"grocery_or_supermarket": {},
	"grocery_store":          {},
	"convenience_store":      {},
	"school":                 {},
	"primary_school":         {},
	"secondary_school":       {},
	"university":             {},
	"airport":                {},
	"train_station":          {},
	"transit_station":        {},
	"bus_station":            {},
	"tourist_attraction":     {},
	"amusement_park":         {},
	"park":                   {},
	"stadium":                {},
	"zoo":                    {},
	"museum":                 {},
	"city_hall":              {},
	"courthouse":             {},
	"embassy":                {},
	"hospital":               {},
	"church":                 {},
	"mosque":                 {},
	"synagogue":              {},
	"hindu_temple":           {},
	"cemetery":               {},
	"campground":             {},
}

// blockedTerms carry no usable category signal and must never drive a
// family decision or a keyword search.
var blockedTerms = map[string]struct{}{
	"services":     {},
	"service":      {},
	"consultation": {},
	"consulting":   {},
	"solutions":    {},
	"company":      {},
	"business":     {},
	"professional": {},
	"quality":      {},
	"best":         {},
	"top":          {},
	"local":        {},
	"near":         {},
	"me":           {},
	"official":     {},
	"licensed":     {},
	"certified":    {},
}
