package domain

// Species is one of the livestock kinds tracked on a farm profile.
type Species string

const (
	SpeciesPigs    Species = "pigs"
	SpeciesPoultry Species = "poultry"
	SpeciesCattle  Species = "cattle"
	SpeciesGoats   Species = "goats"
)

// AllSpecies lists the tracked species in display order.
func AllSpecies() []Species {
	return []Species{SpeciesPigs, SpeciesPoultry, SpeciesCattle, SpeciesGoats}
}

// LivestockCount holds head counts for one species. Vaccinated is not required to be
// less than or equal to Total.
type LivestockCount struct {
	Total      int `json:"total" bson:"total"`
	Vaccinated int `json:"vaccinated" bson:"vaccinated"`
}

// Livestock is the closed per-species record embedded in FarmData.
type Livestock struct {
	Pigs    LivestockCount `json:"pigs" bson:"pigs"`
	Poultry LivestockCount `json:"poultry" bson:"poultry"`
	Cattle  LivestockCount `json:"cattle" bson:"cattle"`
	Goats   LivestockCount `json:"goats" bson:"goats"`
}

// Get returns the count for a species; unknown species yield a zero count.
func (l Livestock) Get(s Species) LivestockCount {
	switch s {
	case SpeciesPigs:
		return l.Pigs
	case SpeciesPoultry:
		return l.Poultry
	case SpeciesCattle:
		return l.Cattle
	case SpeciesGoats:
		return l.Goats
	default:
		return LivestockCount{}
	}
}

// FarmData is owned by exactly one User and stored inside the user record.
// The zero value is the default profile of a new account.
type FarmData struct {
	TotalAcres float64   `json:"totalAcres" bson:"totalAcres"`
	Livestock  Livestock `json:"livestock" bson:"livestock"`
}
