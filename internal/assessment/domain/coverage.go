package domain

import (
	userDomain "github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// SpeciesCoverage is the vaccination status of one species.
type SpeciesCoverage struct {
	Species    userDomain.Species `json:"species"`
	Total      int                `json:"total"`
	Vaccinated int                `json:"vaccinated"`
	Remaining  int                `json:"remaining"`
	Percentage int                `json:"percentage"`
}

// Coverage summarises vaccination across the herd.
type Coverage struct {
	Species    []SpeciesCoverage `json:"species"`
	Total      int               `json:"total"`
	Vaccinated int               `json:"vaccinated"`
	Percentage int               `json:"percentage"`
}

// VaccinationCoverage computes per-species and overall coverage. The profile store
// accepts vaccinated counts above the total, so percentages are clamped to 100 and
// Remaining never goes below zero.
func VaccinationCoverage(farm userDomain.FarmData) Coverage {
	var cov Coverage
	for _, s := range userDomain.AllSpecies() {
		count := farm.Livestock.Get(s)
		cov.Species = append(cov.Species, SpeciesCoverage{
			Species:    s,
			Total:      count.Total,
			Vaccinated: count.Vaccinated,
			Remaining:  max(count.Total-count.Vaccinated, 0),
			Percentage: Round(Percentage(count.Vaccinated, count.Total)),
		})
		cov.Total += count.Total
		cov.Vaccinated += count.Vaccinated
	}
	cov.Percentage = Round(Percentage(cov.Vaccinated, cov.Total))
	return cov
}
