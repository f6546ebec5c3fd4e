package services

import (
	"strings"

	"github.com/kevinjones/trialsift/internal/core/domain"
)

// pregnancyTerms mark a trial as prenatal when any of them appears in
// the upper-cased eligibility criteria.
var pregnancyTerms = []string{"PREGNANT", "PREGNANCY"}

// Normaliser maps raw registry records to flat studies. The mapping is
// total: a missing branch anywhere in the raw record yields the
// not-available placeholder, never an error.
type Normaliser struct {
	// Country is the target country for the site-count derivation.
	Country domain.Country
}

// NewNormaliser creates a normaliser targeting Canadian sites.
func NewNormaliser() *Normaliser {
	return &Normaliser{Country: domain.Canada}
}

// Normalise flattens one raw study into the output record shape.
func (n *Normaliser) Normalise(raw domain.RawStudy) domain.Study {
	p := raw.ProtocolSection

	minAge := orNA(p.Eligibility.MinimumAge)
	maxAge := orNA(p.Eligibility.MaximumAge)
	startDate := orNA(p.Status.StartDateStruct.Date)

	return domain.Study{
		NCTID:               orNA(p.Identification.NCTID),
		BriefTitle:          orNA(p.Identification.BriefTitle),
		OfficialTitle:       orNA(p.Identification.OfficialTitle),
		OverallStatus:       orNA(p.Status.OverallStatus),
		MinimumAge:          minAge,
		MaximumAge:          maxAge,
		StudyType:           orNA(p.Design.StudyType),
		StartDate:           startDate,
		Gender:              orNA(p.Eligibility.Sex),
		BriefSummary:        orNA(p.Description.BriefSummary),
		DetailedDescription: orNA(p.Description.DetailedDescription),
		NumCanadianSites:    n.countSites(p.ContactsLocations.Locations),
		Criteria:            orNA(p.Eligibility.EligibilityCriteria),
		IsPrenatal:          isPrenatal(p.Eligibility.EligibilityCriteria),
		MinAgeMonths:        domain.ParseAgeMonths(minAge),
		MaxAgeMonths:        domain.ParseAgeMonths(maxAge),
		StartYear:           startYear(startDate),
	}
}

// countSites counts the locations in the target country.
func (n *Normaliser) countSites(locations []domain.Location) int {
	count := 0
	for _, loc := range locations {
		if loc.Country != "" && n.Country.Matches(loc.Country) {
			count++
		}
	}
	return count
}

// isPrenatal reports whether the criteria text mentions pregnancy.
func isPrenatal(criteria string) bool {
	upper := strings.ToUpper(criteria)
	for _, term := range pregnancyTerms {
		if strings.Contains(upper, term) {
			return true
		}
	}
	return false
}

// startYear derives the year from a registry date string, which is the
// substring before the first separator. A date with no separator has no
// derivable year.
func startYear(startDate string) string {
	if startDate == domain.NotAvailable || !strings.Contains(startDate, "-") {
		return domain.NotAvailable
	}
	return strings.SplitN(startDate, "-", 2)[0]
}

// orNA substitutes the not-available placeholder for empty values.
func orNA(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}
