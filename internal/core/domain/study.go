package domain

import "strconv"

// NotAvailable is the placeholder written wherever the registry supplied
// no value, and wherever classification was bypassed or failed.
const NotAvailable = "N/A"

// GenderMaleOnly is the registry marker for trials restricted to male
// participants.
const GenderMaleOnly = "MALE"

// Study is the flat, normalised form of one trial record. Normalisation
// is total: every string field defaults to NotAvailable, and the derived
// fields carry their own absence markers. A Study never fails to exist
// because of missing source data.
type Study struct {
	NCTID               string
	BriefTitle          string
	OfficialTitle       string
	OverallStatus       string
	MinimumAge          string
	MaximumAge          string
	StudyType           string
	StartDate           string
	Gender              string
	BriefSummary        string
	DetailedDescription string
	NumCanadianSites    int
	Criteria            string
	IsPrenatal          bool
	MinAgeMonths        Months
	MaxAgeMonths        Months
	StartYear           string

	// Classification is the enrichment value for this record. The
	// enrichment stage assigns it exactly once; it is immutable after
	// that. Classified reports whether the stage ran at all, which
	// controls whether the output carries the enrichment column.
	Classification string
	Classified     bool
}

// Columns is the fixed output column order. Every name resolves through
// Field; the enrichment column, when present, is appended after these.
var Columns = []string{
	"nct_id",
	"brief_title",
	"official_title",
	"overall_status",
	"minimum_age",
	"maximum_age",
	"study_type",
	"start_date",
	"gender",
	"brief_summary",
	"detailed_description",
	"num_canadian_sites",
	"criteria",
	"is_prenatal",
	"min_age_in_months",
	"max_age_in_months",
	"start_year",
}

// Field returns the string form of the named column and whether the name
// is a known field. It backs both prompt templating and CSV output, so
// the column names double as template placeholder names.
func (s *Study) Field(name string) (string, bool) {
	switch name {
	case "nct_id":
		return s.NCTID, true
	case "brief_title":
		return s.BriefTitle, true
	case "official_title":
		return s.OfficialTitle, true
	case "overall_status":
		return s.OverallStatus, true
	case "minimum_age":
		return s.MinimumAge, true
	case "maximum_age":
		return s.MaximumAge, true
	case "study_type":
		return s.StudyType, true
	case "start_date":
		return s.StartDate, true
	case "gender":
		return s.Gender, true
	case "brief_summary":
		return s.BriefSummary, true
	case "detailed_description":
		return s.DetailedDescription, true
	case "num_canadian_sites":
		return strconv.Itoa(s.NumCanadianSites), true
	case "criteria":
		return s.Criteria, true
	case "is_prenatal":
		return strconv.FormatBool(s.IsPrenatal), true
	case "min_age_in_months":
		return s.MinAgeMonths.String(), true
	case "max_age_in_months":
		return s.MaxAgeMonths.String(), true
	case "start_year":
		return s.StartYear, true
	}
	return "", false
}

// IsGeriatric reports whether the study's minimum age marks it as a
// geriatric trial.
func (s *Study) IsGeriatric() bool {
	return s.MinAgeMonths.Known && s.MinAgeMonths.Value >= GeriatricMinMonths
}
