package domain

// RawStudy is one trial record as returned by the registry, before
// normalisation. Only the branches the pipeline reads are modelled; any
// of them may be absent, in which case the zero value stands in.
type RawStudy struct {
	ProtocolSection ProtocolSection `json:"protocolSection"`
}

// ProtocolSection groups the registry's per-trial modules.
type ProtocolSection struct {
	Identification    IdentificationModule    `json:"identificationModule"`
	Status            StatusModule            `json:"statusModule"`
	Design            DesignModule            `json:"designModule"`
	Eligibility       EligibilityModule       `json:"eligibilityModule"`
	Description       DescriptionModule       `json:"descriptionModule"`
	ContactsLocations ContactsLocationsModule `json:"contactsLocationsModule"`
}

// IdentificationModule carries the trial identifiers and titles.
type IdentificationModule struct {
	NCTID         string `json:"nctId"`
	BriefTitle    string `json:"briefTitle"`
	OfficialTitle string `json:"officialTitle"`
}

// StatusModule carries the trial status and start date.
type StatusModule struct {
	OverallStatus   string     `json:"overallStatus"`
	StartDateStruct DateStruct `json:"startDateStruct"`
}

// DateStruct wraps a registry date string (YYYY-MM or YYYY-MM-DD).
type DateStruct struct {
	Date string `json:"date"`
}

// DesignModule carries the study design fields.
type DesignModule struct {
	StudyType string `json:"studyType"`
}

// EligibilityModule carries eligibility restrictions and criteria text.
type EligibilityModule struct {
	Sex                 string `json:"sex"`
	MinimumAge          string `json:"minimumAge"`
	MaximumAge          string `json:"maximumAge"`
	EligibilityCriteria string `json:"eligibilityCriteria"`
}

// DescriptionModule carries the free-text summaries.
type DescriptionModule struct {
	BriefSummary        string `json:"briefSummary"`
	DetailedDescription string `json:"detailedDescription"`
}

// ContactsLocationsModule lists the trial's sites.
type ContactsLocationsModule struct {
	Locations []Location `json:"locations"`
}

// Location is a single trial site.
type Location struct {
	Country string `json:"country"`
}

// StudyPage is one page of a paged registry response.
type StudyPage struct {
	// Studies are the records on this page, in registry order.
	Studies []RawStudy

	// NextPageToken is the opaque continuation cursor, empty when this is
	// the final page.
	NextPageToken string

	// TotalCount is the registry's total match count; zero when the
	// registry omits it.
	TotalCount int
}
