package domain

import (
	"strconv"
	"strings"
)

// GeriatricMinMonths is the minimum-age threshold, in months, at or above
// which a trial is considered geriatric (65 years).
const GeriatricMinMonths = 65 * 12

// Months is an age measured in whole months. Known is false when the
// source value was missing or unparseable.
type Months struct {
	Value int
	Known bool
}

// String returns the decimal form, or the empty string when unknown.
func (m Months) String() string {
	if !m.Known {
		return ""
	}
	return strconv.Itoa(m.Value)
}

// ageUnits maps registry age units to a months conversion. Order matters:
// the first unit found in the string wins.
var ageUnits = []struct {
	name    string
	convert func(float64) float64
}{
	{"Years", func(v float64) float64 { return v * 12 }},
	{"Months", func(v float64) float64 { return v }},
	{"Days", func(v float64) float64 { return v / 30 }},
}

// ParseAgeMonths converts a registry age string such as "18 Years",
// "6 Months" or "90 Days" to whole months. Years multiply by 12 and days
// divide by 30, both truncated. Fractional values are accepted
// ("0.5 Years" is 6 months). Anything else (empty input, the "N/A"
// placeholder, an unknown unit, a malformed number) is reported as
// unknown rather than as an error.
func ParseAgeMonths(s string) Months {
	s = strings.TrimSpace(s)
	if s == "" || s == NotAvailable {
		return Months{}
	}

	for _, unit := range ageUnits {
		if !strings.Contains(s, unit.name) {
			continue
		}
		num := strings.TrimSpace(strings.Replace(s, unit.name, "", 1))
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return Months{}
		}
		return Months{Value: int(unit.convert(v)), Known: true}
	}

	return Months{}
}

// IsGeriatric reports whether a minimum-age string marks a geriatric
// trial. An unparseable age is treated as non-geriatric: absence of a
// minimum age must never exclude a trial.
func IsGeriatric(minAge string) bool {
	m := ParseAgeMonths(minAge)
	return m.Known && m.Value >= GeriatricMinMonths
}
