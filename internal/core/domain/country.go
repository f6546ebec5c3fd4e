package domain

import "strings"

// Country identifies a target country for site matching.
type Country struct {
	// Name is the upper-cased full name, e.g. "CANADA".
	Name string

	// Code is the upper-cased two-letter code, e.g. "CA".
	Code string
}

// Canada is the target country for the site-count derivation.
var Canada = Country{Name: "CANADA", Code: "CA"}

// Matches reports whether a location's country string refers to this
// country. The test is a deliberately permissive case-insensitive
// substring match: "canada" matches, but so do "CANADIAN TERRITORY" and
// any string containing the two-letter code. Callers that need precision
// should tighten this rule rather than rely on it.
func (c Country) Matches(location string) bool {
	u := strings.ToUpper(location)
	return strings.Contains(u, c.Name) || strings.Contains(u, c.Code)
}
