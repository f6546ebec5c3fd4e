// Package ctgov is the connector for the ClinicalTrials.gov v2 registry
// API. It implements the TrialRegistry port over HTTP GET requests to
// the /studies endpoint, following the registry's opaque pageToken
// continuation cursor, and provides an encodable cursor for resuming an
// interrupted walk.
package ctgov
