// Package domain contains the core types for trialsift: raw registry
// records, the flat normalised study record, and the pure derivation
// functions (age parsing, country matching) that connect the two.
package domain
