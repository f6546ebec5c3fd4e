// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the trial registry, the classifier, and
// the output sink. The pipeline depends only on these interfaces, never
// on a concrete HTTP client or SDK type.
package driven
