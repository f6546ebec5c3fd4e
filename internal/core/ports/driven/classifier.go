package driven

import "context"

// Classifier produces a free-text classification for a rendered prompt.
// The system-level instruction is supplied once at construction time,
// not per call. Implementations wrap a concrete model SDK; the pipeline
// only ever sees this interface, so its sentinel-on-failure logic stays
// testable with a fake.
type Classifier interface {
	// Classify sends one prompt and returns the trimmed response text.
	// An empty response is an error.
	Classify(ctx context.Context, prompt string) (string, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string

	// Close releases resources.
	Close() error
}
