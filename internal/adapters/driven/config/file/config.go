// Package file loads trialsift configuration from a TOML file. The
// configuration is read once at startup and treated as read-only for
// the run; absence or malformed content is a fatal startup error.
package file

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultModel     = "gemini-2.5-flash"
	DefaultColumn    = "ai_determined_value"
	DefaultDelay     = 500 * time.Millisecond
	DefaultOutput    = "clinical_trials_filtered.csv"
	DefaultPageSize  = 1000
)

// Config is the full pipeline configuration.
type Config struct {
	Registry   RegistryConfig   `toml:"registry"`
	Classifier ClassifierConfig `toml:"classifier"`
	Enrichment EnrichmentConfig `toml:"enrichment"`
	Output     OutputConfig     `toml:"output"`

	// TuningTrials is the debug allow-list of trial identifiers used when
	// enrichment.debug_only_tuning is set.
	TuningTrials []string `toml:"tuning_trials"`
}

// RegistryConfig configures the source registry walk.
type RegistryConfig struct {
	// BaseURL is the studies endpoint. Default: the ClinicalTrials.gov v2
	// /studies endpoint.
	BaseURL string `toml:"base_url"`

	// PageSize is the requested page size. Default: 1000.
	PageSize int `toml:"page_size"`

	// FilterAdvanced is the registry's advanced filter expression, either
	// a single query string or an array of clauses joined with " AND ".
	FilterAdvanced any `toml:"filter_advanced"`

	filter string
}

// Filter returns the resolved filter expression.
func (c *RegistryConfig) Filter() string { return c.filter }

// ClassifierConfig configures the language-model classifier.
type ClassifierConfig struct {
	// APIKeyEnv names the environment variable holding the API key.
	// Default: GEMINI_API_KEY.
	APIKeyEnv string `toml:"api_key_env"`

	// Model is the model identifier. Default: gemini-2.5-flash.
	Model string `toml:"model"`

	// SystemInstruction is the system-level instruction text, supplied
	// once at classifier construction.
	SystemInstruction string `toml:"system_instruction"`

	// RowPrompt is the per-record prompt template with {field}
	// placeholders named after output columns.
	RowPrompt string `toml:"row_prompt"`

	// CallDelay is the spacing between classifier calls, as a duration
	// string such as "500ms". Default: 500ms.
	CallDelay string `toml:"call_delay"`

	callDelay time.Duration
}

// Delay returns the parsed inter-call delay.
func (c *ClassifierConfig) Delay() time.Duration { return c.callDelay }

// EnrichmentConfig configures record selection for the classification
// stage.
type EnrichmentConfig struct {
	// Enabled toggles the stage. Default: true.
	Enabled *bool `toml:"enabled"`

	// MaxRows caps how many records receive a classifier call.
	// Zero means no cap.
	MaxRows int `toml:"max_rows"`

	// Column names the output column for the classification value.
	// Default: ai_determined_value.
	Column string `toml:"column"`

	// DebugOnlyTuning restricts classifier calls to the tuning_trials
	// allow-list.
	DebugOnlyTuning bool `toml:"debug_only_tuning"`
}

// IsEnabled reports whether the enrichment stage should run.
func (c *EnrichmentConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// OutputConfig configures the CSV destination.
type OutputConfig struct {
	// Path is the output file. Default: clinical_trials_filtered.csv.
	Path string `toml:"path"`
}

// Load reads, defaults, and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Registry.PageSize == 0 {
		c.Registry.PageSize = DefaultPageSize
	}
	if c.Classifier.APIKeyEnv == "" {
		c.Classifier.APIKeyEnv = DefaultAPIKeyEnv
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = DefaultModel
	}
	if c.Enrichment.Column == "" {
		c.Enrichment.Column = DefaultColumn
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutput
	}
}

func (c *Config) validate() error {
	if c.Registry.PageSize < 1 || c.Registry.PageSize > 1000 {
		return fmt.Errorf("registry.page_size must be between 1 and 1000, got %d", c.Registry.PageSize)
	}

	filter, err := resolveFilter(c.Registry.FilterAdvanced)
	if err != nil {
		return err
	}
	c.Registry.filter = filter

	c.Classifier.callDelay = DefaultDelay
	if c.Classifier.CallDelay != "" {
		d, err := time.ParseDuration(c.Classifier.CallDelay)
		if err != nil {
			return fmt.Errorf("classifier.call_delay: %w", err)
		}
		if d < 0 {
			return errors.New("classifier.call_delay must not be negative")
		}
		c.Classifier.callDelay = d
	}

	if c.Enrichment.MaxRows < 0 {
		return errors.New("enrichment.max_rows must not be negative")
	}
	if c.Enrichment.IsEnabled() && c.Classifier.RowPrompt == "" {
		return errors.New("classifier.row_prompt is required when enrichment is enabled")
	}
	return nil
}

// resolveFilter accepts the filter expression as either a string or an
// array of clauses joined with " AND " (the array form keeps long
// expressions readable in the config file).
func resolveFilter(v any) (string, error) {
	switch filter := v.(type) {
	case nil:
		return "", nil
	case string:
		return filter, nil
	case []any:
		clauses := make([]string, 0, len(filter))
		for _, clause := range filter {
			s, ok := clause.(string)
			if !ok {
				return "", fmt.Errorf("registry.filter_advanced: clause %v is not a string", clause)
			}
			clauses = append(clauses, s)
		}
		return strings.Join(clauses, " AND "), nil
	default:
		return "", errors.New("registry.filter_advanced must be a string or an array of strings")
	}
}
