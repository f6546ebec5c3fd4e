package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kevinjones/trialsift/internal/adapters/driven/config/file"
	"github.com/kevinjones/trialsift/internal/adapters/driven/llm/gemini"
	"github.com/kevinjones/trialsift/internal/connectors/ctgov"
	"github.com/kevinjones/trialsift/internal/core/services"
	"github.com/kevinjones/trialsift/internal/sinks/csvfile"
)

var exportCursor string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch trials from the registry and export the classified CSV",
	Long: `Walks the registry's paged search API, normalises and filters the
records, classifies each one with the configured model, and writes the
output CSV. A cursor printed by an interrupted run can be passed back
with --cursor to resume the walk.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportCursor, "cursor", "",
		"resume cursor from a previous interrupted run")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	resumeToken := ""
	if exportCursor != "" {
		cursor, err := ctgov.DecodeCursor(exportCursor)
		if err != nil {
			return fmt.Errorf("parse --cursor: %w", err)
		}
		resumeToken = cursor.PageToken
		cmd.Printf("Resuming extraction from page %d (%d studies already seen)\n",
			cursor.PagesFetched+1, cursor.StudiesFetched)
	}

	baseURL := cfg.Registry.BaseURL
	if baseURL == "" {
		baseURL = ctgov.DefaultBaseURL
	}

	pipeline := &services.Pipeline{
		Registry: ctgov.NewClient(ctgov.ClientConfig{
			BaseURL:  baseURL,
			PageSize: cfg.Registry.PageSize,
			Filter:   cfg.Registry.Filter(),
		}),
		Sink:       &csvfile.Sink{},
		Normaliser: services.NewNormaliser(),
	}

	opts := services.RunOptions{
		ResumeToken: resumeToken,
		OutputPath:  cfg.Output.Path,
	}

	// Classifier construction failure is fatal: a config-driven run that
	// asks for enrichment must not silently export unclassified data.
	if cfg.Enrichment.IsEnabled() {
		apiKey := os.Getenv(cfg.Classifier.APIKeyEnv)
		if apiKey == "" {
			return fmt.Errorf("%s environment variable not set", cfg.Classifier.APIKeyEnv)
		}

		classifier, err := gemini.New(ctx, gemini.Config{
			APIKey:            apiKey,
			Model:             cfg.Classifier.Model,
			SystemInstruction: cfg.Classifier.SystemInstruction,
		})
		if err != nil {
			return fmt.Errorf("initialise classifier: %w", err)
		}
		defer classifier.Close()
		cmd.Printf("Classifier initialised (model: %s)\n", classifier.ModelName())

		pipeline.Classifier = classifier
		opts.Enrichment = &services.EnrichOptions{
			PromptTemplate: cfg.Classifier.RowPrompt,
			MaxRows:        cfg.Enrichment.MaxRows,
			DebugOnly:      cfg.Enrichment.DebugOnlyTuning,
			AllowedIDs:     cfg.TuningTrials,
			CallDelay:      cfg.Classifier.Delay(),
		}
		opts.EnrichmentColumn = cfg.Enrichment.Column
	}

	cmd.Printf("Extracting trials from %s...\n", baseURL)
	report, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	printReport(cmd, report)
	return nil
}

// printReport prints the run summary, including a resume cursor when
// the page ceiling interrupted the walk.
func printReport(cmd *cobra.Command, report *services.Report) {
	cmd.Printf("\nFetched %d studies across %d pages\n", report.Fetched, report.Pages)
	cmd.Printf("Kept %d studies (%d male-only dropped)\n", report.Kept, report.DroppedMaleOnly)
	if report.Enrich != nil {
		cmd.Printf("Classified %d studies: %d succeeded, %d failed, %d bypassed\n",
			report.Enrich.Attempted, report.Enrich.Succeeded,
			report.Enrich.Failed, report.Enrich.Bypassed)
	}
	cmd.Printf("Output written to %s\n", report.OutputPath)

	if report.ResumeToken != "" {
		cursor := &ctgov.Cursor{
			Version:        ctgov.CursorVersion,
			PageToken:      report.ResumeToken,
			PagesFetched:   report.Pages,
			StudiesFetched: report.Fetched,
		}
		cmd.Printf("\nExtraction stopped at the page ceiling. Resume with:\n")
		cmd.Printf("  trialsift export --cursor %s\n", cursor.Encode())
	}
}
