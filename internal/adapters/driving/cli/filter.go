package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kevinjones/trialsift/internal/adapters/driven/config/file"
	"github.com/kevinjones/trialsift/internal/sinks/csvfile"
)

// comparisonIDColumn is the identifier column name in comparison files,
// which differs in case from the export's nct_id column.
const comparisonIDColumn = "NCT_ID"

var (
	filterComparisons string
	filterID          string
)

var filterCmd = &cobra.Command{
	Use:   "filter [csv-path]",
	Short: "Filter an exported CSV to identifiers found in a comparison CSV",
	Long: `Rewrites an exported CSV in place, keeping only rows whose nct_id
appears in the NCT_ID column of a comparison CSV. With --id, keeps only
the single named trial instead, useful when debugging one record.
When no path is given, the configured output file is filtered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterComparisons, "comparisons", "",
		"comparison CSV containing an NCT_ID column")
	filterCmd.Flags().StringVar(&filterID, "id", "",
		"keep only this trial identifier")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := file.Load(cfgPath)
		if err != nil {
			return err
		}
		path = cfg.Output.Path
	}

	var keep map[string]struct{}
	switch {
	case filterID != "":
		cmd.Printf("Keeping only %s\n", filterID)
		keep = map[string]struct{}{filterID: {}}
	case filterComparisons != "":
		ids, err := csvfile.ReadIDColumn(filterComparisons, comparisonIDColumn)
		if err != nil {
			return err
		}
		cmd.Printf("Found %d identifiers in %s\n", len(ids), filterComparisons)
		keep = ids
	default:
		return errors.New("either --comparisons or --id is required")
	}

	kept, total, err := csvfile.FilterByID(path, "nct_id", keep)
	if err != nil {
		return err
	}

	cmd.Printf("Kept %d of %d rows in %s\n", kept, total, path)
	return nil
}
