package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/matcher/internal/config"
	"github.com/arcanaland/matcher/internal/validator"
)

var validateCount int

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a saved gallery file",
	Long: `Validate checks that a saved gallery JSON file (the imgur gallery response format)
can be used to deal a game. It reports images that would be skipped, duplicate ids,
bad urls, and whether there are enough images for the requested number of pairs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		galleryPath := args[0]

		// Check if path exists
		if _, err := os.Stat(galleryPath); os.IsNotExist(err) {
			return fmt.Errorf("gallery file not found: %s", galleryPath)
		}

		count := validateCount
		if !cmd.Flags().Changed("count") {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			count = cfg.ImageCount
		}

		// Create validator and run validation
		v := validator.NewValidator(galleryPath, count)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Gallery '%s' can deal %d pairs (%d usable images).\n",
				galleryPath, min(count, len(v.Images())), len(v.Images()))
		} else {
			fmt.Fprintf(out, "❌ Gallery '%s' has %d validation errors:\n", galleryPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().IntVarP(&validateCount, "count", "n", 0, "Number of pairs to check for (default from config)")
}
