package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var fetchFlags gameFlags

// fetchCmd prints the batch a game would be dealt from
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a batch of images without playing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := fetchFlags.settings(cmd)
		if err != nil {
			return err
		}

		images, err := fetchFlags.source(cfg, newLogger()).FetchRandomImages(cmd.Context(), cfg.ImageCount)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(images) == 0 {
			fmt.Fprintln(out, "No images available.")
			return nil
		}

		for i, img := range images {
			title := img.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Fprintf(out, "%2d. %s %s\n    %s\n", i+1, color.CyanString(img.ID), color.HiWhiteString(title), img.URL)
		}

		if len(images) < cfg.ImageCount {
			fmt.Fprintf(out, "\nOnly %d of %d requested images were available.\n", len(images), cfg.ImageCount)
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(fetchCmd)
	fetchFlags.register(fetchCmd, false)
}
