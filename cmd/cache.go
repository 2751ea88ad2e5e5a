package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arcanaland/matcher/internal/artwork"
	"github.com/arcanaland/matcher/internal/config"
)

// cacheCmd represents the cache command group
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the rendered card art cache",
}

// cacheListCmd represents the cache ls command
var cacheListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cached card art",
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer := artwork.NewRenderer(config.GetCacheDir(), config.DefaultArtWidth, newLogger())
		entries, err := renderer.Entries()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "Art cache is empty:", renderer.Dir())
			return nil
		}

		var total int64
		for _, e := range entries {
			total += e.Size
			fmt.Fprintf(out, "  %s  %8s  %s\n", e.Name, humanize.Bytes(uint64(e.Size)), humanize.Time(e.Modified))
		}
		fmt.Fprintf(out, "%d files, %s in %s\n", len(entries), humanize.Bytes(uint64(total)), renderer.Dir())
		return nil
	},
}

// cacheClearCmd represents the cache clear command
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached card art",
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer := artwork.NewRenderer(config.GetCacheDir(), config.DefaultArtWidth, newLogger())
		removed, err := renderer.Clear()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached files from %s\n", removed, renderer.Dir())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
