package cmd

import (
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/matcher/internal/artwork"
	"github.com/arcanaland/matcher/internal/config"
)

var showWidth int

var showCmd = &cobra.Command{
	Use:   "show [image_url]",
	Short: "Preview an image as a card face",
	Long: `Show downloads an image and prints it the way it appears when its card is
flipped during a game. The rendering is cached like any other card face.

Examples:
  matcher show https://i.imgur.com/aB3xY.jpg
  matcher show --width 40 https://i.imgur.com/aB3xY.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]

		width := showWidth
		if !cmd.Flags().Changed("width") {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			width = cfg.ArtWidth
		}
		if width < 4 {
			return fmt.Errorf("--width must be at least 4, got %d", width)
		}

		renderer := artwork.NewRenderer(config.GetCacheDir(), width, newLogger())
		art, err := renderer.Art(cmd.Context(), url)
		if err != nil {
			return fmt.Errorf("error rendering image: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		for _, line := range strings.Split(art, "\n") {
			fmt.Fprintln(out, "  "+line)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  "+colorize.CyanString("Source: ")+colorize.HiWhiteString(url))
		fmt.Fprintln(out, "  "+colorize.CyanString("Size:   ")+colorize.HiWhiteString("%dx%d", renderer.Width, renderer.Height))

		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVarP(&showWidth, "width", "w", 0, "Width in terminal cells (default from config)")
}
