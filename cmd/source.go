package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/matcher/internal/config"
	"github.com/arcanaland/matcher/internal/gallery"
	"github.com/arcanaland/matcher/internal/logger"
)

// gameFlags are shared by commands that fetch images
type gameFlags struct {
	count   int
	gallery string
	delay   time.Duration
}

func (f *gameFlags) register(cmd *cobra.Command, withDelay bool) {
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "Number of unique images (default from config)")
	cmd.Flags().StringVarP(&f.gallery, "gallery", "g", "", "Read images from a saved gallery JSON file instead of imgur")
	if withDelay {
		cmd.Flags().DurationVar(&f.delay, "delay", 0, "How long a flipped pair stays visible (default from config)")
	}
}

// settings merges the config file, environment and command flags
func (f *gameFlags) settings(cmd *cobra.Command) (*config.Config, time.Duration, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, 0, err
	}

	if cmd.Flags().Changed("count") {
		cfg.ImageCount = f.count
	}
	if err := cfg.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid configuration: %w", err)
	}

	delay, err := cfg.Delay()
	if err != nil {
		return nil, 0, err
	}
	if cmd.Flags().Changed("delay") {
		if f.delay < 0 {
			return nil, 0, fmt.Errorf("--delay must not be negative")
		}
		delay = f.delay
	}

	return cfg, delay, nil
}

// source picks the image source: a gallery file when given, imgur otherwise
func (f *gameFlags) source(cfg *config.Config, log *logger.Logger) gallery.Source {
	if f.gallery != "" {
		log.Debug(fmt.Sprintf("reading images from %s", f.gallery))
		return gallery.File{Path: f.gallery}
	}

	if cfg.ClientID == "" {
		log.Warn("no imgur client_id configured; run 'matcher config set client_id <id>'")
	}
	log.Debug(fmt.Sprintf("fetching images from %s", cfg.Endpoint))
	return gallery.NewImgur(cfg.Endpoint, cfg.ClientID)
}
