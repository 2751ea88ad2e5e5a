package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/arcanaland/matcher/internal/gallery"
)

// Defaults
const (
	DefaultImageCount   = 6
	DefaultResolveDelay = "700ms"
	DefaultArtWidth     = 16
)

// ErrUnknownKey is returned by Set for keys that are not in the config file
var ErrUnknownKey = errors.New("unknown config key")

// Config represents the application configuration
type Config struct {
	ClientID     string `toml:"client_id" env:"MATCHER_CLIENT_ID"`
	Endpoint     string `toml:"endpoint" env:"MATCHER_ENDPOINT"`
	ImageCount   int    `toml:"image_count" env:"MATCHER_IMAGE_COUNT"`
	ResolveDelay string `toml:"resolve_delay" env:"MATCHER_RESOLVE_DELAY"`
	ArtWidth     int    `toml:"art_width" env:"MATCHER_ART_WIDTH"`
}

// Default returns the configuration written on first run
func Default() *Config {
	return &Config{
		Endpoint:     gallery.DefaultEndpoint,
		ImageCount:   DefaultImageCount,
		ResolveDelay: DefaultResolveDelay,
		ArtWidth:     DefaultArtWidth,
	}
}

// Delay parses ResolveDelay
func (c *Config) Delay() (time.Duration, error) {
	d, err := time.ParseDuration(c.ResolveDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid resolve_delay %q: %w", c.ResolveDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("resolve_delay must not be negative, got %s", d)
	}
	return d, nil
}

// Validate checks values that would make a game unplayable
func (c *Config) Validate() error {
	if c.ImageCount <= 0 {
		return fmt.Errorf("image_count must be positive, got %d", c.ImageCount)
	}
	if c.ArtWidth < 4 {
		return fmt.Errorf("art_width must be at least 4, got %d", c.ArtWidth)
	}
	if _, err := c.Delay(); err != nil {
		return err
	}
	return nil
}

// Get returns the string form of a config key
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "client_id":
		return c.ClientID, nil
	case "endpoint":
		return c.Endpoint, nil
	case "image_count":
		return strconv.Itoa(c.ImageCount), nil
	case "resolve_delay":
		return c.ResolveDelay, nil
	case "art_width":
		return strconv.Itoa(c.ArtWidth), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set updates a config key from its string form
func (c *Config) Set(key, value string) error {
	switch key {
	case "client_id":
		c.ClientID = value
	case "endpoint":
		c.Endpoint = value
	case "image_count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("image_count must be a number: %w", err)
		}
		c.ImageCount = n
	case "resolve_delay":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("resolve_delay must be a duration like 700ms: %w", err)
		}
		c.ResolveDelay = value
	case "art_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("art_width must be a number: %w", err)
		}
		c.ArtWidth = n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

// Keys lists the config keys in file order
func Keys() []string {
	return []string{"client_id", "endpoint", "image_count", "resolve_delay", "art_width"}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCacheDir returns the matcher cache directory
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "matcher")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "matcher", "config.toml")
}

// LoadConfig loads the config file and applies environment overrides
func LoadConfig() (*Config, error) {
	config, err := loadFile(GetConfigFilePath())
	if err != nil {
		return nil, err
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	return config, nil
}

// LoadConfigFile loads the config file without environment overrides
func LoadConfigFile() (*Config, error) {
	return loadFile(GetConfigFilePath())
}

// loadFile reads the config file, creating a default one if it doesn't exist
func loadFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	// Missing keys keep their defaults
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	config := Default()
	if err := writeFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes c to the config file. Environment overrides are not persisted.
func SaveConfig(c *Config) error {
	return writeFile(GetConfigFilePath(), c)
}

func writeFile(configPath string, c *Config) error {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}
