package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/matcher/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage matcher configuration",
	Long: `Commands for managing the matcher config file.
Values can also be overridden with MATCHER_* environment variables.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadConfigFile(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		fmt.Fprintln(out, "Set your imgur client id with 'matcher config set client_id <id>'.")
		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.HiBlackString("# %s", config.GetConfigFilePath()))
		for _, key := range config.Keys() {
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s = %s\n", color.CyanString("%-13s", key), value)
		}
		return nil
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// Environment overrides must not end up in the file
		cfg, err := config.LoadConfigFile()
		if err != nil {
			return err
		}

		if err := cfg.Set(key, value); err != nil {
			return err
		}

		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s set to: %s\n", key, value)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
