package main

import (
	"fmt"
	"os"

	"brigade/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Cfg holds the loaded configuration and is available to all commands.
var Cfg *config.Config

// cfgFile is set from the --config flag.
var cfgFile string

// noColor toggles ANSI color output off when set via --no-color flag.
var noColor bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "brigade",
	Short: "Brigade runs a kitchen's station queue from the command line",
	Long: `Brigade loads a kitchen (stations, their stock and dishes, and a backup
inventory) from a YAML config and processes dish orders against it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		if Cfg != nil {
			return nil
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config from %s: %w", cfgFile, err)
		}
		Cfg = cfg
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/kitchen.yaml", "path to kitchen config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color output")
}
