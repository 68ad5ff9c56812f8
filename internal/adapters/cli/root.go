package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forgecraft",
		Short: "ForgeCraft CLI - Manage recipes and crafting orders",
		Long: `ForgeCraft CLI manages the recipe catalog and the crafting station.
State is stored in the configured database so the CLI and daemon share it.

Examples:
  forgecraft catalog load recipes.yaml
  forgecraft catalog list --include-locked
  forgecraft catalog search sword --category WEAPON
  forgecraft catalog unlock steel_sword
  forgecraft order queue steel_sword --material METAL:UNCOMMON --material METAL:RARE --material LEATHER:COMMON
  forgecraft order list
  forgecraft station tick --elapsed 45s
  forgecraft station stats`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml discovery)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewOrderCommand())
	rootCmd.AddCommand(NewStationCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
