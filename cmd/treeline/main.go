package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "treeline",
	Short:         "Compact source-tree inventories with git-aware change attribution",
	Long:          "Treeline parses source files with tree-sitter and produces a per-file inventory of top-level definitions: line ranges, visibility, and which definitions changed relative to a git baseline.",
	SilenceErrors: true,
	SilenceUsage:  true,
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .treeline.yaml in CWD or $HOME)")
	rootCmd.AddCommand(scanCmd)
}
