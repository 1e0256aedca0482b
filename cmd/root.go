/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE builds the search service lazily - only
// commands that need it trigger extension init, so config and guide never
// probe for ripgrep. The noServiceCommands map
// controls which commands skip initialisation.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "seek",
	Short: "Keyword search and file reading for LLM workflows",
	Long: `Search directory trees for a literal keyword and read text files, from the
command line or as an MCP server. Uses ripgrep when it is installed and an
equivalent in-process search when it is not.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Initialise extensions for commands that need the service
		if !noServiceCommands[topLevelCmdName(cmd)] {
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
		}

		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "seek search TODO", returns "search".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging unless disabled in config, registers extensions, and
// executes the command. Exit code 1 indicates error.
func Execute() {
	if auditEnabled() {
		// Warn if it fails, but continue
		if err := log.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
		}
		if wd, err := os.Getwd(); err == nil {
			log.SetProject(wd)
		}
	}
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()
	if err != nil {
		log.Close()
		os.Exit(1)
	}
}

// auditEnabled reports whether log.audit is on. An unreadable config leaves
// auditing on; the command itself will report the config error.
func auditEnabled() bool {
	cfg, err := config.Load()
	if err != nil {
		return true
	}
	return cfg.Audit()
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
