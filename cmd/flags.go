/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.
//
// Design: Flags are defined as package-level variables and bound to the
// root command. Accessors are provided so extensions can read flag values
// without coupling to cobra internals. The JSON() helper simplifies output
// format detection across all commands.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

// Environment variables read once at startup.
const (
	EnvRipgrep   = "SEEK_RG"    // ripgrep executable path
	EnvNoRipgrep = "SEEK_NO_RG" // any true value forces the in-process search
)

var (
	output    string
	ripgrep   string
	noRipgrep bool
	verbose   bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Exported accessors for extensions.
// Extensions use these to access shared CLI state.

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Verbose reports whether debug diagnostics were requested.
func Verbose() bool { return verbose }

// Ripgrep returns the ripgrep executable override.
// Priority: --rg flag > SEEK_RG env var > empty (config, then PATH).
func Ripgrep() string {
	if ripgrep != "" {
		return ripgrep
	}
	return os.Getenv(EnvRipgrep)
}

// NoRipgrep reports whether ripgrep is disabled by --no-rg or SEEK_NO_RG.
func NoRipgrep() bool {
	if noRipgrep {
		return true
	}
	return cast.ToBool(os.Getenv(EnvNoRipgrep))
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	// We ignore the error from PrintJSON here because if we can't print the error,
	// checking it is futile. We just return nil to suppress Cobra's duplicate printing.
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringVar(&ripgrep, "rg", "", "Path to the ripgrep executable (env: "+EnvRipgrep+")")
	rootCmd.PersistentFlags().BoolVar(&noRipgrep, "no-rg", false, "Never use ripgrep; search in-process (env: "+EnvNoRipgrep+")")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log search diagnostics to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
