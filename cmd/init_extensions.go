/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, resolves ripgrep, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before configuration is loaded. The service is created
// once and shared across all extensions via the Context, so ripgrep is
// looked up exactly once per process.

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/finder"
)

// noServiceCommands lists commands that bypass service initialisation.
// Built dynamically from extension-declared serviceless commands.
var noServiceCommands map[string]bool

// buildNoServiceCommands creates the set of commands that skip service
// initialisation.
//
// When adding a new command that works without configuration or a search
// backend, implement extension.Serviceless in its extension.
func buildNoServiceCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Serviceless); ok {
			for _, name := range s.NoServiceCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions creates the service and injects it into extensions.
//
// The --rg/--no-rg flags and SEEK_RG/SEEK_NO_RG environment variables are
// read here, once, and override search.ripgrep from config.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		f := finder.NewWithConfig(cfg, finder.Options{
			Ripgrep:        Ripgrep(),
			DisableRipgrep: NoRipgrep(),
			Logger:         diagnostics(),
		})
		extContext = extension.NewContext(f, cfg, f.Ripgrep())

		// Inject the shared context into all Initializable extensions.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// diagnostics returns the logger for search diagnostics. Warnings always go
// to stderr; --verbose adds backend selection and skipped entries.
func diagnostics() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noServiceCommands after all extensions are registered
		noServiceCommands = buildNoServiceCommands()
	})
}
