// Package core provides the core extension for seek.
// It registers commands: config, serve, guide, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc     service.Service
	ripgrep string
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Serviceless   = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental seek commands.
func (e *Extension) Name() string { return "core" }

// Init keeps the shared service for serve and the ripgrep path for version.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.ripgrep = ctx.Ripgrep()
	return nil
}

// Commands returns the core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		e.newServeCmd(),
		newGuideCmd(),
		e.newVersionCmd(),
	}
}

// NoServiceCommands returns commands that run without the search service.
// config: Reads and writes the config file only.
// guide: Embedded documentation only.
func (e *Extension) NoServiceCommands() []string {
	return []string{"config", "guide"}
}
