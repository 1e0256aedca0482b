// Package extension provides the plugin architecture for seek. Extensions
// encapsulate related CLI commands and register at init time, enabling
// modular feature development without touching core code.
//
// MCP tools are not contributed by extensions: the server exposes a fixed
// tool table defined in internal/mcp.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for seek extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared service before their commands
// run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Serviceless is an optional interface for extensions with commands that
// don't need the search service. Commands returned by NoServiceCommands()
// will not trigger service initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Config commands that must work while the config file is invalid
// 2. Documentation commands such as guide
type Serviceless interface {
	NoServiceCommands() []string
}
