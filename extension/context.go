// context.go defines the Context interface for extension access to seek
// internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// access what they need without reaching into arbitrary internals.
//
// Design: Context uses an interface to enable testing with mock implementations.
// Extensions receive Context during Init(), not at construction, to support
// the two-phase initialization pattern where extensions register before
// configuration has been loaded.

package extension

import (
	"github.com/jpl-au/seek/internal/config"
	"github.com/jpl-au/seek/internal/service"
)

// Context provides extensions controlled access to seek internals.
// Extensions receive this during initialisation to access shared resources.
type Context interface {
	// Service returns the search and read service.
	Service() service.Service

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config

	// Ripgrep returns the resolved ripgrep executable, or "" when searches
	// run in-process.
	Ripgrep() string
}

// extContext implements Context.
type extContext struct {
	svc     service.Service
	cfg     *config.Config
	ripgrep string
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config, ripgrep string) Context {
	return &extContext{
		svc:     svc,
		cfg:     cfg,
		ripgrep: ripgrep,
	}
}

// Service returns the shared service, the primary interface for search and read.
func (c *extContext) Service() service.Service {
	return c.svc
}

// Config returns the loaded user configuration for respecting preferences.
func (c *extContext) Config() *config.Config {
	return c.cfg
}

// Ripgrep returns the ripgrep path resolved at startup.
func (c *extContext) Ripgrep() string {
	return c.ripgrep
}
