// Package all imports all built-in seek extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/seek/extension/core"
	_ "github.com/jpl-au/seek/extension/search"
)
