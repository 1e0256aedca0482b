// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "files-with-matches" -> FlagFilesWithMatch).

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagCount          = "count"              // Output count only
	FlagFilesWithMatch = "files-with-matches" // Output matching file paths only
	FlagLocal          = "local"              // Use local scope
	FlagNumber         = "number"             // Number output lines
	FlagRaw            = "raw"                // Raw output without formatting

	// String flags

	FlagLines = "lines" // Line range specification (e.g., "10:20")

	// Integer flags

	FlagContext = "context" // Context lines around matches
)
