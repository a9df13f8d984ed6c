// Package cmd implements the mergeconfig subcommands.
//
// The default command, [Process], resolves a set of configuration fragments
// into a single flat configuration. [Tokens] and [Tree] dump the
// intermediate lexer and parser stages, [Deps] lists the files a
// configuration depends on, and [Init] writes the persistent flag defaults.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML file of persistent flag defaults.
	ConfigIdentifier = "config"
)
