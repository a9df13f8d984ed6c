// Package cli contains the command line interface for mergeconfig.
//
// # Usage
//
// The default command resolves configuration fragments into one file:
//
//	mergeconfig -b out -o out/.config defconfig board.config
//
// Text given with --prepend is processed before the files and text given
// with --append after them, both as if read from a file named
// "<command-line>".
//
// # Commands
//
//   - process: Resolve fragments (default when files are given)
//   - tokens: Dump the token stream, or start an interactive session
//   - tree: Dump the statement tree, or start an interactive session
//   - deps: Print the inputs and every file they include
//   - init: Write the current flag values to the configuration file
//
// # Configuration Loader
//
// Flag defaults are read from a YAML file ([loadYAML]) in the user
// configuration directory. Keys are flag names, with either hyphens or
// underscores:
//
//	log-level: info
//	strip-history: true
//	prepend: |
//	  CONFIG_DEBUG=y
//	  CONFIG_TRACE=n
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o mergeconfig .
//
// The profiling flags are then:
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//
// # Examples
//
//	# Debug logging with CPU profiling
//	mergeconfig --log-level=debug --pprof-mode=cpu a.config
//
//	# Dump the statement tree as YAML
//	mergeconfig tree -f yaml a.config
package cli
