// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("configuration written", slog.String("path", out))
//	logger.Error("include failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Adding Attributes
//
// Attributes can be added to the logger to be included in all subsequent
// log messages using the [Logger.With] method. [Logger.Component] is a
// shorthand that tags messages with the emitting subsystem:
//
//	logger = logger.Component("lexer")
//	logger.Warn("illegal character") // includes component=lexer
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant.
// Context-unaware functions internally call their context-aware counterparts
// using [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// The package supports six log levels: [LevelTrace], [LevelDebug],
// [LevelInfo], [LevelWarn], [LevelError], and [LevelFatal]. Messages below
// the configured level are discarded. Logging at [LevelFatal] never exits
// the program.
//
// # Output Formats
//
// Two output formats are supported: [FormatJSON] (default) and
// [FormatText]. Both have a colorized pretty variant enabled by
// [WithPretty].
package log
