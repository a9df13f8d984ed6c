package log

import (
	"io"
	"log/slog"
	"sync"
)

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// set returns an Option that calls fn on the config while holding its lock.
// A config without a lock gets a new one.
func set(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		fn(&c)

		return c
	}
}

// WithDefaults resets every setting to its default and directs output to w:
// [DefaultTimeLayout], [DefaultLevel], [DefaultFormat], [DefaultPretty] and
// [DefaultCaller]. A nil w discards output.
func WithDefaults(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}

	return set(func(c *config) {
		c.output = w
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput sets the writer receiving log messages. A nil w discards them.
func WithOutput(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}

	return set(func(c *config) { c.output = w })
}

// WithLevel sets the minimum level of emitted messages.
func WithLevel(level Level) Option {
	return set(func(c *config) { c.level = level })
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return set(func(c *config) { c.format = format })
}

// WithTimeLayout sets the timestamp layout.
//
// Named layouts of the [time] package are matched case-insensitively
// ("RFC3339", "Kitchen", "StampMilli", ...). Any other layout is passed
// verbatim to [time.Time.Format]. An empty layout or "none" omits the
// timestamp.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return set(func(c *config) { c.formatTime = format })
}

// WithCaller includes the source location of the logging call.
func WithCaller(enable bool) Option {
	return set(func(c *config) { c.caller = enable })
}

// WithPretty enables colorized output: unquoted text with gray keys, or
// indented JSON.
func WithPretty(enable bool) Option {
	return set(func(c *config) { c.pretty = enable })
}

// WithComponent tags every message with the named subsystem, replacing any
// component set before. Use it with [Logger.Wrap]; [Logger.Component] adds
// the tag to an existing logger instead.
func WithComponent(name string) Option {
	return set(func(c *config) {
		attrs := make([]slog.Attr, 0, len(c.attrs)+1)

		for _, a := range c.attrs {
			if a.Key != ComponentKey {
				attrs = append(attrs, a)
			}
		}

		c.attrs = append(attrs, slog.String(ComponentKey, name))
	})
}
