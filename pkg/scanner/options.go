package scanner

import "github.com/praetorian-inc/strscan/pkg/matcher"

// config is shared, read-only, by a Scanner and its sub-scanners.
type config struct {
	engine    matcher.Engine
	logger    DebugLogger
	legacyEOS bool
}

// Option configures a Scanner.
type Option func(*config)

// WithEngine compiles patterns with e instead of matcher.Default().
func WithEngine(e matcher.Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithLogger routes pattern and engine failures to l.
func WithLogger(l DebugLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithLegacyEOS restores the historical end-of-string convention in which
// the last character, not the end of the buffer, counts as the end:
// EOS reports true at the start of the final character and Terminate moves
// there. An empty buffer ends at 0 in both conventions.
func WithLegacyEOS() Option {
	return func(c *config) {
		c.legacyEOS = true
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil {
		c.engine = matcher.Default()
	}
	if c.logger == nil {
		c.logger = NoopLogger{}
	}
	return c
}
