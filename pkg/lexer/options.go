package lexer

import (
	"github.com/praetorian-inc/strscan/pkg/matcher"
	"github.com/praetorian-inc/strscan/pkg/scanner"
)

// Option configures a Lexer.
type Option func(*Lexer)

// WithEngine compiles rule patterns with e. Engines that do not cache
// compiled patterns are wrapped in a matcher.CachedEngine.
func WithEngine(e matcher.Engine) Option {
	return func(l *Lexer) {
		l.engine = e
	}
}

// WithLogger sets the logger shared by the lexer and its scanners.
func WithLogger(logger scanner.DebugLogger) Option {
	return func(l *Lexer) {
		l.logger = logger
	}
}

// WithoutPrefilter tries every rule on every input, ignoring rule keywords.
func WithoutPrefilter() Option {
	return func(l *Lexer) {
		l.noPrefilter = true
	}
}
