package lexer

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/strscan/pkg/matcher"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// FilterConfig specifies include and exclude patterns for token kinds.
type FilterConfig struct {
	Include []string // Regex patterns - only matching kinds kept
	Exclude []string // Regex patterns - matching kinds dropped
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// KindFilter selects tokens by kind. Include is applied first, then exclude.
// An empty include list keeps every kind.
type KindFilter struct {
	include []matcher.Pattern
	exclude []matcher.Pattern
}

// NewKindFilter compiles the filter patterns with engine, or matcher.Default()
// when engine is nil. Patterns are unanchored, so "str" keeps "string".
func NewKindFilter(cfg FilterConfig, engine matcher.Engine) (*KindFilter, error) {
	if engine == nil {
		engine = matcher.Default()
	}

	compile := func(patterns []string) ([]matcher.Pattern, error) {
		var out []matcher.Pattern
		for _, pattern := range patterns {
			p, err := engine.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid kind filter %q: %w", pattern, err)
			}
			out = append(out, p)
		}
		return out, nil
	}

	include, err := compile(cfg.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compile(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	return &KindFilter{include: include, exclude: exclude}, nil
}

// Keep reports whether tokens of the given kind pass the filter.
func (f *KindFilter) Keep(kind string) bool {
	if len(f.include) > 0 && !matchesAny(kind, f.include) {
		return false
	}
	return !matchesAny(kind, f.exclude)
}

// Apply returns the tokens that pass the filter.
func (f *KindFilter) Apply(tokens []types.Token) []types.Token {
	result := make([]types.Token, 0, len(tokens))
	for _, tok := range tokens {
		if f.Keep(tok.Kind) {
			result = append(result, tok)
		}
	}
	return result
}

func matchesAny(kind string, patterns []matcher.Pattern) bool {
	for _, p := range patterns {
		if m, err := p.FindLeftmost(kind); err == nil && m != nil {
			return true
		}
	}
	return false
}
