package matcher

import (
	"fmt"
	"sync"

	"github.com/praetorian-inc/strscan/pkg/types"
)

// Engine compiles textual patterns into Patterns.
type Engine interface {
	// Name identifies the engine ("regexp2", "re2", "hyperscan").
	Name() string

	// Compile parses pattern. Malformed syntax is reported as *PatternError.
	Compile(pattern string) (Pattern, error)
}

// Pattern is a compiled pattern that searches a window of text.
type Pattern interface {
	// String returns the source text of the pattern.
	String() string

	// FindLeftmost returns the leftmost match in window, or nil when there is none.
	// Offsets are relative to window, and start-of-input assertions such as ^
	// and \A hold at offset 0 of window.
	FindLeftmost(window string) (*types.Match, error)
}

// PrefixMatcher is implemented by patterns that can test for a match starting
// exactly at offset 0 of the window without searching the rest of it.
type PrefixMatcher interface {
	MatchPrefix(window string) (*types.Match, error)
}

// FindPrefix returns the match of p that starts at offset 0 of window, or nil.
// It uses MatchPrefix when p provides it and falls back to FindLeftmost.
func FindPrefix(p Pattern, window string) (*types.Match, error) {
	if pm, ok := p.(PrefixMatcher); ok {
		return pm.MatchPrefix(window)
	}
	m, err := p.FindLeftmost(window)
	if err != nil || m == nil {
		return nil, err
	}
	if m.Span.Start != 0 {
		return nil, nil
	}
	return m, nil
}

// New creates an Engine from cfg, wrapped in a pattern cache when
// cfg.CacheSize is positive.
func New(cfg Config) (Engine, error) {
	var (
		e   Engine
		err error
	)
	switch cfg.Engine {
	case "", EngineRegexp2:
		e = NewRegexp2(cfg)
	case EngineRE2:
		e = NewRE2(cfg)
	case EngineHyperscan:
		e, err = NewHyperscan(cfg)
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownEngine, cfg.Engine, Engines())
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheSize > 0 {
		return NewCache(e, cfg.CacheSize)
	}
	return e, nil
}

var (
	// defaultEngine is shared by every scanner built without an explicit engine
	defaultEngine    Engine
	defaultEngineErr error
	defaultOnce      sync.Once
)

// Default returns the process-wide engine built from DefaultConfig.
func Default() Engine {
	defaultOnce.Do(func() {
		defaultEngine, defaultEngineErr = New(DefaultConfig())
	})
	if defaultEngineErr != nil {
		// DefaultConfig only names pure-Go engines, so this is a programming error.
		panic(fmt.Sprintf("matcher: default engine: %v", defaultEngineErr))
	}
	return defaultEngine
}

// Engines lists the engine names accepted by New.
func Engines() []string {
	names := []string{EngineRegexp2, EngineRE2}
	if HyperscanAvailable() {
		names = append(names, EngineHyperscan)
	}
	return names
}
