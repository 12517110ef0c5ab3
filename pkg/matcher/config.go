package matcher

import "time"

// Engine names accepted by Config.Engine.
const (
	EngineRegexp2   = "regexp2"
	EngineRE2       = "re2"
	EngineHyperscan = "hyperscan"
)

// Config contains configuration for engine construction
type Config struct {
	// Engine selects the pattern engine. Empty means EngineRegexp2.
	Engine string

	// MatchTimeout bounds a single search on backtracking engines (regexp2).
	// Zero disables the limit.
	MatchTimeout time.Duration

	// Multiline makes ^ and $ match at line boundaries inside the window.
	// The window start is always a match for ^ regardless of this setting.
	Multiline bool

	// CacheSize is the number of compiled patterns kept in an LRU cache (0 = no cache)
	CacheSize int
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() Config {
	return Config{
		Engine:       EngineRegexp2,
		MatchTimeout: 5 * time.Second,
		CacheSize:    256,
	}
}
