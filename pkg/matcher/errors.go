package matcher

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMatchTimeout is returned when a search exceeds Config.MatchTimeout.
	ErrMatchTimeout = errors.New("match timeout")

	// ErrUnknownEngine is returned by New for an unrecognised engine name.
	ErrUnknownEngine = errors.New("unknown pattern engine")
)

// PatternError reports a pattern the engine could not compile.
type PatternError struct {
	Engine  string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q (%s): %v", e.Pattern, e.Engine, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// wrapMatchError normalises engine search errors so callers can test for ErrMatchTimeout.
func wrapMatchError(p Pattern, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "match timeout") {
		return fmt.Errorf("pattern %q: %w: %v", p.String(), ErrMatchTimeout, err)
	}
	return fmt.Errorf("pattern %q: %w", p.String(), err)
}
