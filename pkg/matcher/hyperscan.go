//go:build cgo && hyperscan

package matcher

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/flier/gohs/hyperscan"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// HyperscanEngine pairs Hyperscan with Go regexp.
// Two-stage pipeline:
//  1. Hyperscan answers "is there any match in the window" (fast, no capture groups)
//  2. Go regexp finds the leftmost span and capture groups when it says yes
//
// Patterns Hyperscan refuses (it lacks some RE2 constructs) run on Go
// regexp alone.
type HyperscanEngine struct {
	cfg Config
}

// NewHyperscan creates a Hyperscan-backed engine.
func NewHyperscan(cfg Config) (Engine, error) {
	return &HyperscanEngine{cfg: cfg}, nil
}

// HyperscanAvailable reports whether this build includes the Hyperscan engine.
func HyperscanAvailable() bool {
	return true
}

// Name implements Engine.
func (e *HyperscanEngine) Name() string {
	return EngineHyperscan
}

// Compile implements Engine.
func (e *HyperscanEngine) Compile(pattern string) (Pattern, error) {
	verify, err := compileRE2(pattern, e.cfg)
	if err != nil {
		return nil, &PatternError{Engine: EngineHyperscan, Pattern: pattern, Err: err}
	}

	// SomLeftMost reports start offsets, AllowEmpty accepts patterns such as
	// "" and ".*" that the scanner relies on.
	flags := hyperscan.SomLeftMost | hyperscan.AllowEmpty | hyperscan.Utf8Mode
	if e.cfg.Multiline {
		flags |= hyperscan.MultiLine
	}

	db, err := hyperscan.NewBlockDatabase(hyperscan.NewPattern(verify.expr, flags))
	if err != nil {
		return verify, nil
	}

	scratch, err := hyperscan.NewScratch(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to allocate Hyperscan scratch: %w", err)
	}

	return &hyperscanPattern{verify: verify, db: db, scratch: scratch}, nil
}

type hyperscanPattern struct {
	verify *re2Pattern

	mu      sync.Mutex // guards scratch, which Hyperscan forbids sharing across scans
	db      hyperscan.BlockDatabase
	scratch *hyperscan.Scratch
}

func (p *hyperscanPattern) String() string {
	return p.verify.String()
}

// FindLeftmost implements Pattern.
func (p *hyperscanPattern) FindLeftmost(window string) (*types.Match, error) {
	found, err := p.any(window, false)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return p.verify.FindLeftmost(window)
}

// MatchPrefix implements PrefixMatcher.
func (p *hyperscanPattern) MatchPrefix(window string) (*types.Match, error) {
	found, err := p.any(window, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return p.verify.MatchPrefix(window)
}

// any reports whether Hyperscan sees a match in window, or one starting at
// offset 0 when atStart is set. It answers true whenever Hyperscan cannot be
// consulted so the RE2 stage decides.
func (p *hyperscanPattern) any(window string, atStart bool) (bool, error) {
	// Utf8Mode has undefined behaviour on invalid input.
	if len(window) == 0 || !utf8.ValidString(window) {
		return true, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return true, nil
	}

	found := false
	onMatch := func(id uint, from, to uint64, flags uint, context interface{}) error {
		if atStart && from != 0 {
			return nil
		}
		found = true
		// Any non-nil return stops the scan; the answer is already known.
		return errHalt
	}

	if err := p.db.Scan([]byte(window), p.scratch, onMatch, nil); err != nil && !found {
		return false, fmt.Errorf("Hyperscan scan failed: %w", err)
	}
	return found, nil
}

// Close releases resources.
func (p *hyperscanPattern) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.scratch != nil {
		if err := p.scratch.Free(); err != nil {
			return fmt.Errorf("failed to free scratch: %w", err)
		}
		p.scratch = nil
	}
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		p.db = nil
	}
	return nil
}

var errHalt = errors.New("halt")
