package matcher

import (
	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// Regexp2Engine compiles patterns with regexp2 for Perl-style regex support.
//
// Patterns are tried in RE2 compatibility mode first; patterns that need
// features RE2 lacks (lookaround, backreferences, (?x) comments) fall back to
// the default Perl-compatible mode. Searches are bounded by MatchTimeout to
// stop catastrophic backtracking.
//
// regexp2 reports offsets in runes. They are converted to byte offsets
// before leaving this package.
type Regexp2Engine struct {
	cfg Config
}

// NewRegexp2 creates a regexp2-backed engine.
func NewRegexp2(cfg Config) *Regexp2Engine {
	return &Regexp2Engine{cfg: cfg}
}

// Name implements Engine.
func (e *Regexp2Engine) Name() string {
	return EngineRegexp2
}

// Compile implements Engine.
func (e *Regexp2Engine) Compile(pattern string) (Pattern, error) {
	re, opts, err := e.compile(pattern)
	if err != nil {
		return nil, &PatternError{Engine: EngineRegexp2, Pattern: pattern, Err: err}
	}

	p := &regexp2Pattern{source: pattern, re: re}

	// The prefix variant only narrows where a match may start. When wrapping
	// breaks the pattern (trailing (?x) comment) the scanner falls back to
	// FindLeftmost.
	if prefix, err := regexp2.Compile(`\A(?:`+pattern+`)`, opts); err == nil {
		prefix.MatchTimeout = e.cfg.MatchTimeout
		p.prefix = prefix
	}
	return p, nil
}

func (e *Regexp2Engine) compile(pattern string) (*regexp2.Regexp, regexp2.RegexOptions, error) {
	var extra regexp2.RegexOptions
	if e.cfg.Multiline {
		extra = regexp2.Multiline
	}

	// Try RE2 mode first (safer, no backtracking surprises)
	opts := regexp2.RE2 | extra
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		// Fallback to default Perl-compatible mode if RE2 fails (for advanced features like (?x))
		opts = regexp2.None | extra
		var perlErr error
		re, perlErr = regexp2.Compile(pattern, opts)
		if perlErr != nil {
			return nil, 0, perlErr
		}
	}
	re.MatchTimeout = e.cfg.MatchTimeout
	return re, opts, nil
}

type regexp2Pattern struct {
	source string
	re     *regexp2.Regexp
	prefix *regexp2.Regexp // \A-anchored variant, nil if it failed to compile
}

func (p *regexp2Pattern) String() string {
	return p.source
}

// FindLeftmost implements Pattern.
func (p *regexp2Pattern) FindLeftmost(window string) (*types.Match, error) {
	m, err := p.re.FindStringMatch(window)
	if err != nil {
		return nil, wrapMatchError(p, err)
	}
	if m == nil {
		return nil, nil
	}
	return convertRegexp2Match(window, m), nil
}

// MatchPrefix implements PrefixMatcher.
func (p *regexp2Pattern) MatchPrefix(window string) (*types.Match, error) {
	if p.prefix == nil {
		m, err := p.FindLeftmost(window)
		if err != nil || m == nil || m.Span.Start != 0 {
			return nil, err
		}
		return m, nil
	}

	m, err := p.prefix.FindStringMatch(window)
	if err != nil {
		return nil, wrapMatchError(p, err)
	}
	if m == nil {
		return nil, nil
	}
	return convertRegexp2Match(window, m), nil
}
