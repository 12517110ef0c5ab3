package matcher

import (
	"regexp"

	"github.com/praetorian-inc/strscan/pkg/types"
)

// RE2Engine compiles patterns with Go's regexp package: linear-time RE2
// semantics and native byte offsets, at the cost of lookaround and
// backreferences. Free-spacing (?x) patterns are flattened first.
type RE2Engine struct {
	cfg Config
}

// NewRE2 creates an RE2 engine.
func NewRE2(cfg Config) *RE2Engine {
	return &RE2Engine{cfg: cfg}
}

// Name implements Engine.
func (e *RE2Engine) Name() string {
	return EngineRE2
}

// Compile implements Engine.
func (e *RE2Engine) Compile(pattern string) (Pattern, error) {
	p, err := compileRE2(pattern, e.cfg)
	if err != nil {
		return nil, &PatternError{Engine: EngineRE2, Pattern: pattern, Err: err}
	}
	return p, nil
}

type re2Pattern struct {
	source string
	expr   string // flattened expression handed to regexp
	re     *regexp.Regexp
	prefix *regexp.Regexp // \A-anchored variant, nil if it failed to compile
}

func compileRE2(pattern string, cfg Config) (*re2Pattern, error) {
	expr := stripExtendedMode(pattern)
	if cfg.Multiline {
		expr = "(?m)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	p := &re2Pattern{source: pattern, expr: expr, re: re}
	if prefix, err := regexp.Compile(`\A(?:` + expr + `)`); err == nil {
		p.prefix = prefix
	}
	return p, nil
}

func (p *re2Pattern) String() string {
	return p.source
}

// FindLeftmost implements Pattern.
func (p *re2Pattern) FindLeftmost(window string) (*types.Match, error) {
	return buildRE2Match(p.re, p.re.FindStringSubmatchIndex(window)), nil
}

// MatchPrefix implements PrefixMatcher.
func (p *re2Pattern) MatchPrefix(window string) (*types.Match, error) {
	if p.prefix == nil {
		m := buildRE2Match(p.re, p.re.FindStringSubmatchIndex(window))
		if m == nil || m.Span.Start != 0 {
			return nil, nil
		}
		return m, nil
	}
	return buildRE2Match(p.prefix, p.prefix.FindStringSubmatchIndex(window)), nil
}

func buildRE2Match(re *regexp.Regexp, loc []int) *types.Match {
	if loc == nil {
		return nil
	}

	m := &types.Match{Span: types.Span{Start: loc[0], End: loc[1]}}
	n := len(loc)/2 - 1
	if n == 0 {
		return m
	}

	names := re.SubexpNames()
	m.Groups = make([]types.Span, n)
	m.Names = make([]string, n)
	for i := 0; i < n; i++ {
		start, end := loc[2*(i+1)], loc[2*(i+1)+1]
		if start < 0 {
			m.Groups[i] = types.NoSpan
		} else {
			m.Groups[i] = types.Span{Start: start, End: end}
		}
		m.Names[i] = names[i+1]
	}
	return m
}
