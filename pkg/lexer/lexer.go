// Package lexer turns text into tokens by trying the rules of a grammar, in
// order, at the scan position.
//
// The first rule whose pattern matches a non-empty prefix of the remaining
// input wins. Skip rules consume input without producing a token. A rule
// that matches the empty string makes no progress and the next rule is
// tried instead, so a grammar can never loop forever on one position.
package lexer

import (
	"errors"
	"fmt"

	"github.com/praetorian-inc/strscan/pkg/grammar"
	"github.com/praetorian-inc/strscan/pkg/matcher"
	"github.com/praetorian-inc/strscan/pkg/prefilter"
	"github.com/praetorian-inc/strscan/pkg/scanner"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// nearContext is the number of characters quoted by a SyntaxError.
const nearContext = 16

// Lexer tokenizes input with one grammar. It is safe for concurrent use;
// every call scans with its own Scanner.
type Lexer struct {
	grammar     *types.Grammar
	engine      matcher.Engine
	logger      scanner.DebugLogger
	prefilter   *prefilter.Prefilter
	noPrefilter bool
}

// New validates g and compiles all of its rules.
func New(g *types.Grammar, opts ...Option) (*Lexer, error) {
	l := &Lexer{grammar: g}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = scanner.NoopLogger{}
	}
	if l.engine == nil {
		l.engine = matcher.Default()
	}
	if _, cached := l.engine.(*matcher.CachedEngine); !cached && g != nil {
		cache, err := matcher.NewCache(l.engine, max(2*len(g.Rules), 16))
		if err != nil {
			return nil, fmt.Errorf("failed to create pattern cache: %w", err)
		}
		l.engine = cache
	}

	// Compiling through the cache here means scanning never compiles.
	if err := grammar.ValidateGrammar(g, l.engine); err != nil {
		return nil, err
	}

	if !l.noPrefilter {
		l.prefilter = prefilter.New(g.Rules)
	}
	l.logger.Log("lexer: grammar %s ready (%d rules, engine %s)", g.Name, len(g.Rules), l.engine.Name())
	return l, nil
}

// Grammar returns the grammar the lexer was built from.
func (l *Lexer) Grammar() *types.Grammar {
	return l.grammar
}

// Tokenize returns all tokens of src.
func (l *Lexer) Tokenize(src string) ([]types.Token, error) {
	var tokens []types.Token
	err := l.Each(src, func(tok types.Token) error {
		tokens = append(tokens, tok)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Each calls fn for every token of src in order. It stops at the first
// error returned by fn, which is returned unchanged.
func (l *Lexer) Each(src string, fn func(types.Token) error) error {
	rules := l.rulesFor(src)
	s := scanner.New(src, scanner.WithEngine(l.engine), scanner.WithLogger(l.logger))
	point := types.SourcePoint{Line: 1, Column: 1}

	for s.Rest() != "" {
		start := s.Pos()
		rule, err := l.next(s, rules)
		if err != nil {
			return err
		}
		if rule == nil {
			return l.syntaxError(s, point)
		}

		text, _ := s.Matched()
		line, column := types.AdvancePoint(point, text)
		end := types.SourcePoint{Line: line, Column: column}

		if !rule.Skip {
			tok := types.Token{
				Kind: rule.Name,
				Text: text,
				Location: types.Location{
					Offset: types.Span{Start: start, End: s.Pos()},
					Source: types.SourceSpan{Start: point, End: end},
				},
				Captures: s.NamedGroups(),
			}
			if err := fn(tok); err != nil {
				return err
			}
		}
		point = end
	}
	return nil
}

// next advances s past the first rule that makes progress.
func (l *Lexer) next(s *scanner.Scanner, rules []*types.Rule) (*types.Rule, error) {
	for _, r := range rules {
		text, ok, err := s.Scan(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: rule %s: %w", l.grammar.Name, r.Name, err)
		}
		if !ok {
			continue
		}
		if text == "" {
			l.logger.Log("lexer: rule %s matched empty at offset %d, trying next rule", r.Name, s.Pos())
			continue
		}
		return r, nil
	}
	return nil, nil
}

func (l *Lexer) rulesFor(src string) []*types.Rule {
	if l.prefilter == nil {
		return l.grammar.Rules
	}
	rules := l.prefilter.Filter(src)
	if len(rules) != len(l.grammar.Rules) {
		l.logger.Log("lexer: prefilter kept %d of %d rules", len(rules), len(l.grammar.Rules))
	}
	return rules
}

func (l *Lexer) syntaxError(s *scanner.Scanner, at types.SourcePoint) error {
	bad := s.Peek(1)
	line, column := types.AdvancePoint(at, bad)
	return &SyntaxError{
		Grammar: l.grammar.Name,
		Location: types.Location{
			Offset: types.Span{Start: s.Pos(), End: s.Pos() + len(bad)},
			Source: types.SourceSpan{Start: at, End: types.SourcePoint{Line: line, Column: column}},
		},
		Near: s.Peek(nearContext),
	}
}

// CheckExamples tokenizes every example of the grammar and reports all
// failures.
func (l *Lexer) CheckExamples() error {
	var errs []error
	for i, example := range l.grammar.Examples {
		if _, err := l.Tokenize(example); err != nil {
			errs = append(errs, fmt.Errorf("example %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks that g is well formed, that every rule compiles, and that
// every example tokenizes.
func Validate(g *types.Grammar, opts ...Option) error {
	l, err := New(g, opts...)
	if err != nil {
		return err
	}
	return l.CheckExamples()
}
