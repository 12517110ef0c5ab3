// Package strscan provides a stateful string scanner and a rule-driven lexer
// built on it.
//
// A Scanner keeps a position in an immutable string and advances it by
// matching patterns anchored at that position:
//
//	s, err := strscan.New("3.14 * r")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	num, ok, err := s.Scan(`\d+(\.\d+)?`) // "3.14", true, nil
//	_, _, _ = s.Scan(`\s+`)
//	op, ok, err := s.Scan(`[*+/-]`)       // "*", true, nil
//
// After every attempt Matched, PreMatch and PostMatch describe the most recent
// successful match. Check and CheckUntil look ahead without moving.
//
// # Lexing
//
// A Lexer applies the ordered rules of a Grammar at the scan position and
// emits tokens with byte offsets and line/column locations:
//
//	lx, err := strscan.NewLexer("json")
//	tokens, err := lx.Tokenize(`{"ok": true}`)
//	for _, tok := range tokens {
//	    fmt.Printf("%s %q at %s\n", tok.Kind, tok.Text, tok.Location.Source.Start)
//	}
//
// # Engines
//
// Patterns are compiled by a pluggable engine. The default is regexp2 in
// RE2-compatible mode with a Perl-syntax fallback. "re2" uses Go's regexp
// package and "hyperscan" (build tag hyperscan, cgo) prefilters with
// Intel Hyperscan:
//
//	s, err := strscan.New(input, strscan.WithEngineName("re2"))
package strscan

import (
	"fmt"

	"github.com/praetorian-inc/strscan/pkg/grammar"
	"github.com/praetorian-inc/strscan/pkg/lexer"
	"github.com/praetorian-inc/strscan/pkg/matcher"
	"github.com/praetorian-inc/strscan/pkg/scanner"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/strscan" without subpackages.
type (
	// Scanner is a cursor over a string that advances by pattern matches.
	Scanner = scanner.Scanner

	// Lexer tokenizes text with a Grammar.
	Lexer = lexer.Lexer

	// Match is a match span with its capture groups.
	Match = types.Match

	// Span is a half-open byte range.
	Span = types.Span

	// Token is a lexeme produced by a Lexer.
	Token = types.Token

	// Grammar is an ordered list of lexical rules.
	Grammar = types.Grammar

	// Rule is one named pattern of a Grammar.
	Rule = types.Rule

	// Location describes where a token was found within its input.
	Location = types.Location

	// Engine compiles patterns.
	Engine = matcher.Engine

	// PatternError reports a pattern the engine could not compile.
	PatternError = matcher.PatternError

	// SyntaxError reports input no grammar rule matches.
	SyntaxError = lexer.SyntaxError

	// DebugLogger receives diagnostic messages.
	DebugLogger = scanner.DebugLogger
)

// Re-exported errors.
var (
	ErrInvalidPosition = scanner.ErrInvalidPosition
	ErrMatchTimeout    = matcher.ErrMatchTimeout
	ErrUnknownEngine   = matcher.ErrUnknownEngine
)

// config holds facade configuration.
type config struct {
	engine     matcher.Engine
	engineName string
	logger     scanner.DebugLogger
	legacyEOS  bool
}

// Option configures a Scanner or Lexer created by this package.
type Option func(*config)

// WithEngine compiles patterns with e.
func WithEngine(e Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithEngineName selects an engine by name ("regexp2", "re2", "hyperscan").
// It is ignored when WithEngine is also given.
func WithEngineName(name string) Option {
	return func(c *config) {
		c.engineName = name
	}
}

// WithLogger routes diagnostic messages to logger.
func WithLogger(logger DebugLogger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLegacyEOS makes EOS and Terminate treat the start of the final
// character as the end of the buffer. Ignored by lexers.
func WithLegacyEOS() Option {
	return func(c *config) {
		c.legacyEOS = true
	}
}

func resolve(opts []Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.engine == nil && c.engineName != "" {
		cfg := matcher.DefaultConfig()
		cfg.Engine = c.engineName
		e, err := matcher.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating engine: %w", err)
		}
		c.engine = e
	}
	return c, nil
}

// New creates a Scanner at the start of src.
//
// By default, the scanner:
//   - Uses the shared regexp2 engine with a compiled-pattern cache
//   - Reports EOS at len(src)
//   - Does not log
func New(src string, opts ...Option) (*Scanner, error) {
	c, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	var sopts []scanner.Option
	if c.engine != nil {
		sopts = append(sopts, scanner.WithEngine(c.engine))
	}
	if c.logger != nil {
		sopts = append(sopts, scanner.WithLogger(c.logger))
	}
	if c.legacyEOS {
		sopts = append(sopts, scanner.WithLegacyEOS())
	}
	return scanner.New(src, sopts...), nil
}

// NewLexer creates a Lexer for the builtin grammar with the given name.
func NewLexer(name string, opts ...Option) (*Lexer, error) {
	g, err := grammar.NewLoader().Builtin(name)
	if err != nil {
		return nil, err
	}
	return NewLexerFromGrammar(g, opts...)
}

// NewLexerFromGrammar creates a Lexer for g.
func NewLexerFromGrammar(g *Grammar, opts ...Option) (*Lexer, error) {
	c, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	var lopts []lexer.Option
	if c.engine != nil {
		lopts = append(lopts, lexer.WithEngine(c.engine))
	}
	if c.logger != nil {
		lopts = append(lopts, lexer.WithLogger(c.logger))
	}
	return lexer.New(g, lopts...)
}

// Tokenize tokenizes src with the builtin grammar with the given name.
func Tokenize(name, src string, opts ...Option) ([]Token, error) {
	lx, err := NewLexer(name, opts...)
	if err != nil {
		return nil, err
	}
	return lx.Tokenize(src)
}

// LoadGrammarsFromFile loads grammars from a YAML file.
// Use this with NewLexerFromGrammar to tokenize with custom grammars.
//
// Example:
//
//	grammars, err := strscan.LoadGrammarsFromFile("/path/to/grammars.yml")
//	if err != nil {
//	    return err
//	}
//	lx, err := strscan.NewLexerFromGrammar(grammars[0])
func LoadGrammarsFromFile(path string) ([]*Grammar, error) {
	return grammar.NewLoader().LoadGrammarFile(path)
}

// LoadBuiltinGrammars returns all builtin grammars, sorted by name.
func LoadBuiltinGrammars() ([]*Grammar, error) {
	return grammar.NewLoader().LoadBuiltinGrammars()
}

// Engines lists the available engine names.
func Engines() []string {
	return matcher.Engines()
}
