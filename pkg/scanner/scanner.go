// Package scanner implements a stateful cursor over an immutable string that
// advances by matching patterns anchored at the current position.
//
// Every pattern is evaluated against the window src[Pos():], so ^ and \A
// match at the cursor rather than at offset 0 of the buffer:
//
//	s := scanner.New("This is a test")
//	s.Scan(`\w+`)  // "This", true
//	s.Scan(`^\d`)  // "", false
//	s.Scan(`^\s`)  // " ", true
//
// Returned strings are substrings of the buffer and share its memory.
package scanner

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/praetorian-inc/strscan/pkg/matcher"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// ErrInvalidPosition is returned by SetPos for offsets outside the buffer or
// inside a multi-byte character.
var ErrInvalidPosition = errors.New("invalid scan position")

// ErrBadMatch is returned when an engine reports a span outside the window.
var ErrBadMatch = errors.New("engine reported a match outside the window")

// Scanner is a single-owner cursor; it is not safe for concurrent use.
// Separate Scanners over the same string may run in parallel.
type Scanner struct {
	src  string
	pos  int
	last *types.Match // most recent match in buffer coordinates; nil after a failed attempt or a reposition
	cfg  *config
}

// New creates a Scanner at position 0 of src.
func New(src string, opts ...Option) *Scanner {
	return &Scanner{src: src, cfg: newConfig(opts)}
}

// Source returns the whole buffer.
func (s *Scanner) Source() string {
	return s.src
}

// Len returns the buffer length in bytes.
func (s *Scanner) Len() int {
	return len(s.src)
}

// Pos returns the byte offset of the cursor.
func (s *Scanner) Pos() int {
	return s.pos
}

// Rest returns the unscanned remainder of the buffer.
func (s *Scanner) Rest() string {
	return s.src[s.pos:]
}

// Peek returns up to n characters from the cursor without consuming them.
func (s *Scanner) Peek(n int) string {
	rest := s.src[s.pos:]
	i := 0
	for ; n > 0 && i < len(rest); n-- {
		_, size := utf8.DecodeRuneInString(rest[i:])
		i += size
	}
	return rest[:i]
}

// BeginningOfLine reports whether the cursor is at offset 0 or just after a '\n'.
func (s *Scanner) BeginningOfLine() bool {
	return s.pos == 0 || s.src[s.pos-1] == '\n'
}

// BOL is shorthand for BeginningOfLine.
func (s *Scanner) BOL() bool {
	return s.BeginningOfLine()
}

// EOS reports whether the cursor is at the end of the buffer.
// With WithLegacyEOS the end is the start of the final character.
func (s *Scanner) EOS() bool {
	return s.pos == s.end()
}

// end is the offset EOS and Terminate treat as the end of the buffer.
func (s *Scanner) end() int {
	if !s.cfg.legacyEOS || len(s.src) == 0 {
		return len(s.src)
	}
	_, size := utf8.DecodeLastRuneInString(s.src)
	return len(s.src) - size
}

// SetPos moves the cursor to byte offset p and forgets the last match, even
// when p equals the current position. On error the Scanner is unchanged.
func (s *Scanner) SetPos(p int) error {
	if p < 0 || p > len(s.src) {
		return fmt.Errorf("%w: %d outside [0, %d]", ErrInvalidPosition, p, len(s.src))
	}
	if !s.boundary(p) {
		return fmt.Errorf("%w: %d is inside a multi-byte character", ErrInvalidPosition, p)
	}
	s.pos = p
	s.last = nil
	return nil
}

// Reset moves the cursor back to the start of the buffer.
func (s *Scanner) Reset() {
	s.pos = 0
	s.last = nil
}

// Terminate moves the cursor to the end of the buffer (see EOS) and forgets
// the last match.
func (s *Scanner) Terminate() {
	s.pos = s.end()
	s.last = nil
}

// boundary reports whether p starts a character. Invalid bytes count as
// one character each, the same way Getch and the engines step over them, so
// only the inside of a valid multi-byte sequence is rejected.
func (s *Scanner) boundary(p int) bool {
	if p == 0 || p == len(s.src) || utf8.RuneStart(s.src[p]) {
		return true
	}
	for start := p - 1; start >= 0 && start >= p-(utf8.UTFMax-1); start-- {
		if !utf8.RuneStart(s.src[start]) {
			continue
		}
		r, size := utf8.DecodeRuneInString(s.src[start:])
		return r == utf8.RuneError || start+size <= p
	}
	return true
}

// Scan matches pattern at the cursor. On success it advances past the match
// and returns the matched text. A match that starts later in the window is
// not a success.
func (s *Scanner) Scan(pattern string) (string, bool, error) {
	if _, ok, err := s.attempt(pattern, true, true); !ok {
		return "", false, err
	}
	return s.matchedText(), true, nil
}

// ScanUntil searches for the leftmost match of pattern anywhere in the window.
// On success it advances past the match and returns everything from the old
// position through the end of the match.
func (s *Scanner) ScanUntil(pattern string) (string, bool, error) {
	start, ok, err := s.attempt(pattern, false, true)
	if !ok {
		return "", false, err
	}
	return s.src[start:s.last.Span.End], true, nil
}

// Check is Scan without advancing the cursor.
func (s *Scanner) Check(pattern string) (string, bool, error) {
	if _, ok, err := s.attempt(pattern, true, false); !ok {
		return "", false, err
	}
	return s.matchedText(), true, nil
}

// CheckUntil is ScanUntil without advancing the cursor.
func (s *Scanner) CheckUntil(pattern string) (string, bool, error) {
	start, ok, err := s.attempt(pattern, false, false)
	if !ok {
		return "", false, err
	}
	return s.src[start:s.last.Span.End], true, nil
}

// Skip is Scan returning the number of bytes advanced instead of the text.
func (s *Scanner) Skip(pattern string) (int, bool, error) {
	start, ok, err := s.attempt(pattern, true, true)
	if !ok {
		return 0, false, err
	}
	return s.pos - start, true, nil
}

// SkipUntil is ScanUntil returning the number of bytes advanced.
func (s *Scanner) SkipUntil(pattern string) (int, bool, error) {
	start, ok, err := s.attempt(pattern, false, true)
	if !ok {
		return 0, false, err
	}
	return s.pos - start, true, nil
}

// Getch consumes exactly one character, newline included. Bytes that are
// not valid UTF-8 are consumed one at a time. It fails only at the end of
// the buffer.
func (s *Scanner) Getch() (string, bool) {
	window := s.src[s.pos:]
	var m *types.Match
	if len(window) > 0 {
		_, size := utf8.DecodeRuneInString(window)
		m = &types.Match{Span: types.Span{Start: 0, End: size}}
	}
	if _, ok, _ := s.record(m, nil, true); !ok {
		return "", false
	}
	return s.matchedText(), true
}

// attempt compiles pattern and searches the window. A compile error leaves
// the Scanner untouched; any search, successful or not, replaces the last match.
func (s *Scanner) attempt(pattern string, anchored, advance bool) (int, bool, error) {
	p, err := s.cfg.engine.Compile(pattern)
	if err != nil {
		s.cfg.logger.Log("compile %q failed: %v", pattern, err)
		return s.pos, false, err
	}

	window := s.src[s.pos:]
	var m *types.Match
	if anchored {
		m, err = matcher.FindPrefix(p, window)
		if m != nil && m.Span.Start != 0 {
			m = nil
		}
	} else {
		m, err = p.FindLeftmost(window)
	}
	if err == nil && m != nil && (!m.Span.Valid() || m.Span.End > len(window)) {
		err = fmt.Errorf("%w: %s in window of %d bytes", ErrBadMatch, m.Span, len(window))
	}
	return s.record(m, err, advance)
}

// record is the single place the last match and position change after a
// match attempt. m is relative to the window at the current position.
func (s *Scanner) record(m *types.Match, err error, advance bool) (int, bool, error) {
	start := s.pos
	s.last = nil

	if err != nil {
		s.cfg.logger.Log("match at %d failed: %v", start, err)
		return start, false, err
	}
	if m == nil {
		return start, false, nil
	}

	s.last = m.Shift(start)
	if advance {
		s.pos = s.last.Span.End
	}
	return start, true, nil
}

func (s *Scanner) matchedText() string {
	return s.src[s.last.Span.Start:s.last.Span.End]
}

// Matched returns the text of the last match.
func (s *Scanner) Matched() (string, bool) {
	if s.last == nil {
		return "", false
	}
	return s.matchedText(), true
}

// MatchSpan returns the buffer offsets of the last match.
func (s *Scanner) MatchSpan() (types.Span, bool) {
	if s.last == nil {
		return types.NoSpan, false
	}
	return s.last.Span, true
}

// PreMatch returns the buffer content before the last match.
func (s *Scanner) PreMatch() (string, bool) {
	if s.last == nil {
		return "", false
	}
	return s.src[:s.last.Span.Start], true
}

// PostMatch returns the buffer content after the last match. It starts at
// the end of the match rather than at the cursor, so after Check it still
// holds that PreMatch + Matched + PostMatch equals the buffer.
func (s *Scanner) PostMatch() (string, bool) {
	if s.last == nil {
		return "", false
	}
	return s.src[s.last.Span.End:], true
}

// Group returns capture group i of the last match; group 0 is the whole match.
// It reports false when there is no match, no such group, or the group did
// not participate.
func (s *Scanner) Group(i int) (string, bool) {
	if s.last == nil || i < 0 || i > len(s.last.Groups) {
		return "", false
	}
	if i == 0 {
		return s.matchedText(), true
	}
	span := s.last.Groups[i-1]
	if !span.Valid() {
		return "", false
	}
	return s.src[span.Start:span.End], true
}

// NamedGroup returns the named capture group of the last match.
func (s *Scanner) NamedGroup(name string) (string, bool) {
	if s.last == nil {
		return "", false
	}
	return s.Group(s.last.GroupIndex(name))
}

// NamedGroups returns the participating named groups of the last match, or
// nil when there are none.
func (s *Scanner) NamedGroups() map[string]string {
	if s.last == nil {
		return nil
	}
	var out map[string]string
	for i, name := range s.last.Names {
		if name == "" {
			continue
		}
		if text, ok := s.Group(i + 1); ok {
			if out == nil {
				out = make(map[string]string)
			}
			out[name] = text
		}
	}
	return out
}

// GroupCount returns the number of capture groups in the last match.
func (s *Scanner) GroupCount() int {
	if s.last == nil {
		return 0
	}
	return len(s.last.Groups)
}

// Subscan returns an independent Scanner over the unscanned remainder.
// It starts at position 0 with no match and shares the engine and options.
func (s *Scanner) Subscan() *Scanner {
	return &Scanner{src: s.src[s.pos:], cfg: s.cfg}
}

func (s *Scanner) String() string {
	if s.EOS() {
		return fmt.Sprintf("Scanner(%d/%d fin)", s.pos, len(s.src))
	}
	return fmt.Sprintf("Scanner(%d/%d @ %q)", s.pos, len(s.src), s.Peek(8))
}
