package types

import "fmt"

// Span is a byte range [Start, End) - half-open interval.
// A Start of -1 marks a capture group that did not participate in the match.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NoSpan is the span of a group that did not participate in a match.
var NoSpan = Span{Start: -1, End: -1}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if !s.Valid() {
		return 0
	}
	return s.End - s.Start
}

// Empty reports whether the span is a zero-length match.
func (s Span) Empty() bool {
	return s.Valid() && s.Start == s.End
}

// Valid reports whether the span refers to real offsets.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Shift returns the span moved right by off bytes. Invalid spans are returned unchanged.
func (s Span) Shift(off int) Span {
	if !s.Valid() {
		return s
	}
	return Span{Start: s.Start + off, End: s.End + off}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// SourcePoint is line:column position (1-based).
type SourcePoint struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p SourcePoint) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceSpan is start-end line:column range.
type SourceSpan struct {
	Start SourcePoint `json:"start"`
	End   SourcePoint `json:"end"`
}

// Location combines byte offsets and source positions.
type Location struct {
	Offset Span       `json:"offset"`
	Source SourceSpan `json:"source"`
}
