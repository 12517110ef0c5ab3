package types

// Match is the outcome of a successful pattern search.
//
// Span and Groups are byte offsets. Pattern implementations report them
// relative to the searched window; the scanner shifts them to absolute buffer
// coordinates before exposing them.
type Match struct {
	Span   Span
	Groups []Span   // capture groups 1..n; NoSpan for groups that did not participate
	Names  []string // group name per entry in Groups, "" for unnamed groups
}

// Shift returns a copy of m with every span moved right by off bytes.
func (m *Match) Shift(off int) *Match {
	out := &Match{
		Span:  m.Span.Shift(off),
		Names: m.Names,
	}
	if len(m.Groups) > 0 {
		out.Groups = make([]Span, len(m.Groups))
		for i, g := range m.Groups {
			out.Groups[i] = g.Shift(off)
		}
	}
	return out
}

// GroupIndex returns the 1-based index of the named group, or -1.
func (m *Match) GroupIndex(name string) int {
	for i, n := range m.Names {
		if n != "" && n == name {
			return i + 1
		}
	}
	return -1
}
