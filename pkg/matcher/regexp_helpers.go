package matcher

import (
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// runeCursor converts rune indices within s into byte offsets.
// Successive ascending lookups resume from the previous one.
type runeCursor struct {
	s     string
	runes int // rune index reached
	bytes int // byte offset of runes
}

func (c *runeCursor) byteOffset(runeIdx int) int {
	if runeIdx < c.runes {
		c.runes, c.bytes = 0, 0
	}
	for c.runes < runeIdx && c.bytes < len(c.s) {
		if c.s[c.bytes] < utf8.RuneSelf {
			c.bytes++
		} else {
			// Invalid sequences decode as one RuneError of width 1, which is
			// also how regexp2 turns a string into runes.
			_, size := utf8.DecodeRuneInString(c.s[c.bytes:])
			c.bytes += size
		}
		c.runes++
	}
	return c.bytes
}

func (c *runeCursor) span(index, length int) types.Span {
	start := c.byteOffset(index)
	return types.Span{Start: start, End: c.byteOffset(index + length)}
}

// convertRegexp2Match translates a regexp2 match over window into byte offsets.
func convertRegexp2Match(window string, m *regexp2.Match) *types.Match {
	c := &runeCursor{s: window}
	result := &types.Match{
		Span: c.span(m.Index, m.Length),
	}

	groups := m.Groups()
	if len(groups) <= 1 {
		return result
	}

	result.Groups = make([]types.Span, 0, len(groups)-1)
	result.Names = make([]string, 0, len(groups)-1)
	for _, g := range groups[1:] {
		span := types.NoSpan
		if len(g.Captures) > 0 {
			// Group embeds its last capture, matching RE2's "last iteration wins".
			span = c.span(g.Index, g.Length)
		}
		result.Groups = append(result.Groups, span)
		result.Names = append(result.Names, groupName(g.Name))
	}
	return result
}

// groupName drops regexp2's synthetic names for numbered groups ("1", "2", ...).
func groupName(name string) string {
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return ""
	}
	return name
}
