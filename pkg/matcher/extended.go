package matcher

import "strings"

// stripExtendedMode rewrites a pattern that starts with (?x) into the
// equivalent compact pattern, for engines without free-spacing support.
//
// Outside character classes it drops unescaped whitespace, "# ..." line
// comments and (?# ...) comments. Escapes and class contents are kept
// verbatim, so `\ ` and `[ #]` survive. Other inline flags such as (?s)
// are preserved.
func stripExtendedMode(pattern string) string {
	trimmed := strings.TrimLeft(pattern, " \t\r\n")
	if !strings.HasPrefix(trimmed, "(?x)") {
		return pattern
	}
	src := trimmed[len("(?x)"):]

	var out strings.Builder
	out.Grow(len(src))
	inClass := false

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch {
		case c == '\\':
			out.WriteByte(c)
			if i+1 < len(src) {
				i++
				out.WriteByte(src[i])
			}
		case inClass:
			if c == ']' {
				inClass = false
			}
			out.WriteByte(c)
		case c == '[':
			inClass = true
			out.WriteByte(c)
			// A leading ] (or ^]) is a literal member, not the class end.
			if i+1 < len(src) && src[i+1] == '^' {
				i++
				out.WriteByte('^')
			}
			if i+1 < len(src) && src[i+1] == ']' {
				i++
				out.WriteByte(']')
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
		case c == '#':
			for i+1 < len(src) && src[i+1] != '\n' {
				i++
			}
		case strings.HasPrefix(src[i:], "(?#"):
			end := strings.IndexByte(src[i:], ')')
			if end < 0 {
				// Unterminated comment: let the engine report the syntax error.
				out.WriteString(src[i:])
				return out.String()
			}
			i += end
		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}
