package types

import "unicode/utf8"

// ComputeLineColumn computes line and column numbers from a byte offset in content.
// Lines and columns are 1-indexed (first line is 1, first column is 1).
// Columns count characters, so a multi-byte character advances the column by one.
func ComputeLineColumn(content string, byteOffset int) (line, column int) {
	if byteOffset > len(content) {
		byteOffset = len(content)
	}
	return AdvancePoint(SourcePoint{Line: 1, Column: 1}, content[:max(byteOffset, 0)])
}

// AdvancePoint returns the position reached after consuming text starting at p.
func AdvancePoint(p SourcePoint, text string) (line, column int) {
	line, column = p.Line, p.Column
	for i := 0; i < len(text); {
		if text[i] == '\n' {
			line++
			column = 1
			i++
			continue
		}
		if text[i] < utf8.RuneSelf {
			i++
		} else {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
		column++
	}
	return line, column
}
