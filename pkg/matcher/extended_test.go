package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripExtendedMode_AWSPattern(t *testing.T) {
	input := `(?x)
\b
((?:A3T[A-Z0-9]|AKIA|AGPA|AIDA|AROA|AIPA|ANPA|ANVA|ASIA)[A-Z0-9]{16})     (?# API key )
\b
(?: (?s) .{0,40} )                                                        (?# Arbitrary intermediate stuff )
\b
([A-Za-z0-9/+=]{40})                                                      (?# secret )
(?: [^A-Za-z0-9/+=] | $ )`

	result := stripExtendedMode(input)
	expected := `\b((?:A3T[A-Z0-9]|AKIA|AGPA|AIDA|AROA|AIPA|ANPA|ANVA|ASIA)[A-Z0-9]{16})\b(?:(?s).{0,40})\b([A-Za-z0-9/+=]{40})(?:[^A-Za-z0-9/+=]|$)`

	assert.Equal(t, expected, result)
}

func TestStripExtendedMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "pattern without (?x)",
			input:    `\b(test) \b`,
			expected: `\b(test) \b`,
		},
		{
			name: "(?# ) comments",
			input: `(?x)
\b
([A-Z]+)    (?# match letters )
\d+         (?# match digits )
\b`,
			expected: `\b([A-Z]+)\d+\b`,
		},
		{
			name:     "hash line comments",
			input:    "(?x)\n\\w+   # identifier\n=     # equals\n\\d+",
			expected: `\w+=\d+`,
		},
		{
			name:     "escaped spaces preserved",
			input:    "(?x) test\\ pattern  \\s+",
			expected: `test\ pattern\s+`,
		},
		{
			name:     "escaped hash preserved",
			input:    `(?x) \# not a comment`,
			expected: `\#notacomment`,
		},
		{
			name:     "whitespace and hash inside class preserved",
			input:    `(?x) [ #]+ x`,
			expected: `[ #]+x`,
		},
		{
			name:     "leading bracket in class",
			input:    `(?x) []# ]`,
			expected: `[]# ]`,
		},
		{
			name:     "negated class with leading bracket",
			input:    `(?x) [^] ] y`,
			expected: `[^] ]y`,
		},
		{
			name:     "inline flags kept",
			input:    `(?x) (?s) .{0,40}`,
			expected: `(?s).{0,40}`,
		},
		{
			name:     "leading whitespace before flag",
			input:    "  \n(?x) a b",
			expected: `ab`,
		},
		{
			name:     "unterminated comment left for the engine",
			input:    `(?x) a (?# oops`,
			expected: `a(?# oops`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripExtendedMode(tt.input))
		})
	}
}
