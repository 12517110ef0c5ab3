package lexer

import (
	"testing"

	"github.com/praetorian-inc/strscan/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePatterns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string returns empty slice",
			input:    "",
			expected: []string{},
		},
		{
			name:     "single pattern",
			input:    "string",
			expected: []string{"string"},
		},
		{
			name:     "multiple patterns comma-separated",
			input:    "^string$,number,punct",
			expected: []string{"^string$", "number", "punct"},
		},
		{
			name:     "patterns with spaces are trimmed",
			input:    " string , number ,, ",
			expected: []string{"string", "number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePatterns(tt.input))
		})
	}
}

func TestKindFilter(t *testing.T) {
	tokens := []types.Token{
		{Kind: "string", Text: `"a"`},
		{Kind: "number", Text: "1"},
		{Kind: "punct", Text: ","},
		{Kind: "literal", Text: "null"},
	}

	tests := []struct {
		name     string
		config   FilterConfig
		expected []string
	}{
		{
			name:     "empty config keeps all",
			config:   FilterConfig{},
			expected: []string{"string", "number", "punct", "literal"},
		},
		{
			name:     "include",
			config:   FilterConfig{Include: []string{"^(string|number)$"}},
			expected: []string{"string", "number"},
		},
		{
			name:     "exclude",
			config:   FilterConfig{Exclude: []string{"punct"}},
			expected: []string{"string", "number", "literal"},
		},
		{
			name:     "include then exclude",
			config:   FilterConfig{Include: []string{"r"}, Exclude: []string{"^num"}},
			expected: []string{"string", "literal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewKindFilter(tt.config, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kinds(f.Apply(tokens)))
		})
	}
}

func TestKindFilter_InvalidPattern(t *testing.T) {
	_, err := NewKindFilter(FilterConfig{Exclude: []string{"[unclosed"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid kind filter")
}
