package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Shift(t *testing.T) {
	m := &Match{
		Span:   Span{Start: 0, End: 5},
		Groups: []Span{{Start: 1, End: 3}, NoSpan},
		Names:  []string{"word", ""},
	}

	shifted := m.Shift(4)

	assert.Equal(t, Span{Start: 4, End: 9}, shifted.Span)
	require.Len(t, shifted.Groups, 2)
	assert.Equal(t, Span{Start: 5, End: 7}, shifted.Groups[0])
	assert.Equal(t, NoSpan, shifted.Groups[1])

	// Original is untouched
	assert.Equal(t, Span{Start: 1, End: 3}, m.Groups[0])
}

func TestMatch_ShiftNoGroups(t *testing.T) {
	m := &Match{Span: Span{Start: 2, End: 2}}
	shifted := m.Shift(3)
	assert.Equal(t, Span{Start: 5, End: 5}, shifted.Span)
	assert.Nil(t, shifted.Groups)
}

func TestMatch_GroupIndex(t *testing.T) {
	m := &Match{
		Groups: []Span{{Start: 0, End: 1}, {Start: 1, End: 2}},
		Names:  []string{"", "key"},
	}
	assert.Equal(t, 2, m.GroupIndex("key"))
	assert.Equal(t, -1, m.GroupIndex("missing"))
	assert.Equal(t, -1, m.GroupIndex(""))
}
