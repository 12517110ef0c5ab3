//go:build cgo && hyperscan

package matcher

import (
	"testing"

	"github.com/praetorian-inc/strscan/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHyperscan_Available(t *testing.T) {
	assert.True(t, HyperscanAvailable())
	assert.Contains(t, Engines(), EngineHyperscan)
}

func TestHyperscan_CompileUsesDatabase(t *testing.T) {
	e, err := NewHyperscan(DefaultConfig())
	require.NoError(t, err)

	p, err := e.Compile(`test\d+`)
	require.NoError(t, err)

	hp, ok := p.(*hyperscanPattern)
	require.True(t, ok, "supported pattern should get a Hyperscan database")
	defer hp.Close()

	assert.NotNil(t, hp.db)
	assert.NotNil(t, hp.scratch)

	m, err := hp.FindLeftmost("a test42 b")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, types.Span{Start: 2, End: 8}, m.Span)

	m, err = hp.FindLeftmost("nothing here")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestHyperscan_PrefixRejectsLaterMatch(t *testing.T) {
	e, err := NewHyperscan(DefaultConfig())
	require.NoError(t, err)

	p, err := e.Compile(`\d+`)
	require.NoError(t, err)

	m, err := FindPrefix(p, "abc 123")
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = FindPrefix(p, "123 abc")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, types.Span{Start: 0, End: 3}, m.Span)
}

func TestHyperscan_ClosedPatternFallsBackToRE2(t *testing.T) {
	e, err := NewHyperscan(DefaultConfig())
	require.NoError(t, err)

	p, err := e.Compile(`b+`)
	require.NoError(t, err)
	require.NoError(t, p.(*hyperscanPattern).Close())

	m, err := p.FindLeftmost("abb")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, types.Span{Start: 1, End: 3}, m.Span)
}

func TestHyperscan_InvalidUTF8BypassesDatabase(t *testing.T) {
	e, err := NewHyperscan(DefaultConfig())
	require.NoError(t, err)

	p, err := e.Compile(`b`)
	require.NoError(t, err)

	m, err := p.FindLeftmost("\xffb")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, types.Span{Start: 1, End: 2}, m.Span)
}
