package prefilter

import (
	"sync"
	"testing"

	"github.com/praetorian-inc/strscan/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(rules []*types.Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return out
}

func TestPrefilter_RulesWithMatchingKeywords(t *testing.T) {
	rules := []*types.Rule{
		{Name: "literal", Pattern: `(?:true|false|null)\b`, Keywords: []string{"true", "false", "null"}},
		{Name: "keyword", Pattern: `(?:let|in)\b`, Keywords: []string{"let", "in"}},
	}

	pf := New(rules)
	filtered := pf.Filter(`{"ok": true}`)

	// Should return literal (contains "true"), not keyword
	require.Len(t, filtered, 1)
	assert.Equal(t, "literal", filtered[0].Name)
}

func TestPrefilter_RulesWithoutKeywords(t *testing.T) {
	rules := []*types.Rule{
		{Name: "number", Pattern: `\d+`},
		{Name: "space", Pattern: `\s+`, Skip: true},
	}

	pf := New(rules)
	filtered := pf.Filter("no keywords anywhere")

	// Both rules should be returned (no keywords = always tried)
	assert.Equal(t, []string{"number", "space"}, names(filtered))
	assert.Empty(t, pf.Keywords())
}

func TestPrefilter_PreservesRuleOrder(t *testing.T) {
	rules := []*types.Rule{
		{Name: "space", Pattern: `\s+`},
		{Name: "keyword", Pattern: `if\b`, Keywords: []string{"if"}},
		{Name: "ident", Pattern: `\w+`},
		{Name: "bool", Pattern: `true\b`, Keywords: []string{"true"}},
	}

	pf := New(rules)

	assert.Equal(t, []string{"space", "keyword", "ident"}, names(pf.Filter("if x")))
	assert.Equal(t, []string{"space", "ident", "bool"}, names(pf.Filter("x true")))
	assert.Equal(t, []string{"space", "keyword", "ident", "bool"}, names(pf.Filter("if true")))
}

func TestPrefilter_SharedKeyword(t *testing.T) {
	rules := []*types.Rule{
		{Name: "a", Pattern: `in\b`, Keywords: []string{"in"}},
		{Name: "b", Pattern: `int\b`, Keywords: []string{"in", ""}},
	}

	pf := New(rules)
	assert.Equal(t, []string{"in"}, pf.Keywords(), "duplicates and empty keywords are dropped")
	assert.Equal(t, []string{"a", "b"}, names(pf.Filter("print")))
	assert.Empty(t, pf.Filter("xyz"))
}

func TestPrefilter_EmptyContent(t *testing.T) {
	rules := []*types.Rule{
		{Name: "kw", Pattern: `do`, Keywords: []string{"do"}},
		{Name: "any", Pattern: `.`},
	}

	pf := New(rules)
	assert.Equal(t, []string{"any"}, names(pf.Filter("")))
}

func TestPrefilter_Concurrent(t *testing.T) {
	rules := []*types.Rule{
		{Name: "kw", Pattern: `do`, Keywords: []string{"do"}},
		{Name: "any", Pattern: `.`},
	}
	pf := New(rules)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Len(t, pf.Filter("do it"), 2)
				assert.Len(t, pf.Filter("nope"), 1)
			}
		}()
	}
	wg.Wait()
}
