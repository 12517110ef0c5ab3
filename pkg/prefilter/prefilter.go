package prefilter

import (
	"github.com/cloudflare/ahocorasick"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// Prefilter uses Aho-Corasick to drop grammar rules whose keywords never
// occur in the input. A rule with keywords can only match text containing
// one of them, so trying it at every position would be wasted work.
//
// Prefilter is safe for concurrent use.
type Prefilter struct {
	matcher      *ahocorasick.Matcher
	rules        []*types.Rule
	keywords     []string       // keyword at each index
	keywordRules map[string][]int // keyword -> indices into rules
	gated        []bool         // rules[i] has keywords
}

// New creates a prefilter from rules. The rule order is kept by Filter.
func New(rules []*types.Rule) *Prefilter {
	pf := &Prefilter{
		rules:        rules,
		keywordRules: make(map[string][]int),
		gated:        make([]bool, len(rules)),
	}

	// Collect all keywords and build mapping
	keywordSet := make(map[string]bool)
	for i, rule := range rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			pf.gated[i] = true
			if !keywordSet[keyword] {
				keywordSet[keyword] = true
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordRules[keyword] = append(pf.keywordRules[keyword], i)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Filter returns the rules that might match content: rules without keywords
// and rules with at least one keyword present, in their original order.
func (pf *Prefilter) Filter(content string) []*types.Rule {
	if pf.matcher == nil {
		return pf.rules
	}

	keep := make([]bool, len(pf.rules))
	for i, gated := range pf.gated {
		keep[i] = !gated
	}
	for _, hit := range pf.matcher.MatchThreadSafe([]byte(content)) {
		for _, i := range pf.keywordRules[pf.keywords[hit]] {
			keep[i] = true
		}
	}

	result := make([]*types.Rule, 0, len(pf.rules))
	for i, rule := range pf.rules {
		if keep[i] {
			result = append(result, rule)
		}
	}
	return result
}

// Keywords returns the distinct keywords the prefilter searches for.
func (pf *Prefilter) Keywords() []string {
	return pf.keywords
}
