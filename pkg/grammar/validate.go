package grammar

import (
	"fmt"

	"github.com/praetorian-inc/strscan/pkg/matcher"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// ValidateRule checks required fields of a rule.
func ValidateRule(r *types.Rule) error {
	if r == nil {
		return fmt.Errorf("rule is nil")
	}
	if r.Name == "" {
		return fmt.Errorf("rule name is required")
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule %s: pattern is required", r.Name)
	}
	return nil
}

// ValidateGrammar checks grammar consistency and required fields. When engine
// is non-nil every rule pattern must also compile with it.
func ValidateGrammar(g *types.Grammar, engine matcher.Engine) error {
	if g == nil {
		return fmt.Errorf("grammar is nil")
	}

	// Check required fields
	if g.Name == "" {
		return fmt.Errorf("grammar name is required")
	}
	if len(g.Rules) == 0 {
		return fmt.Errorf("grammar %s must have at least one rule", g.Name)
	}

	// Check for duplicate rule names
	seen := make(map[string]bool)
	for _, r := range g.Rules {
		if err := ValidateRule(r); err != nil {
			return fmt.Errorf("grammar %s: %w", g.Name, err)
		}
		if seen[r.Name] {
			return fmt.Errorf("grammar %s contains duplicate rule name: %s", g.Name, r.Name)
		}
		seen[r.Name] = true

		if engine != nil {
			if _, err := engine.Compile(r.Pattern); err != nil {
				return fmt.Errorf("grammar %s: rule %s: %w", g.Name, r.Name, err)
			}
		}
	}

	return nil
}
