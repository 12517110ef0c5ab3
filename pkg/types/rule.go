package types

// Rule is one lexical rule of a Grammar: a named pattern tried at the scan position.
type Rule struct {
	Name     string   `json:"name"`              // token kind emitted on match
	Pattern  string   `json:"pattern"`           // regex pattern, anchored at the scan position
	Skip     bool     `json:"skip,omitempty"`    // consume without emitting a token
	Keywords []string `json:"keywords,omitempty"` // literals for Aho-Corasick prefiltering
}

// Grammar is an ordered rule list. Earlier rules win when several match.
type Grammar struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Rules       []*Rule  `json:"rules"`
	Examples    []string `json:"examples,omitempty"` // inputs that must tokenize cleanly
}

// Token is a lexeme produced by applying a Grammar to input.
type Token struct {
	Kind     string   `json:"kind"`
	Text     string   `json:"text"`
	Location Location `json:"location"`

	// Captures holds the named groups of the rule pattern that participated.
	Captures map[string]string `json:"captures,omitempty"`
}
