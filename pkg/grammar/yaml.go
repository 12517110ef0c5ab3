package grammar

// yamlRule is the intermediate struct for parsing a grammar rule.
type yamlRule struct {
	Name     string   `yaml:"name"`
	Pattern  string   `yaml:"pattern"`
	Skip     bool     `yaml:"skip,omitempty"`
	Keywords []string `yaml:"keywords,omitempty"`
}

// yamlGrammar is the intermediate struct for parsing a grammar.
type yamlGrammar struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Rules       []yamlRule `yaml:"rules"`
	Examples    []string   `yaml:"examples,omitempty"`
}

// yamlGrammarsFile represents the top-level structure of a grammars YAML file.
type yamlGrammarsFile struct {
	Grammars []yamlGrammar `yaml:"grammars"`
}
