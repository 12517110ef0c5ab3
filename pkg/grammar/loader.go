// Package grammar loads lexer grammars from YAML.
package grammar

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/praetorian-inc/strscan/pkg/types"
	"gopkg.in/yaml.v3"
)

// Loader handles loading grammars from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in grammars
}

// NewLoader creates a loader with built-in grammars from embedded filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinGrammarsFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem. Built-in
// grammars are read from its grammars/ directory.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadGrammars loads every grammar in YAML bytes.
func (l *Loader) LoadGrammars(data []byte) ([]*types.Grammar, error) {
	var yamlFile yamlGrammarsFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yamlFile.Grammars) == 0 {
		return nil, fmt.Errorf("no grammars found in YAML")
	}

	grammars := make([]*types.Grammar, 0, len(yamlFile.Grammars))
	for _, yg := range yamlFile.Grammars {
		grammars = append(grammars, convertYAMLGrammar(yg))
	}
	return grammars, nil
}

// LoadGrammar loads a single grammar from YAML bytes.
// Returns error if YAML is invalid or multiple grammars are present.
func (l *Loader) LoadGrammar(data []byte) (*types.Grammar, error) {
	grammars, err := l.LoadGrammars(data)
	if err != nil {
		return nil, err
	}
	if len(grammars) > 1 {
		return nil, fmt.Errorf("expected single grammar, found %d", len(grammars))
	}
	return grammars[0], nil
}

// LoadGrammarFile loads all grammars from a YAML file path.
func (l *Loader) LoadGrammarFile(path string) ([]*types.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	grammars, err := l.LoadGrammars(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return grammars, nil
}

// LoadBuiltinGrammars loads all built-in grammars, sorted by name.
func (l *Loader) LoadBuiltinGrammars() ([]*types.Grammar, error) {
	var grammars []*types.Grammar

	err := fs.WalkDir(l.fs, "grammars", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		// Parse all grammars from the file
		var yamlFile yamlGrammarsFile
		if err := yaml.Unmarshal(data, &yamlFile); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		for _, yg := range yamlFile.Grammars {
			grammars = append(grammars, convertYAMLGrammar(yg))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(grammars, func(i, j int) bool {
		return grammars[i].Name < grammars[j].Name
	})
	return grammars, nil
}

// Builtin returns the built-in grammar with the given name.
func (l *Loader) Builtin(name string) (*types.Grammar, error) {
	grammars, err := l.LoadBuiltinGrammars()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(grammars))
	for _, g := range grammars {
		if g.Name == name {
			return g, nil
		}
		names = append(names, g.Name)
	}
	return nil, fmt.Errorf("unknown grammar %q (available: %s)", name, strings.Join(names, ", "))
}

// convertYAMLGrammar converts yamlGrammar to types.Grammar.
func convertYAMLGrammar(yg yamlGrammar) *types.Grammar {
	g := &types.Grammar{
		Name:        yg.Name,
		Description: yg.Description,
		Examples:    yg.Examples,
		Rules:       make([]*types.Rule, 0, len(yg.Rules)),
	}
	for _, yr := range yg.Rules {
		g.Rules = append(g.Rules, &types.Rule{
			Name:     yr.Name,
			Pattern:  strings.TrimRight(yr.Pattern, "\n"),
			Skip:     yr.Skip,
			Keywords: yr.Keywords,
		})
	}
	return g
}
