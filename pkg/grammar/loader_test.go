package grammar

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGrammar_Valid(t *testing.T) {
	loader := NewLoader()

	validYAML := `grammars:
  - name: csv
    description: comma separated values
    rules:
      - name: field
        pattern: |
          [^,\n]+
      - name: comma
        pattern: ','
      - name: eol
        pattern: '\n'
      - name: bool
        pattern: '(?:yes|no)\b'
        keywords: [yes, no]
      - name: pad
        pattern: ' +'
        skip: true
    examples:
      - "a,b\n"
`

	g, err := loader.LoadGrammar([]byte(validYAML))
	if err != nil {
		t.Fatalf("LoadGrammar failed: %v", err)
	}

	if g.Name != "csv" {
		t.Errorf("expected name csv, got %s", g.Name)
	}
	if g.Description != "comma separated values" {
		t.Errorf("expected description, got %q", g.Description)
	}
	if len(g.Rules) != 5 {
		t.Fatalf("expected 5 rules, got %d", len(g.Rules))
	}
	if g.Rules[0].Pattern != `[^,\n]+` {
		t.Errorf("block scalar pattern should lose its trailing newline, got %q", g.Rules[0].Pattern)
	}
	if len(g.Rules[3].Keywords) != 2 {
		t.Errorf("expected 2 keywords, got %d", len(g.Rules[3].Keywords))
	}
	if !g.Rules[4].Skip {
		t.Error("expected pad rule to be a skip rule")
	}
	if len(g.Examples) != 1 {
		t.Errorf("expected 1 example, got %d", len(g.Examples))
	}
}

func TestLoadGrammar_InvalidYAML(t *testing.T) {
	loader := NewLoader()

	_, err := loader.LoadGrammar([]byte(`this is not valid yaml: [[[`))
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadGrammar_NoGrammars(t *testing.T) {
	loader := NewLoader()

	_, err := loader.LoadGrammar([]byte(`grammars: []`))
	if err == nil {
		t.Error("expected error for empty grammars array")
	}
}

func TestLoadGrammar_Multiple(t *testing.T) {
	loader := NewLoader()

	data := []byte(`grammars:
  - name: a
    rules: [{name: x, pattern: x}]
  - name: b
    rules: [{name: y, pattern: y}]
`)

	_, err := loader.LoadGrammar(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected single grammar")

	all, err := loader.LoadGrammars(data)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[1].Name)
}

func TestLoadGrammarFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yml")
	require.NoError(t, os.WriteFile(path, []byte(`grammars:
  - name: words
    rules:
      - {name: word, pattern: '\w+'}
      - {name: space, pattern: '\s+', skip: true}
`), 0o644))

	loader := NewLoader()
	grammars, err := loader.LoadGrammarFile(path)
	require.NoError(t, err)
	require.Len(t, grammars, 1)
	assert.Equal(t, "words", grammars[0].Name)

	_, err = loader.LoadGrammarFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestLoadBuiltinGrammars(t *testing.T) {
	loader := NewLoader()

	grammars, err := loader.LoadBuiltinGrammars()
	require.NoError(t, err)

	names := make([]string, 0, len(grammars))
	for _, g := range grammars {
		names = append(names, g.Name)
		assert.NoError(t, ValidateGrammar(g, nil), g.Name)
		assert.NotEmpty(t, g.Examples, "builtin grammar %s should carry examples", g.Name)
	}
	assert.Equal(t, []string{"arith", "ini", "json"}, names)
}

func TestLoadBuiltinGrammars_CustomFS(t *testing.T) {
	fsys := fstest.MapFS{
		"grammars/b.yml": &fstest.MapFile{Data: []byte(`grammars:
  - name: zeta
    rules: [{name: z, pattern: z}]
`)},
		"grammars/a.yml": &fstest.MapFile{Data: []byte(`grammars:
  - name: alpha
    rules: [{name: a, pattern: a}]
  - name: beta
    rules: [{name: b, pattern: b}]
`)},
		"grammars/README.md": &fstest.MapFile{Data: []byte("ignored")},
	}

	loader := NewLoaderWithFS(fsys)
	grammars, err := loader.LoadBuiltinGrammars()
	require.NoError(t, err)
	require.Len(t, grammars, 3)
	assert.Equal(t, "alpha", grammars[0].Name)
	assert.Equal(t, "beta", grammars[1].Name)
	assert.Equal(t, "zeta", grammars[2].Name)
}

func TestLoadBuiltinGrammars_BadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"grammars/bad.yml": &fstest.MapFile{Data: []byte(`grammars: [[[`)},
	}

	_, err := NewLoaderWithFS(fsys).LoadBuiltinGrammars()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yml")
}

func TestBuiltin(t *testing.T) {
	loader := NewLoader()

	g, err := loader.Builtin("json")
	require.NoError(t, err)
	assert.Equal(t, "json", g.Name)

	_, err = loader.Builtin("cobol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arith, ini, json")
}
