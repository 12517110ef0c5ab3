package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/strscan/pkg/grammar"
	"github.com/praetorian-inc/strscan/pkg/lexer"
	"github.com/praetorian-inc/strscan/pkg/prefilter"
	"github.com/praetorian-inc/strscan/pkg/types"
	"github.com/spf13/cobra"
)

var (
	grammarsFile   string
	grammarsFormat string
)

var grammarsCmd = &cobra.Command{
	Use:   "grammars",
	Short: "Manage lexer grammars",
	Long:  "Commands for listing and validating lexer grammars",
}

var grammarsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available grammars",
	Long:  "Display builtin grammars, or those in --grammar-file, with their rule counts",
	RunE:  runGrammarsList,
}

var grammarsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate grammars",
	Long:  "Check that every rule compiles with the selected engine and every example tokenizes",
	RunE:  runGrammarsValidate,
}

func init() {
	grammarsCmd.AddCommand(grammarsListCmd)
	grammarsCmd.AddCommand(grammarsValidateCmd)
	grammarsCmd.PersistentFlags().StringVar(&grammarsFile, "grammar-file", "", "Path to a YAML grammars file")
	grammarsListCmd.Flags().StringVar(&grammarsFormat, "format", "table", "Output format: table, json")
}

func loadGrammars() ([]*types.Grammar, error) {
	loader := grammar.NewLoader()

	// Load grammars (builtin or custom)
	if grammarsFile != "" {
		grammars, err := loader.LoadGrammarFile(grammarsFile)
		if err != nil {
			return nil, fmt.Errorf("loading grammars from %s: %w", grammarsFile, err)
		}
		return grammars, nil
	}

	grammars, err := loader.LoadBuiltinGrammars()
	if err != nil {
		return nil, fmt.Errorf("loading builtin grammars: %w", err)
	}
	return grammars, nil
}

func runGrammarsList(cmd *cobra.Command, args []string) error {
	grammars, err := loadGrammars()
	if err != nil {
		return err
	}

	// Output based on format
	switch grammarsFormat {
	case "json":
		return outputGrammarsJSON(cmd, grammars)
	case "table":
		return outputGrammarsTable(cmd, grammars)
	default:
		return fmt.Errorf("unknown output format: %s", grammarsFormat)
	}
}

func runGrammarsValidate(cmd *cobra.Command, args []string) error {
	grammars, err := loadGrammars()
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, g := range grammars {
		if err := lexer.Validate(g, lexer.WithEngine(engine), lexer.WithLogger(newLogger(cmd))); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", g.Name, err)
			continue
		}
		if len(g.Examples) == 0 {
			warnf(cmd, "grammar %s has no examples", g.Name)
		}
		fmt.Fprintf(out, "ok   %s (%d rules, %d examples)\n", g.Name, len(g.Rules), len(g.Examples))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d grammars failed validation", failed, len(grammars))
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func outputGrammarsJSON(cmd *cobra.Command, grammars []*types.Grammar) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(grammars)
}

func outputGrammarsTable(cmd *cobra.Command, grammars []*types.Grammar) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Name\tRules\tKeywords\tDescription\n")
	fmt.Fprintf(w, "----\t-----\t--------\t-----------\n")

	for _, g := range grammars {
		keywords := len(prefilter.New(g.Rules).Keywords())
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", g.Name, len(g.Rules), keywords, g.Description)
	}

	return nil
}
