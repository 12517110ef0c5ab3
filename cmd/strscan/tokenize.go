package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/praetorian-inc/strscan/pkg/grammar"
	"github.com/praetorian-inc/strscan/pkg/lexer"
	"github.com/praetorian-inc/strscan/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	tokenizeGrammar     string
	tokenizeGrammarFile string
	tokenizeFormat      string
	tokenizeColor       string
	tokenizeInclude     string
	tokenizeExclude     string
)

// styles holds color formatters for human token output
type styles struct {
	location *color.Color
	kind     *color.Color
	text     *color.Color
	capture  *color.Color
}

// newStyles creates color formatters for token output.
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		location: color.New(color.FgHiBlue),
		kind:     color.New(color.Bold, color.FgHiGreen),
		text:     color.New(color.FgYellow),
		capture:  color.New(color.FgHiWhite),
	}

	for _, c := range []*color.Color{s.location, s.kind, s.text, s.capture} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// colorEnabled resolves the --color flag for output written to out.
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		// Only a TTY gets color, and NO_COLOR always wins
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("unknown color mode: %s (want auto, always, never)", mode)
	}
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file|-]",
	Short: "Tokenize a file with a grammar",
	Long: `Split a file into tokens using a builtin grammar or one loaded from YAML.
Reads standard input when the file is omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().StringVarP(&tokenizeGrammar, "grammar", "g", "", "Grammar name (builtin, or within --grammar-file)")
	tokenizeCmd.Flags().StringVar(&tokenizeGrammarFile, "grammar-file", "", "Path to a YAML grammars file")
	tokenizeCmd.Flags().StringVar(&tokenizeFormat, "format", "human", "Output format: human, json")
	tokenizeCmd.Flags().StringVar(&tokenizeColor, "color", "auto", "Color output: auto, always, never")
	tokenizeCmd.Flags().StringVar(&tokenizeInclude, "include", "", "Only print token kinds matching these comma-separated patterns")
	tokenizeCmd.Flags().StringVar(&tokenizeExclude, "exclude", "", "Omit token kinds matching these comma-separated patterns")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	g, err := selectGrammar(tokenizeGrammar, tokenizeGrammarFile)
	if err != nil {
		return err
	}

	input, name, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	lx, err := lexer.New(g, lexer.WithEngine(engine), lexer.WithLogger(newLogger(cmd)))
	if err != nil {
		return fmt.Errorf("compiling grammar %s: %w", g.Name, err)
	}

	filter, err := lexer.NewKindFilter(lexer.FilterConfig{
		Include: lexer.ParsePatterns(tokenizeInclude),
		Exclude: lexer.ParsePatterns(tokenizeExclude),
	}, engine)
	if err != nil {
		return err
	}

	tokens, err := lx.Tokenize(input)
	if err != nil {
		var serr *lexer.SyntaxError
		if errors.As(err, &serr) {
			return fmt.Errorf("%s:%s: %w", name, serr.Location.Source.Start, err)
		}
		return fmt.Errorf("tokenizing %s: %w", name, err)
	}
	total := len(tokens)
	tokens = filter.Apply(tokens)

	switch tokenizeFormat {
	case "json":
		err = outputTokensJSON(cmd, tokens)
	case "human":
		err = outputTokensHuman(cmd, tokens)
	default:
		return fmt.Errorf("unknown output format: %s", tokenizeFormat)
	}
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Tokenized %s with %s: %d tokens (%d shown)\n", name, g.Name, total, len(tokens))
	}
	return nil
}

// selectGrammar picks a grammar by name from the builtin set or from file.
// A file with a single grammar needs no name.
func selectGrammar(name, file string) (*types.Grammar, error) {
	loader := grammar.NewLoader()

	if file == "" {
		if name == "" {
			return nil, fmt.Errorf("either --grammar or --grammar-file is required")
		}
		return loader.Builtin(name)
	}

	grammars, err := loader.LoadGrammarFile(file)
	if err != nil {
		return nil, fmt.Errorf("loading grammars: %w", err)
	}
	if name == "" {
		if len(grammars) > 1 {
			return nil, fmt.Errorf("%s defines %d grammars; choose one with --grammar", file, len(grammars))
		}
		return grammars[0], nil
	}
	for _, g := range grammars {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("grammar %q not found in %s", name, file)
}

// readInput returns the content of the file named by args[0], or standard
// input, together with a display name.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), args[0], nil
}

// =============================================================================
// HELPERS
// =============================================================================

func outputTokensJSON(cmd *cobra.Command, tokens []types.Token) error {
	if tokens == nil {
		tokens = []types.Token{}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokens)
}

func outputTokensHuman(cmd *cobra.Command, tokens []types.Token) error {
	out := cmd.OutOrStdout()

	enabled, err := colorEnabled(tokenizeColor, out)
	if err != nil {
		return err
	}
	s := newStyles(enabled)

	// Pad before coloring so escape codes do not break alignment
	locWidth, kindWidth := 0, 0
	locs := make([]string, len(tokens))
	for i, tok := range tokens {
		locs[i] = fmt.Sprintf("%s-%s", tok.Location.Source.Start, tok.Location.Source.End)
		locWidth = max(locWidth, len(locs[i]))
		kindWidth = max(kindWidth, len(tok.Kind))
	}

	for i, tok := range tokens {
		line := fmt.Sprintf("%s  %s  %s",
			s.location.Sprintf("%-*s", locWidth, locs[i]),
			s.kind.Sprintf("%-*s", kindWidth, tok.Kind),
			s.text.Sprintf("%q", tok.Text))
		if len(tok.Captures) > 0 {
			line += "  " + s.capture.Sprint(formatCaptures(tok.Captures))
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func formatCaptures(captures map[string]string) string {
	names := make([]string, 0, len(captures))
	for name := range captures {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%q", name, captures[name])
	}
	return strings.Join(parts, " ")
}
