package main

import (
	"fmt"
	"io"

	"github.com/praetorian-inc/strscan/pkg/matcher"
	"github.com/praetorian-inc/strscan/pkg/scanner"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	engineName string
)

var rootCmd = &cobra.Command{
	Use:   "strscan",
	Short: "strscan - pattern-driven string scanner and lexer",
	Long: `strscan scans text with a cursor that advances by regular-expression matches.
It can tokenize files with YAML grammars, replay scanner scripts against an
input, and list or validate grammars.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", matcher.EngineRegexp2, fmt.Sprintf("Pattern engine: %v", matcher.Engines()))

	// Add subcommands
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(grammarsCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// stderrLogger prints debug messages when --verbose is set.
type stderrLogger struct {
	w io.Writer
}

func (l stderrLogger) Log(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "[debug] "+format+"\n", args...)
}

func newLogger(cmd *cobra.Command) scanner.DebugLogger {
	if verbose && !quiet {
		return stderrLogger{w: cmd.ErrOrStderr()}
	}
	return scanner.NoopLogger{}
}

func warnf(cmd *cobra.Command, format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "[warn] "+format+"\n", args...)
}

// newEngine builds the engine selected by --engine.
func newEngine() (matcher.Engine, error) {
	cfg := matcher.DefaultConfig()
	cfg.Engine = engineName
	e, err := matcher.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return e, nil
}
