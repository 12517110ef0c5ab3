package main

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/strscan/pkg/scanner"
	"github.com/praetorian-inc/strscan/pkg/script"
	"github.com/spf13/cobra"
)

var (
	runInput     string
	runLegacyEOS bool
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Replay a scanner script against an input",
	Long: `Execute one scanner operation per script line against the input and print
each result. Blank lines and lines starting with # are ignored.

Operations:
  scan PATTERN         check PATTERN        skip PATTERN
  scan_until PATTERN   check_until PATTERN  skip_until PATTERN
  getch                pos [N]              terminate
  reset                matched              pre
  post                 group N|NAME         bol
  eos                  rest`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "Input file to scan (\"-\" for stdin)")
	runCmd.Flags().BoolVar(&runLegacyEOS, "legacy-eos", false, "Treat the start of the last character as end of string")
	_ = runCmd.MarkFlagRequired("input")
}

func runRun(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	input, _, err := readInput(cmd, []string{runInput})
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	opts := []scanner.Option{scanner.WithEngine(engine), scanner.WithLogger(newLogger(cmd))}
	if runLegacyEOS {
		opts = append(opts, scanner.WithLegacyEOS())
	}

	return script.Run(f, scanner.New(input, opts...), cmd.OutOrStdout())
}
