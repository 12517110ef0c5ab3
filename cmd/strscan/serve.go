package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/strscan/pkg/grammar"
	"github.com/praetorian-inc/strscan/pkg/serve"
	"github.com/praetorian-inc/strscan/pkg/types"
	"github.com/spf13/cobra"
)

var serveGrammarFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a streaming NDJSON server",
	Long: `Run strscan as a long-lived server that accepts tokenize and script requests
on stdin and writes responses to stdout, one JSON object per line.

Grammars are compiled once at startup and requests are processed until
stdin closes, a "close" request arrives, or SIGTERM is received.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveGrammarFile, "grammar-file", "", "Serve grammars from this YAML file instead of the builtins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	var grammars []*types.Grammar
	if serveGrammarFile != "" {
		grammars, err = grammar.NewLoader().LoadGrammarFile(serveGrammarFile)
		if err != nil {
			return fmt.Errorf("loading grammars: %w", err)
		}
	}

	srv, err := serve.NewServer(serve.Config{
		Engine:   engine,
		Logger:   newLogger(cmd),
		Grammars: grammars,
	}, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return srv.Run(ctx)
}
