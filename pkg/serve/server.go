// Package serve runs a long-lived NDJSON server that tokenizes content and
// replays scanner scripts for editor and tool integrations.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/praetorian-inc/strscan/pkg/grammar"
	"github.com/praetorian-inc/strscan/pkg/lexer"
	"github.com/praetorian-inc/strscan/pkg/matcher"
	"github.com/praetorian-inc/strscan/pkg/scanner"
	"github.com/praetorian-inc/strscan/pkg/script"
	"github.com/praetorian-inc/strscan/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Version is the server protocol version
const Version = "1.0.0"

// Config configures a Server.
type Config struct {
	Engine   matcher.Engine      // defaults to matcher.Default()
	Logger   scanner.DebugLogger // defaults to scanner.NoopLogger
	Grammars []*types.Grammar    // defaults to the builtin grammars
	Workers  int                 // concurrent batch items; defaults to GOMAXPROCS
}

// Server manages the streaming tokenizer
type Server struct {
	engine  matcher.Engine
	logger  scanner.DebugLogger
	lexers  map[string]*lexer.Lexer
	workers int
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server. All grammars are compiled up
// front so a bad grammar fails here rather than on the first request.
func NewServer(cfg Config, in io.Reader, out io.Writer) (*Server, error) {
	if cfg.Engine == nil {
		cfg.Engine = matcher.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = scanner.NoopLogger{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Grammars == nil {
		grammars, err := grammar.NewLoader().LoadBuiltinGrammars()
		if err != nil {
			return nil, fmt.Errorf("loading builtin grammars: %w", err)
		}
		cfg.Grammars = grammars
	}

	lexers := make(map[string]*lexer.Lexer, len(cfg.Grammars))
	for _, g := range cfg.Grammars {
		lx, err := lexer.New(g, lexer.WithEngine(cfg.Engine), lexer.WithLogger(cfg.Logger))
		if err != nil {
			return nil, fmt.Errorf("compiling grammar %s: %w", g.Name, err)
		}
		lexers[g.Name] = lx
	}

	return &Server{
		engine:  cfg.Engine,
		logger:  cfg.Logger,
		lexers:  lexers,
		workers: cfg.Workers,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}, nil
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	s.logger.Log("serve: request %s", req.Type)
	switch req.Type {
	case "tokenize":
		s.handleTokenize(req.Payload)
	case "tokenize_batch":
		s.handleTokenizeBatch(req.Payload)
	case "script":
		s.handleScript(req.Payload)
	case "grammars":
		s.send("grammars", s.grammarNames())
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) grammarNames() []string {
	names := make([]string, 0, len(s.lexers))
	for name := range s.lexers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Server) lookupLexer(name string) (*lexer.Lexer, error) {
	lx, ok := s.lexers[name]
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q", name)
	}
	return lx, nil
}

func (s *Server) sendReady() {
	s.send("ready", ReadyData{
		Version:  Version,
		Engine:   s.engine.Name(),
		Grammars: s.grammarNames(),
	})
}

func (s *Server) handleTokenize(payload json.RawMessage) {
	var p TokenizePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("tokenize", err.Error())
		return
	}

	lx, err := s.lookupLexer(p.Grammar)
	if err != nil {
		s.sendError("tokenize", err.Error())
		return
	}

	tokens, err := lx.Tokenize(p.Content)
	if err != nil {
		s.sendError("tokenize", err.Error())
		return
	}

	s.send("tokenize", TokenizeResult{Source: p.Source, Tokens: nonNil(tokens)})
}

func (s *Server) handleTokenizeBatch(payload json.RawMessage) {
	var p TokenizeBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("tokenize_batch", err.Error())
		return
	}

	lx, err := s.lookupLexer(p.Grammar)
	if err != nil {
		s.sendError("tokenize_batch", err.Error())
		return
	}

	// One bad item does not fail the batch, so workers never return errors
	results := make([]TokenizeResult, len(p.Items))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, item := range p.Items {
		i, item := i, item
		g.Go(func() error {
			results[i].Source = item.Source
			tokens, err := lx.Tokenize(item.Content)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Tokens = nonNil(tokens)
			return nil
		})
	}
	_ = g.Wait()

	s.send("tokenize_batch", results)
}

func (s *Server) handleScript(payload json.RawMessage) {
	var p ScriptPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("script", err.Error())
		return
	}

	opts := []scanner.Option{scanner.WithEngine(s.engine), scanner.WithLogger(s.logger)}
	if p.LegacyEOS {
		opts = append(opts, scanner.WithLegacyEOS())
	}
	sc := scanner.New(p.Content, opts...)

	result := ScriptResult{Results: make([]OpResult, 0, len(p.Ops))}
	for _, op := range p.Ops {
		out, err := script.Exec(sc, op)
		r := OpResult{Op: op.String(), Result: out}
		if err != nil {
			r.Error = err.Error()
		}
		result.Results = append(result.Results, r)
		if err != nil {
			break
		}
	}
	result.Pos = sc.Pos()

	s.send("script", result)
}

func (s *Server) send(respType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(respType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    respType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}

func nonNil(tokens []types.Token) []types.Token {
	if tokens == nil {
		return []types.Token{}
	}
	return tokens
}
