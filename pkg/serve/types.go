package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/strscan/pkg/script"
	"github.com/praetorian-inc/strscan/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "tokenize" | "tokenize_batch" | "script" | "grammars" | "close"
	Payload json.RawMessage `json:"payload"`
}

// ContentItem is one input of a batch
type ContentItem struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// TokenizePayload is the payload for "tokenize" requests
type TokenizePayload struct {
	Grammar string `json:"grammar"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// TokenizeBatchPayload is the payload for "tokenize_batch" requests
type TokenizeBatchPayload struct {
	Grammar string        `json:"grammar"`
	Items   []ContentItem `json:"items"`
}

// TokenizeResult holds the tokens of one input. Error is set instead of
// Tokens when a batch item fails.
type TokenizeResult struct {
	Source string        `json:"source"`
	Tokens []types.Token `json:"tokens"`
	Error  string        `json:"error,omitempty"`
}

// ScriptPayload is the payload for "script" requests: ops run in order
// against a fresh scanner over Content.
type ScriptPayload struct {
	Content   string      `json:"content"`
	Ops       []script.Op `json:"ops"`
	LegacyEOS bool        `json:"legacy_eos,omitempty"`
}

// OpResult is the outcome of one script operation
type OpResult struct {
	Op     string `json:"op"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ScriptResult is the data field for "script" responses. Execution stops at
// the first failing operation.
type ScriptResult struct {
	Results []OpResult `json:"results"`
	Pos     int        `json:"pos"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | request type
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version  string   `json:"version"`
	Engine   string   `json:"engine"`
	Grammars []string `json:"grammars"`
}
