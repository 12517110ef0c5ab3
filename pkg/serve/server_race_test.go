package serve

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServer_TokenizeBatch_EOFRace tests that tokenize_batch responses are
// sent even when EOF arrives before the main loop processes the pending request.
func TestServer_TokenizeBatch_EOFRace(t *testing.T) {
	// Run the test multiple times to trigger the race condition
	for i := 0; i < 10; i++ {
		request := `{"type":"tokenize_batch","payload":{"grammar":"json","items":[{"source":"s1","content":"[1]"},{"source":"s2","content":"{\"a\": null}"}]}}` + "\n"
		in := strings.NewReader(request)
		out := &strings.Builder{}

		srv, err := NewServer(Config{}, in, out)
		require.NoError(t, err)
		err = srv.Run(context.Background())
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 2, "iteration %d: expected 2 lines (ready + tokenize_batch response), got %d", i, len(lines))

		var resp Response
		err = json.Unmarshal([]byte(lines[1]), &resp)
		require.NoError(t, err, "iteration %d: failed to unmarshal response", i)

		assert.True(t, resp.Success, "iteration %d: expected success", i)
		assert.Equal(t, "tokenize_batch", resp.Type, "iteration %d: expected tokenize_batch type", i)
	}
}
