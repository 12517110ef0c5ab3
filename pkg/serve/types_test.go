package serve

import (
	"encoding/json"
	"testing"

	"github.com/praetorian-inc/strscan/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_TokenizeUnmarshal(t *testing.T) {
	input := `{"type":"tokenize","payload":{"grammar":"ini","content":"a=1","source":"test"}}`

	var req Request
	err := json.Unmarshal([]byte(input), &req)
	require.NoError(t, err)

	assert.Equal(t, "tokenize", req.Type)

	var payload TokenizePayload
	err = json.Unmarshal(req.Payload, &payload)
	require.NoError(t, err)

	assert.Equal(t, "ini", payload.Grammar)
	assert.Equal(t, "a=1", payload.Content)
	assert.Equal(t, "test", payload.Source)
}

func TestRequest_ScriptUnmarshal(t *testing.T) {
	input := `{"content":"abc","ops":[{"op":"scan","arg":"a b"},{"op":"getch"}]}`

	var payload ScriptPayload
	require.NoError(t, json.Unmarshal([]byte(input), &payload))
	assert.Equal(t, []script.Op{{Name: "scan", Arg: "a b"}, {Name: "getch"}}, payload.Ops)
	assert.False(t, payload.LegacyEOS)
}

func TestResponse_Marshal(t *testing.T) {
	resp := Response{
		Success: true,
		Type:    "ready",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"type":"ready"`)
	assert.NotContains(t, string(data), `"error"`)
}
