package server

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkmcp/codec"
	"github.com/thinkmcp/logger"
	"github.com/thinkmcp/mcp"
	"github.com/thinkmcp/think"
)

func newTestDispatcher() *Dispatcher {
	proto := mcp.NewProtocol()
	proto.SetToolHandler(ThinkTool, thinkHandler(logger.Discard()))
	return NewDispatcher(proto, logger.Discard())
}

func outputOf(t *testing.T, resp *codec.JSONRPCResponse) string {
	t.Helper()
	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	result, ok := resp.Result.(mcp.ExecuteResult)
	require.True(t, ok, "unexpected result type %T", resp.Result)
	return result.Output
}

func TestDispatch_ThinkSuccess(t *testing.T) {
	d := newTestDispatcher()
	line := `{"jsonrpc":"2.0","id":"1","method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":"How does quicksort work?"}}}`

	resp := d.Dispatch(context.Background(), line)

	assert.Equal(t, `"1"`, string(resp.ID))
	out := outputOf(t, resp)
	assert.True(t, strings.HasPrefix(out, "<thinking>"))
	open := strings.Index(out, "<thinking>")
	prompt := strings.Index(out, "How does quicksort work?")
	end := strings.Index(out, "</thinking>")
	assert.True(t, open < prompt && prompt < end)
}

func TestDispatch_TrimsPrompt(t *testing.T) {
	d := newTestDispatcher()
	resp := d.Dispatch(context.Background(), `{"id":2,"method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":"   padded   "}}}`)

	out := outputOf(t, resp)
	assert.Contains(t, out, "\n\npadded\n\n")
	assert.NotContains(t, out, "   padded")
}

func TestDispatch_EscapesPrompt(t *testing.T) {
	d := newTestDispatcher()
	resp := d.Dispatch(context.Background(), `{"id":3,"method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":"Is <div> an HTML tag?"}}}`)

	out := outputOf(t, resp)
	assert.Contains(t, out, "Is &lt;div&gt; an HTML tag?")
	assert.NotContains(t, out, "<div>")
}

func TestDispatch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		id      string
		code    int
		message string
		prefix  bool
	}{
		{
			name:    "no params",
			line:    `{"jsonrpc":"2.0","id":1,"method":"mcp/execute"}`,
			id:      `1`,
			code:    codec.InvalidParams,
			message: "Invalid params",
		},
		{
			name:    "null params",
			line:    `{"jsonrpc":"2.0","id":1,"method":"mcp/execute","params":null}`,
			id:      `1`,
			code:    codec.InvalidParams,
			message: "Invalid params",
		},
		{
			name:    "params not an object",
			line:    `{"jsonrpc":"2.0","id":1,"method":"mcp/execute","params":"think"}`,
			id:      `1`,
			code:    codec.MethodNotFound,
			message: `Tool "" not found`,
		},
		{
			name:    "params is an array",
			line:    `{"jsonrpc":"2.0","id":1,"method":"mcp/execute","params":[{"tool":"think"}]}`,
			id:      `1`,
			code:    codec.MethodNotFound,
			message: `Tool "" not found`,
		},
		{
			name:    "unknown tool",
			line:    `{"jsonrpc":"2.0","id":"u","method":"mcp/execute","params":{"tool":"unknown","arguments":{"prompt":"x"}}}`,
			id:      `"u"`,
			code:    codec.MethodNotFound,
			message: `Tool "unknown" not found`,
		},
		{
			name:    "numeric tool name",
			line:    `{"jsonrpc":"2.0","id":"u","method":"mcp/execute","params":{"tool":5}}`,
			id:      `"u"`,
			code:    codec.MethodNotFound,
			message: `Tool "5" not found`,
		},
		{
			name:    "missing tool",
			line:    `{"jsonrpc":"2.0","id":"u","method":"mcp/execute","params":{}}`,
			id:      `"u"`,
			code:    codec.MethodNotFound,
			message: `Tool "" not found`,
		},
		{
			name:    "empty arguments",
			line:    `{"jsonrpc":"2.0","id":"b","method":"mcp/execute","params":{"tool":"think","arguments":{}}}`,
			id:      `"b"`,
			code:    codec.InvalidParams,
			message: "Missing required parameter: prompt",
		},
		{
			name:    "absent arguments",
			line:    `{"jsonrpc":"2.0","id":"b","method":"mcp/execute","params":{"tool":"think"}}`,
			id:      `"b"`,
			code:    codec.InvalidParams,
			message: "Missing required parameter: prompt",
		},
		{
			name:    "empty string prompt",
			line:    `{"jsonrpc":"2.0","id":"b","method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":""}}}`,
			id:      `"b"`,
			code:    codec.InvalidParams,
			message: "Missing required parameter: prompt",
		},
		{
			name:    "zero prompt",
			line:    `{"jsonrpc":"2.0","id":"z","method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":0}}}`,
			id:      `"z"`,
			code:    codec.InvalidParams,
			message: "Missing required parameter: prompt",
		},
		{
			name:    "false prompt",
			line:    `{"jsonrpc":"2.0","id":"f","method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":false}}}`,
			id:      `"f"`,
			code:    codec.InvalidParams,
			message: "Missing required parameter: prompt",
		},
		{
			name:    "whitespace prompt",
			line:    `{"jsonrpc":"2.0","id":"w","method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":"  \t\n "}}}`,
			id:      `"w"`,
			code:    codec.InvalidParams,
			message: "Prompt cannot be empty",
		},
		{
			name:    "prompt with wrong type",
			line:    `{"jsonrpc":"2.0","id":9,"method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":42}}}`,
			id:      `9`,
			code:    codec.InvalidParams,
			message: "Invalid params: prompt: Invalid type",
			prefix:  true,
		},
		{
			name:    "absent id is null",
			line:    `{"jsonrpc":"2.0","method":"mcp/execute","params":{"tool":"nope"}}`,
			id:      ``,
			code:    codec.MethodNotFound,
			message: `Tool "nope" not found`,
		},
	}

	d := newTestDispatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := d.Dispatch(context.Background(), tt.line)
			require.NotNil(t, resp)
			require.NotNil(t, resp.Error)
			assert.Nil(t, resp.Result)
			assert.Equal(t, tt.id, string(resp.ID))
			assert.Equal(t, tt.code, resp.Error.Code)
			if tt.prefix {
				assert.True(t, strings.HasPrefix(resp.Error.Message, tt.message), resp.Error.Message)
			} else {
				assert.Equal(t, tt.message, resp.Error.Message)
			}
		})
	}
}

func TestDispatch_NoResponse(t *testing.T) {
	lines := []string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`not json at all`,
		`{"jsonrpc":"2.0","id":1,`,
		`[{"id":1}]`,
		`{"id":null,"method":7}`,
		`{"jsonrpc":"2.0","id":"2","method":42}`,
		`{"jsonrpc":"2.0","id":"p","method":{"bad":true}}`,
		`null`,
		`"mcp/execute"`,
	}

	d := newTestDispatcher()
	for _, line := range lines {
		assert.Nil(t, d.Dispatch(context.Background(), line), line)
	}
}

func TestDispatch_NumericJSONRPCVersion(t *testing.T) {
	d := newTestDispatcher()
	resp := d.Dispatch(context.Background(), `{"jsonrpc":2.0,"id":"1","method":"mcp/execute","params":{"tool":"think","arguments":{"prompt":"hi"}}}`)

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	assert.Equal(t, `"1"`, string(resp.ID))
	assert.Equal(t, codec.JsonRPCVersion, resp.JSONRPC)
	assert.Equal(t, think.Format("hi"), outputOf(t, resp))
}

func TestDispatch_ToolFailure(t *testing.T) {
	proto := mcp.NewProtocol()
	proto.SetToolHandler(mcp.ToolDescription{Name: "broken"}, func(ctx context.Context, args json.RawMessage) (string, error) {
		return "", errors.New("disk on fire")
	})
	d := NewDispatcher(proto, logger.Discard())

	resp := d.Dispatch(context.Background(), `{"id":1,"method":"mcp/execute","params":{"tool":"broken"}}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codec.InternalError, resp.Error.Code)
	assert.Equal(t, "Internal error", resp.Error.Message)
}

func TestHasPrompt(t *testing.T) {
	assert.True(t, hasPrompt(json.RawMessage(`{"prompt":"x"}`)))
	assert.True(t, hasPrompt(json.RawMessage(`{"prompt":" "}`)))
	assert.True(t, hasPrompt(json.RawMessage(`{"prompt":42}`)))
	assert.True(t, hasPrompt(json.RawMessage(`{"prompt":true}`)))
	assert.True(t, hasPrompt(json.RawMessage(`{"prompt":{}}`)))
	assert.False(t, hasPrompt(json.RawMessage(`{"prompt":0}`)))
	assert.False(t, hasPrompt(json.RawMessage(`{"prompt":-0.0}`)))
	assert.False(t, hasPrompt(json.RawMessage(`{"prompt":false}`)))
	assert.False(t, hasPrompt(nil))
	assert.False(t, hasPrompt(json.RawMessage(`null`)))
	assert.False(t, hasPrompt(json.RawMessage(`"prompt"`)))
	assert.False(t, hasPrompt(json.RawMessage(`{"prompt":null}`)))
	assert.False(t, hasPrompt(json.RawMessage(`{"prompt":""}`)))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short", 50))
	assert.Equal(t, "abc...", preview("abcdef", 3))
	assert.Equal(t, "äöü...", preview("äöüß", 3))
}
