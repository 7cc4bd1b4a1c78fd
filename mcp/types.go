package mcp

import (
	"encoding/json"

	"github.com/thinkmcp/codec"
)

// ExecuteParams is the params payload of an mcp/execute request. Both
// members stay raw: tool may be any JSON value and arguments are validated
// by the tool itself.
type ExecuteParams struct {
	Tool      json.RawMessage `json:"tool,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolName returns the requested tool as text. A JSON string is unquoted,
// any other value is returned as its literal JSON.
func (p ExecuteParams) ToolName() string {
	return codec.Text(p.Tool)
}

// ExecuteResult is the result payload of a successful mcp/execute.
type ExecuteResult struct {
	Output string `json:"output"`
}
