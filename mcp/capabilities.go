package mcp

import "github.com/thinkmcp/codec"

// --- Capability announcement structures ---

// Property describes one named tool parameter.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Schema is the JSON Schema subset used for tool parameters. It is
// serialized in the order hosts expect: type, properties, required.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type ToolDescription struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// ServerInfo is the params payload of the mcp/server_info announcement.
type ServerInfo struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Tools   []ToolDescription `json:"tools"`
}

func NewServerInfo(name, version string, tools []ToolDescription) ServerInfo {
	if tools == nil {
		tools = []ToolDescription{}
	}
	return ServerInfo{
		Name:    name,
		Version: version,
		Tools:   tools,
	}
}

// NewAnnouncement wraps info in the one-time mcp/server_info notification.
func NewAnnouncement(info ServerInfo) codec.Notification {
	return codec.Notification{
		JSONRPC: codec.JsonRPCVersion,
		Method:  MethodServerInfo,
		Params:  info,
	}
}
