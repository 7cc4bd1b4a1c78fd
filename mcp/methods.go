package mcp

const (
	// Announces the server name, version and tool list. Sent once by the
	// server before it reads any request.
	MethodServerInfo string = "mcp/server_info"

	// Runs one of the announced tools with the given arguments.
	MethodExecute string = "mcp/execute"
)

// ServerName is the name the server announces and registers under in the
// host's mcpServers configuration.
const ServerName = "Cursor-Claud-Think-MCP"
