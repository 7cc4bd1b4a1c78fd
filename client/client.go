package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thinkmcp/codec"
	"github.com/thinkmcp/logger"
	"github.com/thinkmcp/mcp"
	"github.com/thinkmcp/transport"

	"github.com/google/uuid"
)

// Client drives a think server: it waits for the capability announcement
// and then issues mcp/execute requests one at a time.
type Client struct {
	log        *logger.Logger
	transport  transport.Interface
	ServerInfo *mcp.ServerInfo
}

func NewClient(t transport.Interface, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		log:       log.NewLogger("client"),
		transport: t,
	}
}

// Connect starts the transport and reads the server's announcement, which
// must be the first record the server sends.
func (c *Client) Connect(ctx context.Context) error {
	if err := c.transport.Start(ctx); err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}

	raw, err := c.transport.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to read server info: %w", err)
	}

	var ann struct {
		Method string         `json:"method"`
		Params mcp.ServerInfo `json:"params"`
	}
	if err := json.Unmarshal(raw, &ann); err != nil {
		return fmt.Errorf("failed to unmarshal server info: %w", err)
	}
	if ann.Method != mcp.MethodServerInfo {
		return fmt.Errorf("expected %s as first message, got %q", mcp.MethodServerInfo, ann.Method)
	}

	c.ServerInfo = &ann.Params
	c.log.Info(fmt.Sprintf("Connected to %s %s", ann.Params.Name, ann.Params.Version))
	return nil
}

// HasTool reports whether the server announced name.
func (c *Client) HasTool(name string) bool {
	if c.ServerInfo == nil {
		return false
	}
	for _, tool := range c.ServerInfo.Tools {
		if tool.Name == name {
			return true
		}
	}
	return false
}

type executeResponse struct {
	ID     json.RawMessage    `json:"id"`
	Result *mcp.ExecuteResult `json:"result"`
	Error  *codec.RPCError    `json:"error"`
}

// Execute runs tool with args and returns its output. A protocol error from
// the server is returned as *codec.RPCError. Records that do not answer this
// request are skipped.
func (c *Client) Execute(ctx context.Context, tool string, args any) (string, error) {
	params, err := json.Marshal(map[string]any{"tool": tool, "arguments": args})
	if err != nil {
		return "", fmt.Errorf("failed to marshal params: %w", err)
	}
	id, err := json.Marshal(uuid.NewString())
	if err != nil {
		return "", err
	}

	req := codec.JSONRPCRequest{
		JSONRPC: codec.JsonRPCVersion,
		ID:      id,
		Method:  mcp.MethodExecute,
		Params:  params,
	}
	if err := c.transport.Send(ctx, req); err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	c.log.Debug(fmt.Sprintf("Sent %s (ID: %s) for tool %s", req.Method, id, tool))

	for {
		raw, err := c.transport.Receive(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		var resp executeResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			c.log.Warn(fmt.Sprintf("skipping undecodable record: %v", err))
			continue
		}
		if !bytes.Equal(resp.ID, id) {
			c.log.Debug(fmt.Sprintf("skipping record for ID %s", resp.ID))
			continue
		}

		if resp.Error != nil {
			return "", resp.Error
		}
		if resp.Result == nil {
			return "", errors.New("server response missing 'result' field")
		}
		return resp.Result.Output, nil
	}
}

// Think runs the think tool on prompt.
func (c *Client) Think(ctx context.Context, prompt string) (string, error) {
	return c.Execute(ctx, "think", map[string]string{"prompt": prompt})
}

func (c *Client) Close() error {
	return c.transport.Close()
}
