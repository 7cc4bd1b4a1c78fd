package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thinkmcp/codec"
	"github.com/thinkmcp/logger"
	"github.com/thinkmcp/mcp"
)

// Dispatcher turns one inbound line into at most one response. It keeps no
// state between lines.
type Dispatcher struct {
	log   *logger.Logger
	proto *mcp.Protocol
}

func NewDispatcher(proto *mcp.Protocol, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		log:   log,
		proto: proto,
	}
}

// Dispatch returns the response for line, or nil when the peer gets no
// reply: unknown methods, and lines with no recoverable id.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) *codec.JSONRPCResponse {
	d.log.Info(fmt.Sprintf("Received request: %s", line))

	req, err := codec.DecodeRequest([]byte(line))
	if err != nil {
		d.log.Error(fmt.Sprintf("Error processing request: %v", err))
		d.log.Error(fmt.Sprintf("Problematic line: %s", line))

		var decErr *codec.DecodeError
		if errors.As(err, &decErr) && decErr.HasID() {
			return d.fail(decErr.ID, codec.ParseError, "")
		}
		return nil
	}

	if req.Method != mcp.MethodExecute {
		d.log.Warn(fmt.Sprintf("Unknown method: %s", req.Method))
		return nil
	}
	return d.execute(ctx, req)
}

func (d *Dispatcher) execute(ctx context.Context, req *codec.JSONRPCRequest) *codec.JSONRPCResponse {
	if !req.HasParams() {
		return d.fail(req.ID, codec.InvalidParams, "")
	}

	// params that are not an object carry no tool, which is reported as an
	// unknown tool below.
	var params mcp.ExecuteParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		d.log.Warn(fmt.Sprintf("params is not an object: %v", err))
		params = mcp.ExecuteParams{}
	}

	name := params.ToolName()
	handler, ok := d.proto.Tool(name)
	if !ok {
		d.log.Warn(fmt.Sprintf("Unknown tool requested: %s", name))
		return d.fail(req.ID, codec.MethodNotFound, fmt.Sprintf(`Tool "%s" not found`, name))
	}

	output, err := handler(ctx, params.Arguments)
	if err != nil {
		var rpcErr *codec.RPCError
		if errors.As(err, &rpcErr) {
			return d.fail(req.ID, rpcErr.Code, rpcErr.Message)
		}
		d.log.Error(fmt.Sprintf("tool %s failed: %v", name, err))
		return d.fail(req.ID, codec.InternalError, "")
	}

	return codec.NewResultResponse(req.ID, mcp.ExecuteResult{Output: output})
}

func (d *Dispatcher) fail(id json.RawMessage, code int, message string) *codec.JSONRPCResponse {
	resp := codec.NewErrorResponse(id, code, message)
	d.log.Error(fmt.Sprintf("Sending error response: %s", resp.Error.Message))
	return resp
}
