package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const JsonRPCVersion = "2.0"

// JSONRPCRequest is one inbound record. ID is kept raw so it can be echoed
// back byte for byte.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// HasParams reports whether params is present and not JSON null.
func (r *JSONRPCRequest) HasParams() bool {
	return !isNull(r.Params)
}

// JSONRPCResponse carries exactly one of Result or Error. A nil ID is
// serialized as null.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// Notification is a one-way message that does not expect a response.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// JSON-RPC 2.0 standard error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

var rpcErrorMessages = map[int]string{
	ParseError:     "Parse error",
	InvalidRequest: "Invalid Request",
	MethodNotFound: "Method not found",
	InvalidParams:  "Invalid params",
	InternalError:  "Internal error",
}

// NewRPCError builds an error object, falling back to the standard message
// for code when message is empty.
func NewRPCError(code int, message string) *RPCError {
	if message == "" {
		message = rpcErrorMessages[code]
	}
	return &RPCError{Code: code, Message: message}
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
