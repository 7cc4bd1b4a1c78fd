package codec

import (
	"bytes"
	"encoding/json"
	"io"
)

func NewResultResponse(id json.RawMessage, result any) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: JsonRPCVersion,
		ID:      id,
		Result:  result,
	}
}

func NewErrorResponse(id json.RawMessage, code int, message string) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: JsonRPCVersion,
		ID:      id,
		Error:   NewRPCError(code, message),
	}
}

// Marshal encodes msg as a single line without a trailing newline. HTML
// characters are left as-is so the thinking markers stay readable on the wire.
func Marshal(msg any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteMessage writes msg followed by a newline in a single Write call.
func WriteMessage(w io.Writer, msg any) error {
	b, err := Marshal(msg)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
