package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeError is returned by DecodeRequest when a line is not a request
// record. ID holds the identifier salvaged from the line, or nil.
type DecodeError struct {
	ID  json.RawMessage
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode request: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// HasID reports whether an identifier could be recovered.
func (e *DecodeError) HasID() bool {
	return !isNull(e.ID)
}

// DecodeRequest parses one line into a request. Only a line that is not a
// JSON object fails, as a *DecodeError. Member types are not checked:
// jsonrpc and method are read with Text, params and id stay raw.
func DecodeRequest(line []byte) (*JSONRPCRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return nil, &DecodeError{ID: RecoverID(line), Err: err}
	}
	if fields == nil {
		return nil, &DecodeError{Err: errors.New("request is null")}
	}
	return &JSONRPCRequest{
		JSONRPC: Text(fields["jsonrpc"]),
		Method:  Text(fields["method"]),
		Params:  fields["params"],
		ID:      fields["id"],
	}, nil
}

// Text renders a member as text: a JSON string is unquoted, null or an
// absent member is empty, and any other value is its literal JSON.
func Text(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// RecoverID looks only at the top-level "id" member. It returns nil when the
// line is not a JSON object or carries no usable id.
func RecoverID(line []byte) json.RawMessage {
	var partial struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(line, &partial); err != nil {
		return nil
	}
	if isNull(partial.ID) {
		return nil
	}
	return partial.ID
}
