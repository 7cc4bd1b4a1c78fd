package transport

import (
	"context"
	"encoding/json"
)

// Interface for the transport layer.
type Interface interface {
	// Start the connection. Start should only be called once.
	Start(ctx context.Context) error

	// Send writes one record to the peer.
	Send(ctx context.Context, msg any) error

	// Receive blocks until the peer emits a record, the stream ends or ctx
	// is done.
	Receive(ctx context.Context) (json.RawMessage, error)

	// Close the connection.
	Close() error
}
