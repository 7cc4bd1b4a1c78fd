package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/thinkmcp/stdio"
)

// ErrClosed is returned by Receive once the peer's output has ended.
var ErrClosed = errors.New("transport closed")

// Stream speaks newline-delimited JSON over a reader/writer pair.
type Stream struct {
	r io.Reader
	w io.WriteCloser

	out    *stdio.Writer
	framer *stdio.Framer
	lines  <-chan string
	cancel context.CancelFunc

	closeOnce sync.Once
}

func NewStream(r io.Reader, w io.WriteCloser) *Stream {
	return &Stream{r: r, w: w, out: stdio.NewWriter(w)}
}

func (s *Stream) Start(ctx context.Context) error {
	if s.lines != nil {
		return errors.New("transport already started")
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.framer = stdio.NewFramer(s.r)
	s.lines = s.framer.Lines(ctx)
	return nil
}

func (s *Stream) Send(ctx context.Context, msg any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.out.WriteMessage(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (s *Stream) Receive(ctx context.Context) (json.RawMessage, error) {
	if s.lines == nil {
		return nil, errors.New("transport not started")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			if err := s.framer.Err(); err != nil {
				return nil, fmt.Errorf("read message: %w", err)
			}
			return nil, ErrClosed
		}
		return json.RawMessage(line), nil
	}
}

// Close stops reading and closes the write side, which the peer sees as the
// end of its input.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		err = s.w.Close()
		if c, ok := s.r.(io.Closer); ok {
			c.Close()
		}
	})
	return err
}
