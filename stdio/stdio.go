package stdio

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/thinkmcp/codec"
)

// MaxLineSize bounds a single inbound record.
const MaxLineSize = 10 * 1024 * 1024

// ErrLineTooLong is reported by Err when a line exceeds MaxLineSize.
var ErrLineTooLong = bufio.ErrTooLong

// Framer splits a byte stream into newline-delimited records. Blank lines
// are skipped. A Framer is not restartable.
type Framer struct {
	scanner *bufio.Scanner
	err     error
}

func NewFramer(r io.Reader) *Framer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Framer{scanner: scanner}
}

// Next returns the next non-blank line. It returns false once the stream is
// exhausted or fails; Err tells the two apart.
func (f *Framer) Next() (string, bool) {
	for f.scanner.Scan() {
		line := f.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line, true
	}
	f.err = f.scanner.Err()
	return "", false
}

// Err returns the read error that stopped the Framer, or nil at EOF.
func (f *Framer) Err() error {
	return f.err
}

// Lines reads on its own goroutine and delivers lines until the stream ends
// or ctx is done. The channel is closed when reading stops; Err is valid
// after that.
func (f *Framer) Lines(ctx context.Context) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		for {
			line, ok := f.Next()
			if !ok {
				return
			}
			select {
			case ch <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// Writer emits one JSON record per line.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteMessage(msg any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return codec.WriteMessage(w.w, msg)
}
