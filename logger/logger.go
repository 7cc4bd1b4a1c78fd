// Package logger writes the optional diagnostic log. Output goes to a
// secondary stream (stderr in production) and is appended to a log file;
// it never touches the protocol stream.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// sink is shared by a root Logger and every logger derived from it.
type sink struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
	path    string
	closed  bool
	now     func() time.Time
}

type Logger struct {
	name string
	id   string
	sink *sink
}

// New returns a root logger for conf. With Debug off the logger discards
// everything and no file is opened. A log file that cannot be opened is
// reported on console and logging continues there.
func New(conf Conf, console io.Writer) *Logger {
	if !conf.Debug {
		return Discard()
	}
	if console == nil {
		console = io.Discard
	}
	s := &sink{console: console, path: conf.LogFile, now: time.Now}
	if conf.LogFile != "" {
		f, err := os.OpenFile(conf.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(console, "Failed to open log file: %v\n", err)
		} else {
			s.file = f
		}
	}
	return &Logger{id: uuid.NewString(), sink: s}
}

// Discard returns a logger that drops every message.
func Discard() *Logger {
	return &Logger{}
}

// NewLogger derives a logger for one component sharing l's outputs and
// session id.
func (l *Logger) NewLogger(name string) *Logger {
	return &Logger{name: name, id: l.id, sink: l.sink}
}

// Enabled reports whether messages are written anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.sink != nil
}

// SessionID identifies one server process in the log file.
func (l *Logger) SessionID() string {
	return l.id
}

func (l *Logger) Debug(msg string) { l.log(LevelDebug, msg) }
func (l *Logger) Info(msg string)  { l.log(LevelInfo, msg) }
func (l *Logger) Warn(msg string)  { l.log(LevelWarn, msg) }
func (l *Logger) Error(msg string) { l.log(LevelError, msg) }

func (l *Logger) log(level Level, msg string) {
	if !l.Enabled() {
		return
	}
	line := l.format(level, msg)

	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprint(s.console, line)
	if s.file == nil || s.closed {
		return
	}
	if _, err := s.file.WriteString(line); err != nil {
		fmt.Fprintf(s.console, "Failed to write to log file: %v\n", err)
	}
}

func (l *Logger) format(level Level, msg string) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(l.sink.now().UTC().Format(time.RFC3339Nano))
	b.WriteString("] [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.name != "" {
		b.WriteString("[")
		b.WriteString(l.name)
		if len(l.id) >= 8 {
			b.WriteString(" ")
			b.WriteString(l.id[:8])
		}
		b.WriteString("] ")
	}
	b.WriteString(msg)
	b.WriteString("\n")
	return b.String()
}

// Close flushes and closes the log file. It is safe to call more than once
// and from any derived logger.
func (l *Logger) Close() error {
	if !l.Enabled() {
		return nil
	}
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.file == nil {
		s.closed = true
		return nil
	}
	s.closed = true
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return fmt.Errorf("sync log file: %w", err)
	}
	return s.file.Close()
}
