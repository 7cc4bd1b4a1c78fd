package server

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"github.com/thinkmcp/logger"
	"github.com/thinkmcp/mcp"
	"github.com/thinkmcp/stdio"
)

type Server struct {
	StartTime time.Time

	conf       *Conf
	log        *logger.Logger
	in         io.Reader
	out        *stdio.Writer
	proto      *mcp.Protocol
	dispatcher *Dispatcher

	shutdownOnce sync.Once
	done         chan struct{}
}

// NewServer wires a server reading requests from in and writing records to
// out. The think tool is registered; more tools can be added through
// Protocol before Serve is called.
func NewServer(conf *Conf, in io.Reader, out io.Writer, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	proto := mcp.NewProtocol()
	proto.SetToolHandler(ThinkTool, thinkHandler(log.NewLogger("think")))

	return &Server{
		StartTime:  time.Now().UTC(),
		conf:       conf,
		log:        log.NewLogger("server"),
		in:         in,
		out:        stdio.NewWriter(out),
		proto:      proto,
		dispatcher: NewDispatcher(proto, log.NewLogger("dispatcher")),
		done:       make(chan struct{}),
	}
}

func (s *Server) Protocol() *mcp.Protocol {
	return s.proto
}

func secondsToTimeStr(seconds float64) string {
	duration := time.Duration(int64(seconds)) * time.Second
	timeValue := time.Time{}.Add(duration)
	return timeValue.Format("15:04:05")
}

// returns the current run time of the server
// as a HH:MM:SS formatted string.
func (s *Server) RunTime() string {
	return secondsToTimeStr(time.Since(s.StartTime).Seconds())
}

// Run serves until the input ends or the process receives an interrupt.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	return s.Serve(ctx)
}

// Serve sends the capability announcement and then handles one line at a
// time until ctx is done, the input ends, a line handler panics, or
// Shutdown is called. Each of those ends in Shutdown and a nil return; only
// a failed announcement is reported as an error.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info(fmt.Sprintf("%s starting (version %s)", s.conf.Name, s.conf.Version))
	if s.conf.Log.Debug {
		s.log.Info(fmt.Sprintf("Diagnostic log file: %s (session %s)", s.conf.Log.LogFile, s.log.SessionID()))
	}

	if err := s.announce(); err != nil {
		s.Shutdown("announcement failed")
		return fmt.Errorf("failed to send server info: %w", err)
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	framer := stdio.NewFramer(s.in)
	lines := framer.Lines(readCtx)

	for {
		select {
		case <-ctx.Done():
			s.Shutdown("interrupted")
			return nil
		case <-s.done:
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := framer.Err(); err != nil {
					s.log.Error(fmt.Sprintf("Readline error: %v", err))
				}
				s.Shutdown("input closed")
				return nil
			}
			if s.stopping(ctx) {
				s.Shutdown("interrupted")
				return nil
			}
			if !s.handle(ctx, line) {
				s.Shutdown("internal fault")
				return nil
			}
		}
	}
}

func (s *Server) announce() error {
	info := mcp.NewServerInfo(s.conf.Name, s.conf.Version, s.proto.Tools())
	return s.out.WriteMessage(mcp.NewAnnouncement(info))
}

func (s *Server) stopping(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// handle processes one line to completion. It returns false when the line
// caused a panic; the server must not keep serving after that.
func (s *Server) handle(ctx context.Context, line string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(fmt.Sprintf("Uncaught exception: %v", r))
			s.log.Error(string(debug.Stack()))
			ok = false
		}
	}()

	resp := s.dispatcher.Dispatch(ctx, line)
	if resp == nil {
		return true
	}
	if err := s.out.WriteMessage(resp); err != nil {
		s.log.Error(fmt.Sprintf("failed to write response: %v", err))
		return true
	}
	if resp.Error == nil {
		s.log.Info("Response sent successfully")
	}
	return true
}

// Shutdown stops the server. Every trigger (signal, end of input, internal
// fault, caller) ends up here; only the first call has any effect.
func (s *Server) Shutdown(reason string) {
	s.shutdownOnce.Do(func() {
		s.log.Info(fmt.Sprintf("MCP server shutting down (%s)", reason))
		close(s.done)
		if c, ok := s.in.(io.Closer); ok {
			if err := c.Close(); err != nil {
				s.log.Warn(fmt.Sprintf("failed to close input: %v", err))
			}
		}
		s.log.Info(fmt.Sprintf("server run time: %s", s.RunTime()))
	})
}

// Done is closed once Shutdown has run.
func (s *Server) Done() <-chan struct{} {
	return s.done
}
