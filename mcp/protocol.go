package mcp

import (
	"context"
	"encoding/json"
	"sync"
)

// ToolHandler runs a tool against its raw arguments and returns the output
// text. Protocol-level failures are returned as *codec.RPCError.
type ToolHandler func(ctx context.Context, args json.RawMessage) (string, error)

type toolEntry struct {
	desc    ToolDescription
	handler ToolHandler
}

// Protocol holds the tools a server can execute, in registration order.
type Protocol struct {
	mu sync.RWMutex

	order []string
	tools map[string]toolEntry
}

func NewProtocol() *Protocol {
	return &Protocol{
		tools: make(map[string]toolEntry),
	}
}

// SetToolHandler registers or replaces a tool.
func (p *Protocol) SetToolHandler(desc ToolDescription, handler ToolHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.tools[desc.Name]; !ok {
		p.order = append(p.order, desc.Name)
	}
	p.tools[desc.Name] = toolEntry{
		desc:    desc,
		handler: handler,
	}
}

// Tool returns the handler registered under name.
func (p *Protocol) Tool(name string) (ToolHandler, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.tools[name]
	if !ok {
		return nil, false
	}
	return entry.handler, true
}

// Tools lists the registered tool descriptions for the announcement.
func (p *Protocol) Tools() []ToolDescription {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]ToolDescription, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.tools[name].desc)
	}
	return out
}
