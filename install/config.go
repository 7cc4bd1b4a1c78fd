package install

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

const serversKey = "mcpServers"

// ServerEntry is one launch record under mcpServers.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// Equal reports whether two entries launch the same thing.
func (e ServerEntry) Equal(o ServerEntry) bool {
	if e.Command != o.Command || !slices.Equal(e.Args, o.Args) || len(e.Env) != len(o.Env) {
		return false
	}
	for k, v := range e.Env {
		if ov, ok := o.Env[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Config is the client's mcp.json. Only the mcpServers table is interpreted;
// every other key is carried through untouched.
type Config struct {
	top     map[string]json.RawMessage
	servers map[string]json.RawMessage
}

func NewConfig() *Config {
	return &Config{
		top:     make(map[string]json.RawMessage),
		servers: make(map[string]json.RawMessage),
	}
}

// ParseConfig decodes an mcp.json document. A missing or null mcpServers
// table is treated as empty.
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, &cfg.top); err != nil {
		return nil, err
	}
	if cfg.top == nil {
		return nil, errors.New("config is null")
	}

	raw, ok := cfg.top[serversKey]
	if !ok || string(raw) == "null" {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg.servers); err != nil {
		return nil, fmt.Errorf("%s: %w", serversKey, err)
	}
	if cfg.servers == nil {
		cfg.servers = make(map[string]json.RawMessage)
	}
	return cfg, nil
}

// LoadConfig reads path. A missing file yields an empty config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, err
	}
	return ParseConfig(data)
}

// Entry returns the named server entry, if present and well formed.
func (c *Config) Entry(name string) (ServerEntry, bool) {
	raw, ok := c.servers[name]
	if !ok {
		return ServerEntry{}, false
	}
	var entry ServerEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return ServerEntry{}, false
	}
	return entry, true
}

func (c *Config) SetEntry(name string, entry ServerEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	c.servers[name] = raw
	return nil
}

// Has reports whether the top-level key exists.
func (c *Config) Has(key string) bool {
	_, ok := c.top[key]
	return ok
}

func (c *Config) Marshal() ([]byte, error) {
	servers, err := json.Marshal(c.servers)
	if err != nil {
		return nil, err
	}
	c.top[serversKey] = servers

	data, err := json.MarshalIndent(c.top, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes the config to path, creating its directory if needed.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
