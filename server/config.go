package server

import (
	"github.com/thinkmcp/logger"
	"github.com/thinkmcp/mcp"
)

// Conf is built once at startup and never changed afterwards.
type Conf struct {
	Name    string
	Version string
	Log     logger.Conf
}

func ServerConfigs(version string, log logger.Conf) *Conf {
	return &Conf{
		Name:    mcp.ServerName,
		Version: version,
		Log:     log,
	}
}
