package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
)

// DefaultLogFileName is created in the user's home directory when no log
// path is configured.
const DefaultLogFileName = ".cursor-claud-think-mcp.log"

type Conf struct {
	Debug   bool   `env:"CLAUDE_THINK_DEBUG,default=false"`
	LogFile string `env:"CLAUDE_THINK_LOG_FILE"`
}

// LogConfig reads the diagnostic settings from the environment.
func LogConfig() (*Conf, error) {
	configs := new(Conf)
	if err := envdecode.Decode(configs); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode log config from environment: %w", err)
	}
	if configs.LogFile == "" {
		configs.LogFile = DefaultLogFile()
	}
	return configs, nil
}

func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, DefaultLogFileName)
}
