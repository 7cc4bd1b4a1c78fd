package install

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"

	"github.com/thinkmcp/mcp"
)

const (
	cursorDirName  = ".cursor"
	installDirName = "cursor-claud-think-mcp"
	configFileName = "mcp.json"
	artifactName   = "think-mcp"
)

// ErrAborted is returned when the user declines to overwrite an existing
// registration.
var ErrAborted = errors.New("installation aborted")

// Paths are the locations the installer touches.
type Paths struct {
	CursorDir  string
	InstallDir string
	Artifact   string
	ConfigFile string
}

// DefaultPaths lays out the install under home, or under the user's home
// directory when home is empty.
func DefaultPaths(home string) (Paths, error) {
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return Paths{}, fmt.Errorf("failed to get user home directory: %w", err)
		}
	}
	home, err := filepath.Abs(home)
	if err != nil {
		return Paths{}, err
	}

	name := artifactName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	cursorDir := filepath.Join(home, cursorDirName)
	installDir := filepath.Join(home, installDirName)
	return Paths{
		CursorDir:  cursorDir,
		InstallDir: installDir,
		Artifact:   filepath.Join(installDir, name),
		ConfigFile: filepath.Join(cursorDir, configFileName),
	}, nil
}

// Entry is the registration the installer writes for the artifact.
func (p Paths) Entry() ServerEntry {
	return ServerEntry{Command: p.Artifact, Args: []string{"serve"}}
}

// ConfirmFunc is asked before an existing, different registration is
// replaced.
type ConfirmFunc func(existing, replacement ServerEntry) (bool, error)

type Options struct {
	// Source is the executable to install.
	Source     string
	Yes        bool
	SkipVerify bool
	Confirm    ConfirmFunc
	Out        io.Writer
}

type Installer struct {
	paths Paths
	opts  Options

	info    *color.Color
	success *color.Color
	warning *color.Color
}

func New(paths Paths, opts Options) *Installer {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Installer{
		paths:   paths,
		opts:    opts,
		info:    color.New(color.FgBlue),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
	}
}

// Run performs the install: directories, artifact copy, config registration
// and verification. Nothing is written if the user declines the overwrite.
func (i *Installer) Run() error {
	i.info.Fprintln(i.opts.Out, "\nInstalling Cursor & Claude Think MCP globally...")

	cfg, err := i.loadConfig()
	if err != nil {
		return err
	}

	entry := i.paths.Entry()
	if existing, ok := cfg.Entry(mcp.ServerName); ok && !existing.Equal(entry) && !i.opts.Yes {
		if i.opts.Confirm == nil {
			return fmt.Errorf("%w: existing %s entry differs (use --yes to overwrite)", ErrAborted, mcp.ServerName)
		}
		ok, err := i.opts.Confirm(existing, entry)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAborted, err)
		}
		if !ok {
			return ErrAborted
		}
	}

	for _, dir := range []string{i.paths.CursorDir, i.paths.InstallDir} {
		created, err := EnsureDir(dir)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		if created {
			i.info.Fprintf(i.opts.Out, "Creating directory: %s\n", dir)
		}
	}

	i.info.Fprintln(i.opts.Out, "Copying server executable to installation directory...")
	if err := CopyArtifact(i.opts.Source, i.paths.Artifact); err != nil {
		return fmt.Errorf("failed to copy executable: %w", err)
	}
	i.success.Fprintln(i.opts.Out, "Executable copied successfully!")

	i.info.Fprintln(i.opts.Out, "Configuring MCP settings...")
	if err := cfg.SetEntry(mcp.ServerName, entry); err != nil {
		return fmt.Errorf("failed to encode server entry: %w", err)
	}
	if err := cfg.Save(i.paths.ConfigFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", i.paths.ConfigFile, err)
	}
	i.success.Fprintln(i.opts.Out, "MCP configuration updated successfully!")

	if !i.opts.SkipVerify {
		if err := Verify(i.paths); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		i.success.Fprintln(i.opts.Out, "Installation verified.")
	}

	i.success.Fprintln(i.opts.Out, "\nCursor & Claude Think MCP installed successfully!")
	i.warning.Fprintln(i.opts.Out, "\nIMPORTANT: You must restart Cursor for the changes to take effect.")
	i.info.Fprintln(i.opts.Out, "\nUsage: In any Cursor chat, type \"think\" followed by your question.")
	i.info.Fprintln(i.opts.Out, "  Example: think What is the computational complexity of quicksort?")
	return nil
}

func (i *Installer) loadConfig() (*Config, error) {
	cfg, err := LoadConfig(i.paths.ConfigFile)
	if err == nil {
		if cfg.Has(serversKey) {
			i.warning.Fprintln(i.opts.Out, "Existing MCP configuration found, updating...")
		}
		return cfg, nil
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return nil, fmt.Errorf("failed to read %s: %w", i.paths.ConfigFile, err)
	}
	i.warning.Fprintf(i.opts.Out, "Warning: Could not parse existing MCP config, creating new one: %v\n", err)
	return NewConfig(), nil
}

// EnsureDir creates dir if it does not exist and reports whether it did.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, err
	}
	return true, os.MkdirAll(dir, 0755)
}

// CopyArtifact copies src to dst through a temporary file in dst's
// directory, so a failed copy never leaves a truncated executable behind.
// Copying a file onto itself is a no-op.
func CopyArtifact(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmp.Name(), 0755); err != nil {
			return err
		}
	}
	return os.Rename(tmp.Name(), dst)
}

// Verify checks that the artifact is in place and that the config points
// at it.
func Verify(paths Paths) error {
	info, err := os.Stat(paths.Artifact)
	if err != nil {
		return fmt.Errorf("artifact: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("artifact %s is not a regular file", paths.Artifact)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("artifact %s is not executable", paths.Artifact)
	}

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return fmt.Errorf("config %s: %w", paths.ConfigFile, err)
	}
	entry, ok := cfg.Entry(mcp.ServerName)
	if !ok {
		return fmt.Errorf("config %s has no %s entry", paths.ConfigFile, mcp.ServerName)
	}
	if !entry.Equal(paths.Entry()) {
		return fmt.Errorf("config entry points at %s, want %s", entry.Command, paths.Artifact)
	}
	return nil
}
