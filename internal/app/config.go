package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/bakerapp/baker/internal/scanner"
)

// Config contains the runtime configuration for the daemon. Defaults cover
// local development; a TOML file can override any field.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string `toml:"listen_addr"`

	// StorageRoot is where the registry database lives.
	StorageRoot string `toml:"storage_root"`

	// BackupOriginals copies breadcrumbs.json to breadcrumbs.json.bak
	// before every overwrite during batch apply.
	BackupOriginals bool `toml:"backup_originals"`

	// Scan defaults used when a request does not specify its own.
	Scan scanner.Options `toml:"scan"`

	// TrelloBaseURL / SproutBaseURL override the service endpoints; empty
	// means the real APIs. Mainly for tests.
	TrelloBaseURL string `toml:"trello_base_url"`
	SproutBaseURL string `toml:"sprout_base_url"`
}

// DefaultConfig returns a Config populated with sensible development
// defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      "127.0.0.1:8484",
		StorageRoot:     "~/.config/baker",
		BackupOriginals: true,
		Scan: scanner.Options{
			MaxDepth:      3,
			IncludeHidden: false,
		},
	}
}

// LoadConfig reads a TOML config file over the defaults. A missing file is
// not an error; the defaults stand.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ExpandPath resolves a leading ~ against the user's home directory.
func ExpandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
