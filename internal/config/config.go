// Package config handles loading and managing imsg configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the imsg configuration.
type Config struct {
	Messages MessagesConfig `toml:"messages"`
	Contacts ContactsConfig `toml:"contacts"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// MessagesConfig holds message archive configuration.
type MessagesConfig struct {
	DBPath string `toml:"db_path"` // chat.db location
}

// ContactsConfig holds contact book configuration.
type ContactsConfig struct {
	Path string `toml:"path"` // contacts.json location
}

// DefaultHome returns the default imsg home directory.
// Respects the IMSG_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("IMSG_HOME"); h != "" {
		return expandPath(h)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".imsg"
	}
	return filepath.Join(home, ".imsg")
}

// Load reads the configuration. path is an explicit --config file (must
// exist when given); homeDir overrides IMSG_HOME. With neither set, the
// config file is $IMSG_HOME/config.toml and missing is fine - defaults
// apply.
func Load(path, homeDir string) (*Config, error) {
	explicit := path != ""
	path = expandPath(path)
	homeDir = expandPath(homeDir)

	switch {
	case homeDir != "":
	case explicit:
		homeDir = filepath.Dir(path)
	default:
		homeDir = DefaultHome()
	}
	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		// Defaults
		Messages: MessagesConfig{
			DBPath: "~/Library/Messages/chat.db",
		},
		Contacts: ContactsConfig{
			Path: filepath.Join(homeDir, "contacts.json"),
		},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		// Config file is optional - use defaults if not present
		cfg.finalize()
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.finalize()
	return cfg, nil
}

// ConfigFilePath returns the config file location under the home directory.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.HomeDir, "config.toml")
}

// finalize expands ~ and resolves relative paths against the home
// directory, so a config file can say path = "contacts.json".
func (c *Config) finalize() {
	c.Messages.DBPath = c.resolve(c.Messages.DBPath)
	c.Contacts.Path = c.resolve(c.Contacts.Path)
}

func (c *Config) resolve(path string) string {
	path = expandPath(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.HomeDir, path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" || (len(path) > 1 && path[0] == '~' && path[1] == '/') {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
