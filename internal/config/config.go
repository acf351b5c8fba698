// Package config handles TOML-based configuration loading and validation.
// The file is parsed as data only.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"showflix/internal/httputil"
	"showflix/internal/media"
)

// Config holds all application configuration.
type Config struct {
	ServerURL      string           `toml:"server_url"`
	Referer        string           `toml:"referer"`
	ApplicationID  string           `toml:"application_id"`
	JavaScriptKey  string           `toml:"javascript_key"`
	ClientVersion  string           `toml:"client_version"`
	InstallationID string           `toml:"installation_id"`
	HomeLimit      int              `toml:"home_limit"`
	ScanLimit      int              `toml:"scan_limit"`
	Timeout        time.Duration    `toml:"timeout"`
	Player         string           `toml:"player"`
	Listen         string           `toml:"listen"`
	Debug          bool             `toml:"debug"`
	Log            Log              `toml:"log"`
	Categories     []media.Category `toml:"categories"`
}

// Log configures the optional rotating log file.
type Log struct {
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"` // megabytes
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"` // days
	Compress   bool   `toml:"compress"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		ServerURL:      "https://parse.showflix.shop/parse",
		Referer:        "https://showflix.xyz/",
		ApplicationID:  "SHOWFLIXAPPID",
		JavaScriptKey:  "SHOWFLIXMASTERKEY",
		ClientVersion:  "js3.4.1",
		InstallationID: "e26c34d7-8f79-4161-92d8-36d19023fc60",
		HomeLimit:      10,
		ScanLimit:      1000,
		Timeout:        30 * time.Second,
		Player:         "mpv",
		Listen:         "127.0.0.1:8080",
		Log: Log{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Categories: DefaultCategories(),
	}
}

// DefaultCategories returns the built-in category list.
func DefaultCategories() []media.Category {
	return []media.Category{
		{Name: "Tamil", Pattern: literal("Tamil")},
		{Name: "Dubbed", Pattern: literal("Tamil Dubbed")},
		{Name: "English", Pattern: literal("English")},
		{Name: "Telugu", Pattern: literal("Telugu")},
		{Name: "Hindi", Pattern: literal("Hindi")},
		{Name: "Malayalam", Pattern: literal("Malayalam")},
	}
}

func literal(s string) string {
	return `\Q` + s + `\E`
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "showflix"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "showflix"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file from the OS filesystem and merges it with
// defaults. If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(afero.NewOsFs(), path)
}

// LoadExplicit reads a config file the user named. Unlike LoadFile, a
// missing file is an error.
func LoadExplicit(fsys afero.Fs, path string) (*Config, error) {
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("config file %s: %w", path, fs.ErrNotExist)
	}
	return LoadFile(fsys, path)
}

// LoadFile reads the config at path from fsys and merges it with defaults.
// A missing file yields the defaults.
func LoadFile(fsys afero.Fs, path string) (*Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Categories replace the defaults wholesale when the file lists any.
	cfg.Categories = nil
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if !md.IsDefined("categories") {
		cfg.Categories = DefaultCategories()
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing config %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if err := httputil.ValidateURL(c.ServerURL); err != nil {
		return fmt.Errorf("server_url: %w", err)
	}
	if c.Referer != "" {
		if err := httputil.ValidateURL(c.Referer); err != nil {
			return fmt.Errorf("referer: %w", err)
		}
	}
	if c.ApplicationID == "" {
		return fmt.Errorf("application_id cannot be empty")
	}
	if _, err := uuid.Parse(c.InstallationID); err != nil {
		return fmt.Errorf("installation_id: %w", err)
	}

	if c.HomeLimit <= 0 {
		return fmt.Errorf("home_limit must be positive, got %d", c.HomeLimit)
	}
	if c.ScanLimit < c.HomeLimit {
		return fmt.Errorf("scan_limit (%d) cannot be below home_limit (%d)", c.ScanLimit, c.HomeLimit)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("log rotation settings cannot be negative")
	}

	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("categories[%d]: name cannot be empty", i)
		}
		key := strings.ToLower(cat.Name)
		if seen[key] {
			return fmt.Errorf("categories[%d]: duplicate name %q", i, cat.Name)
		}
		seen[key] = true
		if cat.Pattern == "" {
			return fmt.Errorf("categories[%d]: pattern cannot be empty", i)
		}
		if _, err := regexp.Compile(cat.Pattern); err != nil {
			return fmt.Errorf("categories[%d]: %w", i, err)
		}
	}

	return nil
}
