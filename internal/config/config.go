// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath        = "config.toml"
	DefaultHTTPAddr          = ":8080"
	DefaultRequestsPerSecond = 2.0
	DefaultBurst             = 1
	DefaultTimeoutSeconds    = 10
	DefaultSQLitePath        = "data/contacts.db"
)

// Directory backend names accepted in [directory].backends.
const (
	BackendDiscord  = "discord"
	BackendContacts = "contacts"
	BackendStatic   = "static"
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
	Discord   DiscordConfig   `toml:"discord"`
	Directory DirectoryConfig `toml:"directory"`
	Resolver  ResolverConfig  `toml:"resolver"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP server listen address.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DiscordConfig holds the bot credentials and API pacing for guild member search.
type DiscordConfig struct {
	BotToken          string  `toml:"bot_token"`
	GuildID           string  `toml:"guild_id"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// Timeout bounds a single resolution, directory lookup included.
func (c DiscordConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DirectoryConfig selects the directory backends consulted for name lookups, in order.
type DirectoryConfig struct {
	Backends   []string `toml:"backends"`
	StaticPath string   `toml:"static_path"`
	SQLitePath string   `toml:"sqlite_path"`
	BotID      string   `toml:"bot_id"`
}

// Enabled reports whether backend is listed.
func (c DirectoryConfig) Enabled(backend string) bool {
	for _, b := range c.Backends {
		if strings.EqualFold(strings.TrimSpace(b), backend) {
			return true
		}
	}
	return false
}

// ResolverConfig holds resolution defaults (default_kind = "user" | "channel" | "").
type ResolverConfig struct {
	DefaultKind string `toml:"default_kind"`
}

// Load reads and parses the TOML config file at path and applies default values for missing fields.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Discord: DiscordConfig{
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
			TimeoutSeconds:    DefaultTimeoutSeconds,
		},
		Directory: DirectoryConfig{
			Backends:   []string{BackendDiscord},
			SQLitePath: DefaultSQLitePath,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
