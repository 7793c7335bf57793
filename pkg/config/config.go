// Package config loads blockgraph settings from a TOML file.
//
// A file may contain any subset of three tables; keys that are absent keep
// their defaults:
//
//	[diagram]
//	block_width = 240
//	font_size = 9
//
//	[cache]
//	dir = "/var/cache/blockgraph"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "blockgraph"
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blockgraph/pkg/errors"
	"github.com/matzehuels/blockgraph/pkg/render/diagram"
)

// Defaults for the non-diagram tables.
const (
	DefaultTTL        = 7 * 24 * time.Hour
	DefaultAddr       = ":8080"
	DefaultDatabase   = "blockgraph"
	DefaultRenderTime = 30 * time.Second
)

// Config is the full settings tree.
type Config struct {
	Diagram diagram.Config `toml:"diagram"`
	Cache   Cache          `toml:"cache"`
	Server  Server         `toml:"server"`
}

// Cache selects and tunes the artifact cache. RedisAddr wins over Dir.
type Cache struct {
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
	Disabled  bool     `toml:"disabled"`
}

// Server configures `blockgraph serve`. Without MongoURI renders are kept
// in a file store under StoreDir.
type Server struct {
	Addr          string   `toml:"addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	StoreDir      string   `toml:"store_dir"`
	RenderTimeout Duration `toml:"render_timeout"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses strings such as "90s" or "24h".
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Diagram: diagram.DefaultConfig(),
		Cache:   Cache{TTL: Duration{DefaultTTL}},
		Server: Server{
			Addr:          DefaultAddr,
			MongoDatabase: DefaultDatabase,
			RenderTimeout: Duration{DefaultRenderTime},
		},
	}
}

// Load reads path on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg and validates the result. Unknown keys
// are rejected so typos do not pass silently.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks every table.
func (c Config) Validate() error {
	if err := c.Diagram.Validate(); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Server.RenderTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server render_timeout must not be negative")
	}
	return nil
}
