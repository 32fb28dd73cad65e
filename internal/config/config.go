// Package config loads lattice settings from defaults, an optional YAML file
// and LATTICE_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/lattice/internal/logging"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	Conway  ConwayConfig  `mapstructure:"conway"`
	Cups    CupsConfig    `mapstructure:"cups"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type ConwayConfig struct {
	Cycles     int `mapstructure:"cycles"`
	Dimensions int `mapstructure:"dimensions"`
}

type CupsConfig struct {
	Moves int `mapstructure:"moves"`
	Total int `mapstructure:"total"`
}

// Defaults returns the built-in settings as a nested map, the shape a YAML
// file decodes into.
func Defaults() map[string]any {
	return map[string]any{
		"log": map[string]any{
			"level":  "info",
			"format": "text",
		},
		"store": map[string]any{
			"backend": BackendFile,
			"dir":     ".lattice/snapshots",
			"redis": map[string]any{
				"addr":     "localhost:6379",
				"password": "",
				"db":       0,
				"prefix":   "lattice:",
				"ttl":      "0s",
				"lock_ttl": "30s",
			},
		},
		"server": map[string]any{
			"addr": ":8080",
		},
		"conway": map[string]any{
			"cycles":     6,
			"dimensions": 3,
		},
		"cups": map[string]any{
			"moves": 100,
			"total": 0,
		},
	}
}

// envKeys maps environment variables to their nested key path.
var envKeys = map[string][]string{
	"LATTICE_LOG_LEVEL":            {"log", "level"},
	"LATTICE_LOG_FORMAT":           {"log", "format"},
	"LATTICE_STORE_BACKEND":        {"store", "backend"},
	"LATTICE_STORE_DIR":            {"store", "dir"},
	"LATTICE_STORE_REDIS_ADDR":     {"store", "redis", "addr"},
	"LATTICE_STORE_REDIS_PASSWORD": {"store", "redis", "password"},
	"LATTICE_STORE_REDIS_DB":       {"store", "redis", "db"},
	"LATTICE_STORE_REDIS_PREFIX":   {"store", "redis", "prefix"},
	"LATTICE_STORE_REDIS_TTL":      {"store", "redis", "ttl"},
	"LATTICE_STORE_REDIS_LOCK_TTL": {"store", "redis", "lock_ttl"},
	"LATTICE_SERVER_ADDR":          {"server", "addr"},
	"LATTICE_CONWAY_CYCLES":        {"conway", "cycles"},
	"LATTICE_CONWAY_DIMENSIONS":    {"conway", "dimensions"},
	"LATTICE_CUPS_MOVES":           {"cups", "moves"},
	"LATTICE_CUPS_TOTAL":           {"cups", "total"},
}

// Load builds a Config. An empty path skips the file.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	raw := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		var file map[string]any
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		merge(raw, file)
	}

	for _, env := range slices.Sorted(maps.Keys(envKeys)) {
		if v, ok := lookup(env); ok {
			set(raw, envKeys[env], v)
		}
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge copies src into dst, descending into maps present on both sides.
func merge(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if cur, isMap := dst[k].(map[string]any); ok && isMap {
			merge(cur, sub)
			continue
		}
		dst[k] = v
	}
}

func set(m map[string]any, path []string, v string) {
	for _, k := range path[:len(path)-1] {
		sub, ok := m[k].(map[string]any)
		if !ok {
			sub = map[string]any{}
			m[k] = sub
		}
		m = sub
	}
	m[path[len(path)-1]] = v
}

// Validate rejects settings no command could run with.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch strings.ToLower(c.Store.Backend) {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if d := c.Conway.Dimensions; d < domain.MinDimensions || d > domain.MaxDimensions {
		return fmt.Errorf("config: conway dimensions %d outside [%d, %d]", d, domain.MinDimensions, domain.MaxDimensions)
	}
	if c.Conway.Cycles < 0 || c.Cups.Moves < 0 || c.Cups.Total < 0 {
		return fmt.Errorf("config: cycles, moves and total must not be negative")
	}
	return nil
}
