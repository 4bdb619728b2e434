package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// MaxInputChars is the maximum character count for a single input text.
	MaxInputChars int `json:"max_input_chars"`

	// MaxBatchItems is the maximum number of texts in one batch conversion.
	MaxBatchItems int `json:"max_batch_items"`

	// HistoryDisabled stops conversions from being recorded.
	HistoryDisabled bool `json:"history_disabled,omitempty"`

	// HistoryRetentionDays purges records older than this on startup. 0 keeps everything.
	HistoryRetentionDays int `json:"history_retention_days,omitempty"`

	WebBind string `json:"web_bind,omitempty"`
	WebPort int    `json:"web_port,omitempty"`

	// AllowedOrigins lists origins permitted to call /api/convert cross-origin.
	// Empty means same-origin only.
	AllowedOrigins []string `json:"allowed_origins,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// LogDir is where numwords.log is written. Empty means the base dir.
	LogDir string `json:"log_dir,omitempty"`

	// CacheSize bounds the conversion memo. 0 after merge means the default;
	// use a negative value to disable caching.
	CacheSize       int `json:"cache_size,omitempty"`
	CacheTTLSeconds int `json:"cache_ttl_seconds,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of type names to disable entirely.
	// Known types: "convert", "history". Unknown type names are logged as warnings.
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxInputChars:   10000,
		MaxBatchItems:   100,
		WebBind:         "127.0.0.1",
		WebPort:         8642,
		LogLevel:        "info",
		CacheSize:       512,
		CacheTTLSeconds: 600,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.numwords.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.numwords) and repo (.numwords) directories.
// Repo config is found by walking upward from startDir.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	cfg := Merge(Merge(DefaultConfig(), global), repo)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindRepoConfig walks upward from startDir to find the nearest .numwords/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".numwords", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw returns a zero-valued config (not defaults) if the file doesn't exist.
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return cfg, nil
}

func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{
		MaxInputChars:        mergeInt(base.MaxInputChars, overlay.MaxInputChars),
		MaxBatchItems:        mergeInt(base.MaxBatchItems, overlay.MaxBatchItems),
		HistoryRetentionDays: mergeInt(base.HistoryRetentionDays, overlay.HistoryRetentionDays),
		WebBind:              mergeString(base.WebBind, overlay.WebBind),
		WebPort:              mergeInt(base.WebPort, overlay.WebPort),
		LogLevel:             mergeString(base.LogLevel, overlay.LogLevel),
		LogDir:               mergeString(base.LogDir, overlay.LogDir),
		CacheSize:            mergeInt(base.CacheSize, overlay.CacheSize),
		CacheTTLSeconds:      mergeInt(base.CacheTTLSeconds, overlay.CacheTTLSeconds),
		DBMaxOpenConns:       mergeInt(base.DBMaxOpenConns, overlay.DBMaxOpenConns),
		DBMaxIdleConns:       mergeInt(base.DBMaxIdleConns, overlay.DBMaxIdleConns),
	}

	// Booleans: overlay wins if true, else base
	result.HistoryDisabled = base.HistoryDisabled || overlay.HistoryDisabled

	result.AllowedOrigins = mergeStringSlice(base.AllowedOrigins, overlay.AllowedOrigins)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	if c.MaxInputChars < 0 {
		return fmt.Errorf("max_input_chars must not be negative: %d", c.MaxInputChars)
	}
	if c.MaxBatchItems < 0 {
		return fmt.Errorf("max_batch_items must not be negative: %d", c.MaxBatchItems)
	}
	if c.HistoryRetentionDays < 0 {
		return fmt.Errorf("history_retention_days must not be negative: %d", c.HistoryRetentionDays)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache_ttl_seconds must not be negative: %d", c.CacheTTLSeconds)
	}
	if c.WebPort < 0 || c.WebPort > 65535 {
		return fmt.Errorf("web_port out of range: %d", c.WebPort)
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return fmt.Errorf("db connection limits must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level: %q", s)
	}
}

func mergeInt(base, overlay int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

func mergeString(base, overlay string) string {
	if strings.TrimSpace(overlay) != "" {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
