package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// FileName is the config file looked up in the working directory.
const FileName = "stoic.json"

// Config holds application configuration.
type Config struct {
	// SourcePath is the book text file read by import.
	SourcePath string `json:"source_path,omitempty"`

	// DBPath is the SQLite database file the meditations table lives in.
	DBPath string `json:"db_path,omitempty"`

	// PreviewCount is how many parsed meditations import prints before loading.
	PreviewCount int `json:"preview_count,omitempty"`

	// PreviewChars truncates quote and context in the import preview.
	PreviewChars int `json:"preview_chars,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourcePath:   filepath.Join("data", "TheDailyStoic.txt"),
		DBPath:       "daily-stoic.db",
		PreviewCount: 3,
		PreviewChars: 100,
	}
}

// Load loads configuration from dir/stoic.json.
// Returns default config if the file doesn't exist.
// The file may contain comments and trailing commas (JSONC).
func Load(dir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(standardized, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.SourcePath = overlay.SourcePath
	if result.SourcePath == "" {
		result.SourcePath = base.SourcePath
	}

	result.DBPath = overlay.DBPath
	if result.DBPath == "" {
		result.DBPath = base.DBPath
	}

	result.PreviewCount = overlay.PreviewCount
	if result.PreviewCount == 0 {
		result.PreviewCount = base.PreviewCount
	}

	result.PreviewChars = overlay.PreviewChars
	if result.PreviewChars == 0 {
		result.PreviewChars = base.PreviewChars
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
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
