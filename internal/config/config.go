package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source kinds accepted in SourceConfig.Kind.
const (
	SourceKindHTTP   = "http"
	SourceKindBundle = "bundle"
)

// SourceConfig describes one remote candidate location for chapter files.
// Pattern placeholders: {folder}, {file}, {chapter}.
type SourceConfig struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Base    string `json:"base"`
	Pattern string `json:"pattern"`
}

// Config holds application configuration.
type Config struct {
	// PrimaryHost is the base URL serving per-chapter files ({folder}/{file}_{chapter}.json).
	// There is no built-in default; with no host configured only the bundle and seed are used.
	PrimaryHost string `json:"primary_host,omitempty"`

	// SecondaryPath is appended to PrimaryHost for whole-book files ({folder}/{file}.json).
	SecondaryPath string `json:"secondary_path,omitempty"`

	// BundleDir is the local directory holding whole-book files.
	// Relative paths are resolved against the base directory.
	BundleDir string `json:"bundle_dir,omitempty"`

	// Sources replaces the default primary/secondary/bundle list when non-empty.
	Sources []SourceConfig `json:"sources,omitempty"`

	// Offline forces network sources to be skipped.
	Offline bool `json:"offline,omitempty"`

	// ConnectivityProbe is a host:port dialed to decide whether the network is reachable.
	// Empty means assume online unless Offline is set.
	ConnectivityProbe string `json:"connectivity_probe,omitempty"`

	// FetchTimeoutSeconds bounds each remote candidate.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`

	// RequestsPerSecond throttles HTTP sources. 0 disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"`

	// PreviewVerseLimit is how many verses a direct reference returns.
	PreviewVerseLimit int `json:"preview_verse_limit"`

	// SearchResultLimit caps cache text search results.
	SearchResultLimit int `json:"search_result_limit"`

	// CacheSchemaVersion namespaces cache keys. Bumping it orphans older entries.
	CacheSchemaVersion string `json:"cache_schema_version"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// LogFormat is "text" or "json".
	LogFormat string `json:"log_format,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of tool type prefixes to disable entirely.
	// Known types: "verse", "book", "cache".
	DisabledTypes []string `json:"disabled_types,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SecondaryPath:       "books",
		BundleDir:           "bundle",
		FetchTimeoutSeconds: 10,
		PreviewVerseLimit:   5,
		SearchResultLimit:   15,
		CacheSchemaVersion:  "v2",
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// FetchTimeout returns FetchTimeoutSeconds as a duration.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ResolveBundleDir returns BundleDir resolved against baseDir.
func (c *Config) ResolveBundleDir(baseDir string) string {
	return ResolvePath(baseDir, c.BundleDir)
}

// ResolvePath joins a relative p onto baseDir. Absolute and empty paths are returned unchanged.
func ResolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// SourceList returns the configured sources, or the default primary/secondary/bundle trio.
func (c *Config) SourceList() []SourceConfig {
	if len(c.Sources) > 0 {
		return append([]SourceConfig(nil), c.Sources...)
	}

	secondary := ""
	if c.PrimaryHost != "" {
		secondary = strings.TrimRight(c.PrimaryHost, "/")
		if p := strings.Trim(c.SecondaryPath, "/"); p != "" {
			secondary += "/" + p
		}
	}

	return []SourceConfig{
		{Name: "primary", Kind: SourceKindHTTP, Base: c.PrimaryHost, Pattern: "{folder}/{file}_{chapter}.json"},
		{Name: "secondary", Kind: SourceKindHTTP, Base: secondary, Pattern: "{folder}/{file}.json"},
		{Name: "bundle", Kind: SourceKindBundle, Base: c.BundleDir, Pattern: "{folder}/{file}.json"},
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.verso.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.verso) and repo (.verso) directories.
// Repo config is found by walking upward from startDir to find the nearest .verso/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .verso/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".verso", "config.json")
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
		return nil, err
	}

	return cfg, nil
}

func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
// Sources is replaced wholesale since its order is significant.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.PrimaryHost = pickString(overlay.PrimaryHost, base.PrimaryHost)
	result.SecondaryPath = pickString(overlay.SecondaryPath, base.SecondaryPath)
	result.BundleDir = pickString(overlay.BundleDir, base.BundleDir)
	result.ConnectivityProbe = pickString(overlay.ConnectivityProbe, base.ConnectivityProbe)
	result.CacheSchemaVersion = pickString(overlay.CacheSchemaVersion, base.CacheSchemaVersion)
	result.LogLevel = pickString(overlay.LogLevel, base.LogLevel)
	result.LogFormat = pickString(overlay.LogFormat, base.LogFormat)

	result.FetchTimeoutSeconds = pickInt(overlay.FetchTimeoutSeconds, base.FetchTimeoutSeconds)
	result.PreviewVerseLimit = pickInt(overlay.PreviewVerseLimit, base.PreviewVerseLimit)
	result.SearchResultLimit = pickInt(overlay.SearchResultLimit, base.SearchResultLimit)
	result.DBMaxOpenConns = pickInt(overlay.DBMaxOpenConns, base.DBMaxOpenConns)
	result.DBMaxIdleConns = pickInt(overlay.DBMaxIdleConns, base.DBMaxIdleConns)

	result.RequestsPerSecond = overlay.RequestsPerSecond
	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = base.RequestsPerSecond
	}

	result.Sources = base.Sources
	if len(overlay.Sources) > 0 {
		result.Sources = overlay.Sources
	}

	// Booleans: overlay wins if true, else base
	result.Offline = base.Offline || overlay.Offline

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

func pickString(overlay, base string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func pickInt(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string(nil), a...), b...) {
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
