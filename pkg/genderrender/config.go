package genderrender

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains all configuration options for the engine
type Config struct {
	// CacheMaxSize is the maximum number of templates to cache. 0 disables caching.
	CacheMaxSize int `yaml:"cache_max_size"`
	// CacheTTL is the time-to-live for cached templates. 0 means no expiration.
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level"`
	// NounDataPath selects a noun dataset file instead of the embedded one.
	NounDataPath string `yaml:"noun_data_path"`
	// DisabledDiagnostics lists diagnostic kinds that are not reported, e.g. "noun-not-found".
	DisabledDiagnostics []string `yaml:"disabled_diagnostics"`
	// MaxParallelRenders bounds the goroutines of RenderBatch.
	MaxParallelRenders int `yaml:"max_parallel_renders"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CacheMaxSize:       100,
		CacheTTL:           0,
		LogLevel:           "info",
		MaxParallelRenders: 8,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// GENDER_RENDER_CACHE_MAX_SIZE
	if val := os.Getenv("GENDER_RENDER_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CacheMaxSize = size
		}
	}

	// GENDER_RENDER_CACHE_TTL
	if val := os.Getenv("GENDER_RENDER_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}

	// GENDER_RENDER_LOG_LEVEL
	if val := os.Getenv("GENDER_RENDER_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// GENDER_RENDER_NOUN_DATA
	if val := os.Getenv("GENDER_RENDER_NOUN_DATA"); val != "" {
		config.NounDataPath = val
	}

	// GENDER_RENDER_DISABLED_DIAGNOSTICS, comma separated
	if val := os.Getenv("GENDER_RENDER_DISABLED_DIAGNOSTICS"); val != "" {
		config.DisabledDiagnostics = splitList(val)
	}

	// GENDER_RENDER_MAX_PARALLEL_RENDERS
	if val := os.Getenv("GENDER_RENDER_MAX_PARALLEL_RENDERS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.MaxParallelRenders = n
		}
	}

	return config
}

// LoadConfigFile reads a YAML configuration file. Fields missing from the file keep
// their default values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WithContext(err, "read config", map[string]interface{}{"path": path})
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, WithContext(err, "parse config", map[string]interface{}{"path": path})
	}
	if err := config.Validate(); err != nil {
		return nil, WithContext(err, "validate config", map[string]interface{}{"path": path})
	}
	return config, nil
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides
	config.DisabledDiagnostics = append([]string(nil), overrides.DisabledDiagnostics...)

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.MaxParallelRenders == 0 {
		config.MaxParallelRenders = defaults.MaxParallelRenders
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.CacheMaxSize < 0 {
		return errors.New("cache max size cannot be negative")
	}

	if c.CacheTTL < 0 {
		return errors.New("cache TTL cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	for _, name := range c.DisabledDiagnostics {
		if _, err := ParseDiagnosticKind(name); err != nil {
			return fmt.Errorf("invalid disabled diagnostic: %w", err)
		}
	}

	if c.MaxParallelRenders <= 0 {
		return errors.New("max parallel renders must be positive")
	}

	return nil
}

// diagnosticSettings returns the settings described by DisabledDiagnostics.
// Unknown names are ignored; Validate reports them.
func (c *Config) diagnosticSettings() DiagnosticSettings {
	var s DiagnosticSettings
	for _, name := range c.DisabledDiagnostics {
		if k, err := ParseDiagnosticKind(name); err == nil {
			s = s.Disable(k)
		}
	}
	return s
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	configCopy.DisabledDiagnostics = append([]string(nil), globalConfig.DisabledDiagnostics...)
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// outside the lock: the logger reads the config
	UpdateLoggerFromConfig()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
