// Package config handles configuration for aicms.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/diogo/aicms/internal/models"
)

// Transcript backends
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// TranscriptConfig selects where the chat transcript of a session is kept
type TranscriptConfig struct {
	Backend       string `json:"backend"`
	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`
	// TTLSeconds bounds how long a session transcript survives after its last change.
	// File sessions older than this are pruned; redis keys expire.
	TTLSeconds int `json:"ttl_seconds"`
}

// TTL returns the transcript lifetime as a duration
func (t TranscriptConfig) TTL() time.Duration {
	return time.Duration(t.TTLSeconds) * time.Second
}

// Config represents the user configuration
type Config struct {
	// BaseURL is the origin serving /api/chat/ and /api/content/
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// Verbose enables debug level logging
	Verbose         bool             `json:"verbose"`
	LogFile         string           `json:"log_file,omitempty"`
	CopyToClipboard bool             `json:"copy_to_clipboard"`
	TUITheme        string           `json:"tui_theme,omitempty"`
	Markdown        MarkdownConfig   `json:"markdown,omitempty"`
	Transcript      TranscriptConfig `json:"transcript"`
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:         models.DefaultBaseURL,
		TimeoutSeconds:  60,
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		Markdown:        DefaultMarkdownConfig(),
		Transcript: TranscriptConfig{
			Backend:    BackendFile,
			RedisAddr:  "127.0.0.1:6379",
			TTLSeconds: 12 * 60 * 60, // 12 hours
		},
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".aicms"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path, from config or the default location
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := EnsureConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "aicms.log"), nil
}

// GetSessionsDir returns the directory holding file-backed transcripts
func GetSessionsDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "sessions"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = DefaultConfig()
		applyEnv(&cfg)
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides file values with AICMS_* environment variables
func applyEnv(cfg *Config) {
	if v := os.Getenv("AICMS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("AICMS_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("AICMS_TRANSCRIPT_BACKEND"); v != "" {
		cfg.Transcript.Backend = v
	}
	if v := os.Getenv("AICMS_REDIS_ADDR"); v != "" {
		cfg.Transcript.RedisAddr = v
	}
	if v := os.Getenv("AICMS_REDIS_PASSWORD"); v != "" {
		cfg.Transcript.RedisPassword = v
	}
	if v := os.Getenv("AICMS_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Transcript.RedisDB = n
		}
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0o600: the file may hold the redis password
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for values the client cannot work with
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", c.BaseURL)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid timeout_seconds %d: must be positive", c.TimeoutSeconds)
	}
	switch c.Transcript.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.Transcript.RedisAddr == "" {
			return fmt.Errorf("transcript backend redis requires redis_addr")
		}
	default:
		return fmt.Errorf("unknown transcript backend %q (want %s, %s or %s)",
			c.Transcript.Backend, BackendFile, BackendMemory, BackendRedis)
	}
	if c.Transcript.TTLSeconds < 0 {
		return fmt.Errorf("invalid transcript ttl_seconds %d", c.Transcript.TTLSeconds)
	}
	return nil
}

// AvailableBackends returns the transcript backend names
func AvailableBackends() []string {
	return []string{BackendFile, BackendMemory, BackendRedis}
}
