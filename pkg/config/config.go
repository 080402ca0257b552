// Package config provides configuration management for boardman. It handles
// loading and validating the YAML configuration file and provides sensible
// defaults when no file exists.
package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/glorpus-work/boardman/pkg/errors"
	"github.com/glorpus-work/boardman/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// IndexURL is the trusted default package index source.
	IndexURL string `yaml:"index_url"`

	// AdditionalURLs holds extra index sources as a comma-separated list.
	// Packages from these sources are never marked trusted.
	AdditionalURLs string `yaml:"additional_urls,omitempty"`

	// DataDir is the root of the content store.
	DataDir string `yaml:"data_dir,omitempty"`

	// KeyringPath points at the GPG keyring used to verify index signatures.
	KeyringPath string `yaml:"keyring_path,omitempty"`

	// TrustAll runs lifecycle scripts of untrusted contributions. Off by
	// default; the install command threads it through explicitly.
	TrustAll bool `yaml:"trust_all,omitempty"`

	// Auth holds per-host credentials for private mirrors, keyed by the
	// host name of the source URL.
	Auth map[string]*AuthConfig `yaml:"auth,omitempty"`

	// Settings holds general application settings.
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent,omitempty"`
	LogLevel    string        `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultIndexURL is the trusted package index source.
	DefaultIndexURL = "https://downloads.glorpus.work/boardman/package_index.json"

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultUserAgent identifies boardman to index and archive servers.
	DefaultUserAgent = "boardman"

	// KeyringFileName is the keyring file inside the data directory.
	KeyringFileName = "keyring.gpg"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	dataDir, err := getUserDataDir()
	if err != nil {
		// Fallback to current directory if we can't determine user data dir
		dataDir = "."
	}
	dataDir = filepath.Join(dataDir, "boardman")

	return &Config{
		IndexURL:    DefaultIndexURL,
		DataDir:     dataDir,
		KeyringPath: filepath.Join(dataDir, KeyringFileName),
		Settings: Settings{
			HTTPTimeout: DefaultHTTPTimeout,
			UserAgent:   DefaultUserAgent,
			LogLevel:    "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to encode config")
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to replace config file")
	}

	return nil
}

// IndexURLs returns every configured index source in first-occurrence order:
// the trusted default first, then the additional URLs, duplicates dropped.
func (c *Config) IndexURLs() []string {
	urls := make([]string, 0, 4)
	seen := make(map[string]bool)

	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || seen[raw] {
			return
		}
		seen[raw] = true
		urls = append(urls, raw)
	}

	add(c.IndexURL)
	for _, raw := range strings.Split(c.AdditionalURLs, ",") {
		add(raw)
	}
	return urls
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	for _, raw := range c.IndexURLs() {
		if err := validateURL(raw); err != nil {
			return err
		}
	}
	if c.Settings.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout cannot be negative")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Settings.LogLevel)] {
		return fmt.Errorf("invalid log level: %s", c.Settings.LogLevel)
	}
	return nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidURL, raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.Wrapf(errors.ErrInvalidURL, "unsupported scheme in %s", raw)
	}
	if parsed.Host == "" {
		return errors.Wrapf(errors.ErrInvalidURL, "missing host in %s", raw)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "boardman", "config.yaml"), nil
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.IndexURL == "" {
		c.IndexURL = defaults.IndexURL
	}
	if c.DataDir == "" {
		c.DataDir = defaults.DataDir
	}
	if c.KeyringPath == "" {
		c.KeyringPath = filepath.Join(c.DataDir, KeyringFileName)
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = defaults.Settings.UserAgent
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

func getUserDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}

	if runtime.GOOS == "linux" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(homeDir, ".local", "share"), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return configDir, nil
}
