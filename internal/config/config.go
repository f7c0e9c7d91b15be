package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultBackendURL = "https://interview-mock-backend.onrender.com/api/v1"
	DefaultOpenAIURL  = "https://api.openai.com/v1/chat/completions"
	DefaultModel      = "gpt-4o-mini"
)

// ErrMissingToken is returned by Validate when no OpenAI token is available.
var ErrMissingToken = errors.New("OPENAI_TOKEN is not set (environment or env file)")

// Config represents the tonecheck configuration.
type Config struct {
	BackendURL  string `json:"backendUrl"`
	OpenAIURL   string `json:"openaiUrl"`
	Model       string `json:"model"`
	Search      string `json:"search,omitempty"`
	ClientLimit int    `json:"clientLimit"`
	TaskLimit   int    `json:"taskLimit"`
	Concurrency int    `json:"concurrency"`
	Format      string `json:"format"`
	EnvFile     string `json:"envFile"`

	// Token is only ever read from the environment.
	Token string `json:"-"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		BackendURL:  DefaultBackendURL,
		OpenAIURL:   DefaultOpenAIURL,
		Model:       DefaultModel,
		ClientLimit: 5,
		TaskLimit:   10,
		Format:      "text",
		EnvFile:     ".env",
	}
}

// ConfigDir returns the platform-appropriate config directory for tonecheck.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tonecheck"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tonecheck"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tonecheck"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "tonecheck"), nil
	default:
		return filepath.Join(home, ".config", "tonecheck"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)

	// The env file location itself may come from a flag.
	if v, ok := overrides["envFile"]; ok && v != "" {
		cfg.EnvFile = v
	}
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	return cfg, nil
}

// Validate checks that the config can drive a full run.
func (c Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.ClientLimit <= 0 {
		return fmt.Errorf("clientLimit must be positive, got %d", c.ClientLimit)
	}
	if c.TaskLimit <= 0 {
		return fmt.Errorf("taskLimit must be positive, got %d", c.TaskLimit)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// loadEnvFile populates the process environment from path. Variables already
// set are left alone and a missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

func mergeFile(dst *Config, src Config) {
	if src.BackendURL != "" {
		dst.BackendURL = src.BackendURL
	}
	if src.OpenAIURL != "" {
		dst.OpenAIURL = src.OpenAIURL
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Search != "" {
		dst.Search = src.Search
	}
	if src.ClientLimit > 0 {
		dst.ClientLimit = src.ClientLimit
	}
	if src.TaskLimit > 0 {
		dst.TaskLimit = src.TaskLimit
	}
	if src.Concurrency > 0 {
		dst.Concurrency = src.Concurrency
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.EnvFile != "" {
		dst.EnvFile = src.EnvFile
	}
}

func mergeEnv(cfg *Config) error {
	cfg.Token = os.Getenv("OPENAI_TOKEN")
	if v := os.Getenv("TONECHECK_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("TONECHECK_OPENAI_URL"); v != "" {
		cfg.OpenAIURL = v
	}
	if v := os.Getenv("TONECHECK_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TONECHECK_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("TONECHECK_CLIENT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TONECHECK_CLIENT_LIMIT must be an integer: %w", err)
		}
		cfg.ClientLimit = n
	}
	if v := os.Getenv("TONECHECK_TASK_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TONECHECK_TASK_LIMIT must be an integer: %w", err)
		}
		cfg.TaskLimit = n
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" || key == "envFile" {
			continue
		}
		if err := SetField(cfg, key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "backendUrl":
		cfg.BackendURL = value
	case "openaiUrl":
		cfg.OpenAIURL = value
	case "model":
		cfg.Model = value
	case "search":
		cfg.Search = value
	case "format":
		cfg.Format = value
	case "envFile":
		cfg.EnvFile = value
	case "clientLimit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("clientLimit must be an integer: %w", err)
		}
		cfg.ClientLimit = n
	case "taskLimit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("taskLimit must be an integer: %w", err)
		}
		cfg.TaskLimit = n
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("concurrency must be an integer: %w", err)
		}
		cfg.Concurrency = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
