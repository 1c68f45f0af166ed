package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when no config file exists in the search path
var ErrConfigNotFound = errors.New("config file not found in current directory or home directory")

const configBaseName = "onboarding_config"

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" validate:"min=0"`
}

// PasteConfig controls how pasted rosters are split
type PasteConfig struct {
	ExtendedDelimiters bool `yaml:"extendedDelimiters"`
	SkipHeaderRows     bool `yaml:"skipHeaderRows"`
}

// ExportConfig controls the exported document
type ExportConfig struct {
	FileName string `yaml:"fileName" validate:"required,endswith=.json"`
}

// SessionConfig controls in-memory wizard sessions
type SessionConfig struct {
	TTL     time.Duration `yaml:"ttl" validate:"min=0"`
	Variant string        `yaml:"variant" validate:"omitempty,oneof=weekly assignments"`
	Demo    bool          `yaml:"demo"`
}

// Holiday is a recurring non-working day excluded from planned shifts
type Holiday struct {
	Name  string `yaml:"name" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	Server     ServerConfig  `yaml:"server"`
	Paste      PasteConfig   `yaml:"paste"`
	Export     ExportConfig  `yaml:"export"`
	Session    SessionConfig `yaml:"session"`
	SeedGroups []string      `yaml:"seedGroups,omitempty" validate:"dive,required"`
	Holidays   []Holiday     `yaml:"holidays,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no file overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Export: ExportConfig{
			FileName: "ingreso_geovictoria.json",
		},
		Session: SessionConfig{
			TTL:     2 * time.Hour,
			Variant: "weekly",
		},
	}
}

// Load loads and validates the configuration from onboarding_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv prefers onboarding_config.<env>.yaml and falls back to onboarding_config.yaml
func LoadWithEnv(env string) (*Config, error) {
	var names []string
	if env != "" {
		names = append(names, fmt.Sprintf("%s.%s.yaml", configBaseName, env))
	}
	names = append(names, configBaseName+".yaml")

	for _, name := range names {
		path, err := findConfigFile(name)
		if errors.Is(err, ErrConfigNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		return LoadFromPath(path)
	}
	return nil, ErrConfigNotFound
}

// LoadFromPath loads and validates the configuration from a specific path.
// Keys missing from the file keep their Default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, h := range cfg.Holidays {
		if _, err := rrule.StrToROption(h.RRule); err != nil {
			return fmt.Errorf("invalid rrule in holidays[%d]: %w", i, err)
		}
	}

	seen := make(map[string]bool, len(cfg.SeedGroups))
	for i, g := range cfg.SeedGroups {
		key := strings.ToLower(strings.TrimSpace(g))
		if seen[key] {
			return fmt.Errorf("duplicate group in seedGroups[%d]: %q", i, g)
		}
		seen[key] = true
	}

	return nil
}

// Addr returns the host:port the API listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// findConfigFile searches for name in the current directory and home directory
func findConfigFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", ErrConfigNotFound
}
