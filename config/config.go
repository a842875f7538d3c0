// ABOUTME: Optional YAML configuration for flowtrace: extra component types, server address, path limit.
// ABOUTME: Resolves the default file under XDG_CONFIG_HOME and validates with go-playground/validator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/2389-research/flowtrace/diagram"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up inside the config directory.
const FileName = "config.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Server holds the HTTP listener settings.
type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`
}

// Config is the on-disk configuration.
type Config struct {
	// Types are registered in addition to the built-in component types, or
	// instead of them when ReplaceDefaults is set.
	Types           []diagram.ComponentType `yaml:"types" validate:"dive"`
	ReplaceDefaults bool                    `yaml:"replace_defaults"`
	Server          Server                  `yaml:"server"`
	MaxPaths        int                     `yaml:"max_paths" validate:"min=0"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{Host: "127.0.0.1", Port: 2389},
	}
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Registry builds the component registry described by the config.
func (c Config) Registry() *diagram.Registry {
	if c.ReplaceDefaults {
		return diagram.NewRegistry(c.Types...)
	}
	return diagram.DefaultRegistry().Extend(c.Types...)
}

// Validate checks field constraints and rejects duplicate type keys.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.ReplaceDefaults && len(c.Types) == 0 {
		return fmt.Errorf("%w: replace_defaults requires at least one type", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Types))
	for _, t := range c.Types {
		if seen[t.Key] {
			return fmt.Errorf("%w: duplicate type key %q", ErrInvalid, t.Key)
		}
		seen[t.Key] = true
	}
	return nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config at path. An empty path means the default location,
// where a missing file yields Default(). An explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultDir returns the flowtrace config directory. It checks
// XDG_CONFIG_HOME first, then falls back to ~/.config/flowtrace.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "flowtrace"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "flowtrace"), nil
}

// DefaultPath returns the path of the default config file.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// formatValidationError reports the first failing field in a readable form.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for _, e := range verrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", ErrInvalid, field)
		case "min":
			return fmt.Errorf("%w: %s must be at least %s", ErrInvalid, field, e.Param())
		case "max":
			return fmt.Errorf("%w: %s must not exceed %s", ErrInvalid, field, e.Param())
		case "alpha":
			return fmt.Errorf("%w: %s must contain only letters", ErrInvalid, field)
		default:
			return fmt.Errorf("%w: %s failed %s", ErrInvalid, field, e.Tag())
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
