// Package config loads the sitebuilder configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/campuseats/sitebuilder/internal/foundation/errors"
)

// Config represents the application configuration.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Paths  PathsConfig  `yaml:"paths"`
	Output OutputConfig `yaml:"output"`
}

// SiteConfig holds site-wide presentation fields.
type SiteConfig struct {
	Title   string `yaml:"title"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// PathsConfig locates the input files.
type PathsConfig struct {
	Restaurants string `yaml:"restaurants"`
	Homepage    string `yaml:"homepage"`
	Template    string `yaml:"template"`
}

// OutputConfig locates the generated tree.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// Defaults mirror the original data layout so a bare `sitebuilder build`
// works inside a checkout.
const (
	DefaultRestaurantsPath = "data/restaurants.jsonc"
	DefaultHomepagePath    = "data/homepage.jsonc"
	DefaultTemplatePath    = "templates/skeleton.html"
	DefaultOutputDir       = "docs"
)

// Load loads configuration from the specified file. A missing file is not an
// error: all-default configuration is a supported mode of operation.
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; existing env vars win.
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	// Expand environment variables in the YAML content before decoding.
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", configPath).Build()
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Site.Title == "" {
		cfg.Site.Title = "Restaurant Guide"
	}
	if cfg.Paths.Restaurants == "" {
		cfg.Paths.Restaurants = DefaultRestaurantsPath
	}
	if cfg.Paths.Homepage == "" {
		cfg.Paths.Homepage = DefaultHomepagePath
	}
	if cfg.Paths.Template == "" {
		cfg.Paths.Template = DefaultTemplatePath
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
}

// Scaffold writes a starter configuration file. Refuses to overwrite unless
// force is set.
func Scaffold(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}
	cfg := &Config{}
	applyDefaults(cfg)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal default config").Build()
	}
	header := fmt.Sprintf("# sitebuilder configuration\n# paths are relative to the working directory\n%s", data)
	if err := os.WriteFile(configPath, []byte(header), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryWrite, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
