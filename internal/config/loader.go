package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/savoirtech/ctop/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".ctop.yaml"
	// GlobalConfigDir is the directory for the user config, relative to home.
	GlobalConfigDir = ".config/ctop"
	// GlobalConfigFile is the user config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides (CTOP_INTERVAL, CTOP_SORT, ...).
	EnvPrefix = "CTOP"
	// DefaultDomain is the management domain routes are looked up in.
	DefaultDomain = "routing"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the file/env configuration of ctop. Command-line flags are
// applied on top of it by the CLI.
type Config struct {
	// Interval is the refresh interval in milliseconds.
	Interval int `yaml:"interval" mapstructure:"interval"`

	// Sort is the sort column name.
	Sort string `yaml:"sort" mapstructure:"sort"`

	// Reverse sorts descending.
	Reverse bool `yaml:"reverse" mapstructure:"reverse"`

	// Color is auto, always or never.
	Color string `yaml:"color" mapstructure:"color"`

	// Domain is the management domain of route entries.
	Domain string `yaml:"domain" mapstructure:"domain"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval: DefaultIntervalMillis,
		Sort:     ExchangesTotal.String(),
		Reverse:  false,
		Color:    ColorAuto,
		Domain:   DefaultDomain,
	}
}

// NewViper returns a viper instance with defaults and CTOP_ environment
// overrides wired up.
func NewViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("interval", d.Interval)
	v.SetDefault("sort", d.Sort)
	v.SetDefault("reverse", d.Reverse)
	v.SetDefault("color", d.Color)
	v.SetDefault("domain", d.Domain)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .ctop.yaml in current directory
// 3. ~/.config/ctop/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// Read reads the config file at path (if any) into v and returns the merged
// configuration without validating it. Callers that apply their own
// overrides validate the result themselves.
func Read(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML: "+path)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+describeSource(path))
	}
	return cfg, nil
}

// Load is Read followed by Validate.
func Load(v *viper.Viper, path string) (*Config, error) {
	cfg, err := Read(v, path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadDefault finds and reads the config, honoring an explicit path. The
// result is not validated.
func ReadDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	return Read(NewViper(), path)
}

// LoadDefault finds and loads the config, honoring an explicit path.
func LoadDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	return Load(NewViper(), path)
}

// Validate checks every value in the config.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %d", c.Interval),
			"interval is in milliseconds and must be greater than 0")
	}
	if _, err := ParseColumn(c.Sort); err != nil {
		return err
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid color mode: %s", c.Color),
			"Use one of: auto, always, never")
	}
	if strings.TrimSpace(c.Domain) == "" {
		return errors.New(errors.ErrConfig,
			"Management domain is empty",
			"Remove the domain setting or set it to a non-empty name")
	}
	return nil
}

// Refresh converts the config into the loop's RefreshConfig.
func (c *Config) Refresh() (RefreshConfig, error) {
	return NewRefreshConfig(c.Interval, c.Sort, c.Reverse)
}

func describeSource(path string) string {
	if path == "" {
		return "your CTOP_ environment variables"
	}
	return path + " and your CTOP_ environment variables"
}
