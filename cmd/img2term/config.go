package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Config holds defaults normally supplied by flags. Explicit flags take
// precedence over the file, the file over built-in defaults.
type Config struct {
	Size        string `yaml:"size"`
	ANSI        string `yaml:"ansi"`
	Palette     string `yaml:"palette"`
	ColorMethod string `yaml:"color-method"`
	Filter      string `yaml:"filter"`
	Compress    bool   `yaml:"compress"`
	Colors      int    `yaml:"colors"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "img2term", "config.yaml")
}

// loadConfig reads the YAML config at path, or the default location
// when path is empty. A missing file at the default location yields a
// zero config; an explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// stringSetting resolves a string option: an explicit flag wins, then
// the config file, then the flag's default value.
func stringSetting(c *cli.Context, name, fromConfig string) string {
	if c.IsSet(name) || fromConfig == "" {
		return c.String(name)
	}
	return fromConfig
}

// boolSetting resolves a boolean option with the same precedence as
// stringSetting.
func boolSetting(c *cli.Context, name string, fromConfig bool) bool {
	if c.IsSet(name) {
		return c.Bool(name)
	}
	return c.Bool(name) || fromConfig
}

// intSetting resolves an integer option, treating a zero config value
// as unset.
func intSetting(c *cli.Context, name string, fromConfig int) int {
	if c.IsSet(name) || fromConfig == 0 {
		return c.Int(name)
	}
	return fromConfig
}
