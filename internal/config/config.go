// Package config loads server settings from an optional YAML file with
// environment variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries everything the server binary needs to start.
type Config struct {
	Addr         string `yaml:"addr"`
	Theme        string `yaml:"theme"`
	ThemeVariant string `yaml:"theme_variant"`
	PageSize     int    `yaml:"page_size"`
	Renderer     string `yaml:"renderer"`
	TemplatesDir string `yaml:"templates_dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:     ":5000",
		Theme:    "formdeck",
		PageSize: 10,
		Renderer: "vanilla",
	}
}

// Load reads the YAML file at path when it exists, then applies FORMDECK_*
// environment overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if cfg.Addr == "" {
		cfg.Addr = ":5000"
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	if cfg.Renderer == "" {
		cfg.Renderer = "vanilla"
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Addr = getEnv("FORMDECK_ADDR", c.Addr)
	c.Theme = getEnv("FORMDECK_THEME", c.Theme)
	c.ThemeVariant = getEnv("FORMDECK_THEME_VARIANT", c.ThemeVariant)
	c.PageSize = getEnvInt("FORMDECK_PAGE_SIZE", c.PageSize)
	c.Renderer = getEnv("FORMDECK_RENDERER", c.Renderer)
	c.TemplatesDir = getEnv("FORMDECK_TEMPLATES_DIR", c.TemplatesDir)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
