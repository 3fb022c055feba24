// Package config loads the hearth YAML configuration with sensible defaults
// for every field the file omits.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	URL            string `yaml:"url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type MatcherConfig struct {
	BaseThreshold      int     `yaml:"base_threshold"`
	AmbiguousThreshold int     `yaml:"ambiguous_threshold"`
	DomainBonus        int     `yaml:"domain_bonus"`
	CompetitiveRatio   float64 `yaml:"competitive_ratio"`
	ShortCommandWords  int     `yaml:"short_command_words"`
}

type ClimateConfig struct {
	DefaultMode string `yaml:"default_mode"`
}

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Matcher     MatcherConfig     `yaml:"matcher"`
	Climate     ClimateConfig     `yaml:"climate"`
	Defaults    map[string]string `yaml:"defaults"`
	ColorLights []string          `yaml:"color_lights"`
	BaseDir     string            `yaml:"-"`
}

func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Server: ServerConfig{
			URL:            "http://homeassistant.local:8123",
			TimeoutSeconds: 10,
		},
		Matcher: MatcherConfig{
			BaseThreshold:      50,
			AmbiguousThreshold: 70,
			DomainBonus:        30,
			CompetitiveRatio:   0.85,
			ShortCommandWords:  1,
		},
		Climate: ClimateConfig{
			DefaultMode: "heat",
		},
		BaseDir: filepath.Join(home, ".hearth"),
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Ensure defaults for zero values
	if cfg.Server.URL == "" {
		cfg.Server.URL = "http://homeassistant.local:8123"
	}
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = 10
	}
	if cfg.Matcher.BaseThreshold == 0 {
		cfg.Matcher.BaseThreshold = 50
	}
	if cfg.Matcher.AmbiguousThreshold == 0 {
		cfg.Matcher.AmbiguousThreshold = 70
	}
	if cfg.Matcher.DomainBonus == 0 {
		cfg.Matcher.DomainBonus = 30
	}
	if cfg.Matcher.CompetitiveRatio == 0 {
		cfg.Matcher.CompetitiveRatio = 0.85
	}
	if cfg.Matcher.ShortCommandWords == 0 {
		cfg.Matcher.ShortCommandWords = 1
	}
	if cfg.Climate.DefaultMode == "" {
		cfg.Climate.DefaultMode = "heat"
	}
	if cfg.BaseDir == "" {
		home, _ := os.UserHomeDir()
		cfg.BaseDir = filepath.Join(home, ".hearth")
	}

	return cfg, nil
}

// ResolveToken returns the access token for the Home Assistant API.
// The HEARTH_TOKEN environment variable wins over the config file, and a
// "$VAR" value in the file is resolved from the environment.
func (c *Config) ResolveToken() string {
	if env := os.Getenv("HEARTH_TOKEN"); env != "" {
		return env
	}
	if strings.HasPrefix(c.Server.Token, "$") {
		return os.Getenv(strings.TrimPrefix(c.Server.Token, "$"))
	}
	return c.Server.Token
}

func (c *Config) CachePath() string {
	return filepath.Join(c.BaseDir, "entities.yaml")
}

func (c *Config) HistoryPath() string {
	return filepath.Join(c.BaseDir, "history", "history.db")
}

func (c *Config) DebugStatePath() string {
	return filepath.Join(c.BaseDir, ".debug_state")
}

func (c *Config) EnsureDirs() error {
	dirs := []string{
		c.BaseDir,
		filepath.Join(c.BaseDir, "history"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
