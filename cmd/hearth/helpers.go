package main

import (
	"path/filepath"
	"time"

	"github.com/hearthlabs/hearth/internal/config"
	"github.com/hearthlabs/hearth/internal/hass"
	"github.com/hearthlabs/hearth/internal/match"
)

// loadConfig loads the config from --config or the default location and
// makes sure the state directories exist.
func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = filepath.Join(config.Default().BaseDir, "config.yaml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *hass.Client {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	return hass.NewClient(cfg.Server.URL, cfg.ResolveToken(), timeout, nil)
}

func thresholdsFrom(cfg *config.Config) match.Thresholds {
	return match.Thresholds{
		Base:             cfg.Matcher.BaseThreshold,
		Ambiguous:        cfg.Matcher.AmbiguousThreshold,
		DomainBonus:      cfg.Matcher.DomainBonus,
		CompetitiveRatio: cfg.Matcher.CompetitiveRatio,
		ShortWords:       cfg.Matcher.ShortCommandWords,
	}
}
