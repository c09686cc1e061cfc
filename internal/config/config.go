package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Rule struct {
	Tag    string   `yaml:"tag" json:"tag"`
	Weight int      `yaml:"weight" json:"weight"`
	Any    []string `yaml:"any" json:"any"`
}

type Penalty struct {
	Reason string   `yaml:"reason" json:"reason"`
	Weight int      `yaml:"weight" json:"weight"`
	Any    []string `yaml:"any" json:"any"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Backend struct {
		BaseURL       string `yaml:"base_url" json:"base_url"`
		OAuthClientID string `yaml:"oauth_client_id" json:"oauth_client_id"`
	} `yaml:"backend" json:"backend"`

	// Freshness windows per cached resource, in seconds.
	Cache struct {
		FormInfoSeconds      int `yaml:"form_info_seconds" json:"form_info_seconds"`
		FilterOptionsSeconds int `yaml:"filter_options_seconds" json:"filter_options_seconds"`
		DashboardSeconds     int `yaml:"dashboard_seconds" json:"dashboard_seconds"`
		CuratedSeconds       int `yaml:"curated_seconds" json:"curated_seconds"`
		DeadlineSoonSeconds  int `yaml:"deadline_soon_seconds" json:"deadline_soon_seconds"`
	} `yaml:"cache" json:"cache"`

	// Local position-matching rules; scores annotate lists, nothing more.
	Matching struct {
		Enabled    bool      `yaml:"enabled" json:"enabled"`
		SkillRules []Rule    `yaml:"skill_rules" json:"skill_rules"`
		TitleRules []Rule    `yaml:"title_rules" json:"title_rules"`
		Penalties  []Penalty `yaml:"penalties" json:"penalties"`
	} `yaml:"matching" json:"matching"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.Backend.BaseURL = "http://localhost:8080"
	cfg.Cache.FormInfoSeconds = 300
	cfg.Cache.FilterOptionsSeconds = 300
	cfg.Cache.DashboardSeconds = 120
	cfg.Cache.CuratedSeconds = 120
	cfg.Cache.DeadlineSoonSeconds = 60
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) FormInfoStale() time.Duration {
	return secondsOr(c.Cache.FormInfoSeconds, 300)
}

func (c Config) FilterOptionsStale() time.Duration {
	return secondsOr(c.Cache.FilterOptionsSeconds, 300)
}

func (c Config) DashboardStale() time.Duration {
	return secondsOr(c.Cache.DashboardSeconds, 120)
}

func (c Config) CuratedStale() time.Duration {
	return secondsOr(c.Cache.CuratedSeconds, 120)
}

func (c Config) DeadlineSoonStale() time.Duration {
	return secondsOr(c.Cache.DeadlineSoonSeconds, 60)
}

func secondsOr(s, def int) time.Duration {
	if s <= 0 {
		s = def
	}
	return time.Duration(s) * time.Second
}
