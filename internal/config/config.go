package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port    string `yaml:"port"`
		JoinURL string `yaml:"join_url"`
	} `yaml:"server"`
	Game struct {
		RoundTimeLimit int `yaml:"round_time_limit"` // seconds
	} `yaml:"game"`
	Poll struct {
		Question string   `yaml:"question"`
		Options  []string `yaml:"options"`
	} `yaml:"poll"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Catalog struct {
		TTL string `yaml:"ttl"`
	} `yaml:"catalog"`
	Generation struct {
		URL     string `yaml:"url"`
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		Timeout string `yaml:"timeout"`
	} `yaml:"generation"`
}

// Load reads YAML config from path. A missing file yields the zero config
// so the game can run entirely on built-in defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Game.RoundTimeLimit == 0 {
		c.Game.RoundTimeLimit = 300
	}
	if c.Poll.Question == "" {
		c.Poll.Question = "What Takes Most of Your Time?"
	}
	if len(c.Poll.Options) == 0 {
		c.Poll.Options = []string{
			"Manual data entry and Excel formatting",
			"Creating repetitive reports",
			"Calculating portfolio metrics",
			"Collecting data from multiple sources",
			"Updating dashboards",
		}
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "gpt-4o-mini"
	}
}

// TTLDuration parses a duration string or returns the fallback if empty
// or invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
