package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the static application configuration. Secrets (API keys,
// cookie keys) never live here; those come from AWS Secrets Manager.
type Config struct {
	Server struct {
		Port   int    `yaml:"port"`
		Domain string `yaml:"domain"`
	} `yaml:"server"`
	AWS struct {
		Region       string `yaml:"region"`
		ProfileName  string `yaml:"profile_name"`
		SessionTable string `yaml:"session_table"`
		CSPBucket    string `yaml:"csp_bucket"`
		AlertTopic   string `yaml:"alert_topic"`
	} `yaml:"aws"`
	Redis struct {
		Address string `yaml:"address"`
	} `yaml:"redis"`
	Providers struct {
		FMPBaseURL string  `yaml:"fmp_base_url"`
		RPS        float64 `yaml:"rps"`
		Burst      int     `yaml:"burst"`
	} `yaml:"providers"`
	Compare struct {
		DefaultTimespan int    `yaml:"default_timespan"`
		DefaultWindow   int    `yaml:"default_window"`
		DefaultMetric   string `yaml:"default_metric"`
		RatioYears      int    `yaml:"ratio_years"`
	} `yaml:"compare"`
}

// loadConfig reads the YAML config file, applies environment overrides, then
// fills defaults. A missing file is fine; the defaults describe a working
// local setup.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("PAIRWATCH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PAIRWATCH_DOMAIN"); v != "" {
		cfg.Server.Domain = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWS.Region = v
	}
	if v := os.Getenv("PAIRWATCH_REDIS"); v != "" {
		cfg.Redis.Address = v
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3001
	}
	if cfg.Server.Domain == "" {
		cfg.Server.Domain = "pairwatch.graystorm.com"
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}
	if cfg.AWS.ProfileName == "" {
		cfg.AWS.ProfileName = "pairwatch"
	}
	if cfg.AWS.SessionTable == "" {
		cfg.AWS.SessionTable = "pairwatch-session"
	}
	if cfg.AWS.CSPBucket == "" {
		cfg.AWS.CSPBucket = "graystorm-pairwatch"
	}
	if cfg.AWS.AlertTopic == "" {
		cfg.AWS.AlertTopic = "alerts"
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "127.0.0.1:6379"
	}
	if cfg.Providers.FMPBaseURL == "" {
		cfg.Providers.FMPBaseURL = "https://financialmodelingprep.com/api/v3"
	}
	if cfg.Providers.RPS == 0 {
		cfg.Providers.RPS = 4
	}
	if cfg.Providers.Burst == 0 {
		cfg.Providers.Burst = 8
	}
	if cfg.Compare.DefaultTimespan == 0 {
		cfg.Compare.DefaultTimespan = 365
	}
	if cfg.Compare.DefaultWindow == 0 {
		cfg.Compare.DefaultWindow = defaultCorrelationWindow
	}
	if cfg.Compare.DefaultMetric == "" {
		cfg.Compare.DefaultMetric = "priceEarningsRatio"
	}
	if cfg.Compare.RatioYears == 0 {
		cfg.Compare.RatioYears = 10
	}

	return cfg, nil
}
