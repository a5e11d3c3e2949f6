package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Search struct {
		DefaultLimit     int `yaml:"default_limit" json:"default_limit"`
		MaxPages         int `yaml:"max_pages" json:"max_pages"`
		PageDelaySeconds int `yaml:"page_delay_seconds" json:"page_delay_seconds"`
	} `yaml:"search" json:"search"`

	Providers struct {
		SerpAPI struct {
			Enabled      bool   `yaml:"enabled" json:"enabled"`
			BaseURL      string `yaml:"base_url" json:"base_url"`
			GoogleDomain string `yaml:"google_domain" json:"google_domain"`
			Language     string `yaml:"language" json:"language"`
		} `yaml:"serpapi" json:"serpapi"`

		LinkedIn struct {
			Enabled bool   `yaml:"enabled" json:"enabled"`
			Host    string `yaml:"host" json:"host"`
			Path    string `yaml:"path" json:"path"`
		} `yaml:"linkedin" json:"linkedin"`

		ActiveJobs struct {
			Enabled bool   `yaml:"enabled" json:"enabled"`
			Host    string `yaml:"host" json:"host"`
			Path    string `yaml:"path" json:"path"`
		} `yaml:"active_jobs" json:"active_jobs"`
	} `yaml:"providers" json:"providers"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets deployment settings override the file. API keys are not
// config: they live in the keyring or their own env vars (see secrets).
func applyEnv(cfg *Config) {
	if v := os.Getenv("ENGINE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
	if v := os.Getenv("ENGINE_DATA_DIR"); v != "" {
		cfg.App.DataDir = v
	}
}
