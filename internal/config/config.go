package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr       string `yaml:"addr"`
		Password   string `yaml:"password"`
		DB         int    `yaml:"db"`
		SessionTTL string `yaml:"sessionTtl"`
	} `yaml:"redis"`
	Judge struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"judge"`
	Contest struct {
		DefaultDurationMinutes int  `yaml:"defaultDurationMinutes"`
		AutoFinishOnExpiry     bool `yaml:"autoFinishOnExpiry"`
	} `yaml:"contest"`
	Sync struct {
		RemoteURL    string `yaml:"remoteUrl"`
		Interval     string `yaml:"interval"`
		SnapshotPath string `yaml:"snapshotPath"`
	} `yaml:"sync"`
	Admin struct {
		ID          string `yaml:"id"`
		Password    string `yaml:"password"`
		DisplayName string `yaml:"displayName"`
	} `yaml:"admin"`
	Auth struct {
		JWTSecret string `yaml:"jwtSecret"`
		TokenTTL  string `yaml:"tokenTtl"`
	} `yaml:"auth"`
	Store struct {
		FilePath string `yaml:"filePath"`
	} `yaml:"store"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty/invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
