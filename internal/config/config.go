package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2440
	defaultEnv        = "development"

	defaultUpscaleFactor  = 2
	defaultSettleDelayMS  = 200
	defaultSlideTimeoutMS = 10000
)

// Load reads the YAML config file and applies defaults and env overrides.
// A missing file is not an error; env vars alone can configure the service.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is required (config `dsn` or SF_DSN)")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis url is required (config `redis_url` or SF_REDIS_URL)")
	}
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("SF_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("SF_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("SF_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("SF_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("SF_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SF_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("SF_FONT_DIRS"); v != "" {
		cfg.FontDirs = splitAndTrim(v)
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.Export.UpscaleFactor <= 0 {
		cfg.Export.UpscaleFactor = defaultUpscaleFactor
	}
	if cfg.Export.SettleDelayMS <= 0 {
		cfg.Export.SettleDelayMS = defaultSettleDelayMS
	}
	if cfg.Export.SlideTimeoutMS <= 0 {
		cfg.Export.SlideTimeoutMS = defaultSlideTimeoutMS
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
