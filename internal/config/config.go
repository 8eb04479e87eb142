package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	PublisherX        = "x"
	PublisherTelegram = "telegram"
	PublisherLog      = "log"

	DefaultPort = 3000
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port            int           `yaml:"port" validate:"min=1,max=65535"`
		Metrics         *bool         `yaml:"metrics"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		GinMode         string        `yaml:"gin_mode" validate:"omitempty,oneof=debug release test"`
	} `yaml:"server"`
	Fund struct {
		Code    string        `yaml:"code" validate:"required,numeric"`
		APIURL  string        `yaml:"api_url" validate:"required,url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"fund"`
	Publisher struct {
		Kind    string        `yaml:"kind" validate:"oneof=x telegram log"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"publisher"`
	X struct {
		AppKey       string `yaml:"app_key"`
		AppSecret    string `yaml:"app_secret"`
		AccessToken  string `yaml:"access_token"`
		AccessSecret string `yaml:"access_secret"`
	} `yaml:"x"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level      string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
		Format     string `yaml:"format" validate:"omitempty,oneof=text json"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env (if present) and the YAML file, then applies environment
// variable overrides and defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

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

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.GinMode = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		c.Server.Metrics = &enabled
	}
	if v := os.Getenv("NAV_API_URL"); v != "" {
		c.Fund.APIURL = v
	}
	if v := os.Getenv("PUBLISHER"); v != "" {
		c.Publisher.Kind = strings.ToLower(v)
	}
	if v := os.Getenv("DRY_RUN"); v != "" {
		dry, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DRY_RUN %q: %w", v, err)
		}
		if dry {
			c.Publisher.Kind = PublisherLog
		}
	}
	if v := os.Getenv("APP_KEY"); v != "" {
		c.X.AppKey = v
	}
	if v := os.Getenv("APP_SECRET"); v != "" {
		c.X.AppSecret = v
	}
	if v := os.Getenv("ACCESS_TOKEN"); v != "" {
		c.X.AccessToken = v
	}
	if v := os.Getenv("ACCESS_SECRET"); v != "" {
		c.X.AccessSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Metrics == nil {
		enabled := true
		c.Server.Metrics = &enabled
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Fund.Code == "" {
		c.Fund.Code = "253425"
	}
	if c.Fund.APIURL == "" {
		c.Fund.APIURL = "https://developer.am.mufg.jp/fund_information_latest/fund_cd/" + c.Fund.Code
	}
	if c.Fund.Timeout == 0 {
		c.Fund.Timeout = 30 * time.Second
	}
	if c.Publisher.Kind == "" {
		c.Publisher.Kind = PublisherX
	}
	if c.Publisher.Timeout == 0 {
		c.Publisher.Timeout = 30 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 50
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 14
	}
}

// MetricsEnabled reports whether /metrics should be served.
func (c *Config) MetricsEnabled() bool {
	return c.Server.Metrics == nil || *c.Server.Metrics
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Validate checks field formats. Missing publisher credentials are not an
// error here; see MissingCredentials.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MissingCredentials lists the secrets the selected publisher needs but does
// not have. The service still starts; posts fail and are logged.
func (c *Config) MissingCredentials() []string {
	var missing []string
	switch c.Publisher.Kind {
	case PublisherX:
		if c.X.AppKey == "" {
			missing = append(missing, "APP_KEY")
		}
		if c.X.AppSecret == "" {
			missing = append(missing, "APP_SECRET")
		}
		if c.X.AccessToken == "" {
			missing = append(missing, "ACCESS_TOKEN")
		}
		if c.X.AccessSecret == "" {
			missing = append(missing, "ACCESS_SECRET")
		}
	case PublisherTelegram:
		if c.Telegram.BotToken == "" {
			missing = append(missing, "TELEGRAM_BOT_TOKEN")
		}
		if c.Telegram.ChatID == "" {
			missing = append(missing, "TELEGRAM_CHAT_ID")
		}
	}
	return missing
}
