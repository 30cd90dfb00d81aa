package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Server   ServerConfig   `mapstructure:"server"`
	Charts   ChartsConfig   `mapstructure:"charts"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatasetConfig describes where the survey spreadsheet lives and how to read it
type DatasetConfig struct {
	Path           string        `mapstructure:"path"` // local file or http(s) URL
	Sheet          string        `mapstructure:"sheet"`
	TopicColumn    string        `mapstructure:"topic_column"`
	SourceColumn   string        `mapstructure:"source_column"`
	ResponseColumn string        `mapstructure:"response_column"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// ChartsConfig holds chart rendering configuration
type ChartsConfig struct {
	Format      string `mapstructure:"format"`
	DonutWidth  int    `mapstructure:"donut_width"`
	DonutHeight int    `mapstructure:"donut_height"`
	ChartWidth  int    `mapstructure:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)

	// SURVEYBOARD_SERVER_ADDR overrides server.addr, and so on
	v.SetEnvPrefix("SURVEYBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Dataset defaults
	v.SetDefault("dataset.path", "./data/DBdata.xlsx")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("dataset.topic_column", "Topic Id")
	v.SetDefault("dataset.source_column", "Source")
	v.SetDefault("dataset.response_column", "Response")
	v.SetDefault("dataset.fetch_timeout", "30s")
	v.SetDefault("dataset.max_retries", 3)
	v.SetDefault("dataset.retry_delay_base", "1s")

	// Server defaults
	v.SetDefault("server.addr", ":8050")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Chart defaults
	v.SetDefault("charts.format", "png")
	v.SetDefault("charts.donut_width", 105)
	v.SetDefault("charts.donut_height", 85)
	v.SetDefault("charts.chart_width", 640)
	v.SetDefault("charts.chart_height", 420)

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Dataset config
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	if c.Dataset.TopicColumn == "" || c.Dataset.SourceColumn == "" || c.Dataset.ResponseColumn == "" {
		return fmt.Errorf("dataset.topic_column, dataset.source_column and dataset.response_column are required")
	}
	if c.Dataset.FetchTimeout < 1*time.Second {
		return fmt.Errorf("dataset.fetch_timeout must be at least 1 second")
	}
	if c.Dataset.MaxRetries < 1 {
		return fmt.Errorf("dataset.max_retries must be at least 1")
	}

	// Validate Server config
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}

	// Validate Charts config
	validFormats := map[string]bool{"png": true, "svg": true}
	if !validFormats[c.Charts.Format] {
		return fmt.Errorf("charts.format must be one of: png, svg")
	}
	if c.Charts.DonutWidth < 20 || c.Charts.DonutHeight < 20 {
		return fmt.Errorf("charts.donut_width and charts.donut_height must be at least 20")
	}
	if c.Charts.ChartWidth < 100 || c.Charts.ChartHeight < 100 {
		return fmt.Errorf("charts.chart_width and charts.chart_height must be at least 100")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
