package config

import (
	"os"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestLoadAndValidate(t *testing.T) {
	content := `
dataset:
  path: "./data/survey.xlsx"
  sheet: "Responses"
  topic_column: "Topic Id"
  source_column: "Source"
  response_column: "Response"

server:
  addr: ":9000"
  allowed_origins:
    - "http://localhost:3000"

charts:
  format: svg

telegram:
  bot_token: "test_token"
  chat_id: "12345"
  enabled: true

logging:
  level: "debug"
  format: "json"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Dataset.Path != "./data/survey.xlsx" {
		t.Errorf("Unexpected dataset path: %s", cfg.Dataset.Path)
	}
	if cfg.Dataset.Sheet != "Responses" {
		t.Errorf("Unexpected sheet: %s", cfg.Dataset.Sheet)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Unexpected addr: %s", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Unexpected allowed origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Charts.Format != "svg" {
		t.Errorf("Unexpected chart format: %s", cfg.Charts.Format)
	}

	// Defaults fill what the file leaves out
	if cfg.Charts.DonutWidth != 105 || cfg.Charts.DonutHeight != 85 {
		t.Errorf("Unexpected donut size: %dx%d", cfg.Charts.DonutWidth, cfg.Charts.DonutHeight)
	}
	if cfg.Dataset.FetchTimeout != 30*time.Second {
		t.Errorf("Unexpected fetch timeout: %v", cfg.Dataset.FetchTimeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Unexpected shutdown timeout: %v", cfg.Server.ShutdownTimeout)
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SURVEYBOARD_SERVER_ADDR", ":7777")
	t.Setenv("SURVEYBOARD_DATASET_PATH", "https://example.com/data.xlsx")

	cfg, err := Load(writeConfig(t, "logging:\n  level: info\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("expected env override for server.addr, got %s", cfg.Server.Addr)
	}
	if cfg.Dataset.Path != "https://example.com/data.xlsx" {
		t.Errorf("expected env override for dataset.path, got %s", cfg.Dataset.Path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func validConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:           "./data/DBdata.xlsx",
			TopicColumn:    "Topic Id",
			SourceColumn:   "Source",
			ResponseColumn: "Response",
			FetchTimeout:   30 * time.Second,
			MaxRetries:     3,
		},
		Server: ServerConfig{
			Addr:            ":8050",
			ShutdownTimeout: 10 * time.Second,
		},
		Charts: ChartsConfig{
			Format:      "png",
			DonutWidth:  105,
			DonutHeight: 85,
			ChartWidth:  640,
			ChartHeight: 420,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(*Config) {}, false},
		{"missing dataset path", func(c *Config) { c.Dataset.Path = "" }, true},
		{"missing topic column", func(c *Config) { c.Dataset.TopicColumn = "" }, true},
		{"zero retries", func(c *Config) { c.Dataset.MaxRetries = 0 }, true},
		{"tiny fetch timeout", func(c *Config) { c.Dataset.FetchTimeout = time.Millisecond }, true},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"invalid chart format", func(c *Config) { c.Charts.Format = "gif" }, true},
		{"tiny donut", func(c *Config) { c.Charts.DonutWidth = 5 }, true},
		{"missing telegram token when enabled", func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.ChatID = "1"
		}, true},
		{"missing telegram chat when enabled", func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.BotToken = "token"
		}, true},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
