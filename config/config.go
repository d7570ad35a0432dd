package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type SlackConfig struct {
	SigningSecret   string `envconfig:"SIGNING_SECRET"`
	AlertWebhookURL string `envconfig:"ALERT_WEBHOOK_URL"` // Optional, alerts are disabled when empty
}

// IsConfigured returns true if all required Slack configuration is present
func (c SlackConfig) IsConfigured() bool {
	return c.SigningSecret != ""
}

type AppConfig struct {
	Port            string `envconfig:"PORT" default:"8080"`
	Environment     string `envconfig:"ENVIRONMENT" default:"dev"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	AllowOrigin     string `envconfig:"ALLOW_ORIGIN"` // Space-separated origins, or "*"
	AppURL          string `envconfig:"APP_URL"`
	ServerLogsURL   string `envconfig:"SERVER_LOGS_URL"`
	UseStrictConfig bool   `envconfig:"USE_STRICT_CONFIG" default:"false"` // If true, error when Slack is not fully configured

	SlackConfig SlackConfig `envconfig:"SLACK"`
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	var config AppConfig
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if !config.SlackConfig.IsConfigured() && config.UseStrictConfig {
		return nil, fmt.Errorf("slack integration is not fully configured (USE_STRICT_CONFIG=true)")
	}

	return &config, nil
}

// LogSummary reports which integrations are configured
func (c *AppConfig) LogSummary(logger *zap.Logger) {
	if c.SlackConfig.IsConfigured() {
		logger.Info("✅ Slack integration configured")
	} else {
		logger.Warn("⚠️ Slack integration not configured - request signature verification is disabled")
	}

	if c.SlackConfig.AlertWebhookURL == "" {
		logger.Info("⚠️ Slack alert webhook not configured - error alerts are disabled")
	}
}
