package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Every field can be overridden via
// a REELVIEW_* environment variable (REELVIEW_DB_DSN, REELVIEW_PORT, ...).
type Config struct {
	Port             string `mapstructure:"port"`
	DBDriver         string `mapstructure:"db_driver"`
	DBDSN            string `mapstructure:"db_dsn"`
	JWTSecret        string `mapstructure:"jwt_secret"`
	ReviewerEmail    string `mapstructure:"reviewer_email"`
	ReviewerPassword string `mapstructure:"reviewer_password"`
	NotifyWebhookURL string `mapstructure:"notify_webhook_url"`
	PageSize         int    `mapstructure:"page_size"`
	WriteQueueSize   int    `mapstructure:"write_queue_size"`
	WriteWorkers     int    `mapstructure:"write_workers"`
}

// Load reads configuration from the environment with sane defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("reelview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "reelview.db")
	v.SetDefault("jwt_secret", "reelview-dev-secret-change-in-production")
	v.SetDefault("reviewer_email", "reviewer@reelview.local")
	v.SetDefault("reviewer_password", "changeme")
	v.SetDefault("notify_webhook_url", "")
	v.SetDefault("page_size", 6)
	v.SetDefault("write_queue_size", 1024)
	v.SetDefault("write_workers", 4)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
