package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"jiraupdate-go/internal/cstmerr"
)

// DatabaseConfig holds all database connection parameters for the audit store.
type DatabaseConfig struct {
	Host         string        `mapstructure:"db_host"`
	Port         int           `mapstructure:"db_port"`
	User         string        `mapstructure:"db_user"`
	Password     string        `mapstructure:"db_password"`
	DBName       string        `mapstructure:"db_name"`
	SSLMode      string        `mapstructure:"db_sslmode"`
	ReadTimeout  time.Duration `mapstructure:"db_read_timeout"`
	WriteTimeout time.Duration `mapstructure:"db_write_timeout"`
}

// Config matches the structure of the config file and environment variables.
// Viper uses the mapstructure tags to bind them.
type Config struct {
	ServiceName       string         `mapstructure:"service_name"`
	JiraSiteURL       string         `mapstructure:"jira_site_url"`
	ClientID          string         `mapstructure:"client_id"`
	ClientSecret      string         `mapstructure:"client_secret"`
	AuthAPIURL        string         `mapstructure:"auth_api_url"`
	BuildsAPIURL      string         `mapstructure:"builds_api_url"`
	DeploymentsAPIURL string         `mapstructure:"deployments_api_url"`
	AuditEnabled      bool           `mapstructure:"audit_enabled"`
	Database          DatabaseConfig `mapstructure:"database"`
}

// Load reads the configuration using Viper. It looks for a config file
// (config.toml) in the usual paths and also reads from environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("service_name", "JiraUpdateService")
	v.SetDefault("auth_api_url", "https://auth.atlassian.com/oauth/token")
	v.SetDefault("builds_api_url", "https://api.atlassian.com/jira/builds/0.1/cloud/%s/bulk")
	v.SetDefault("deployments_api_url", "https://api.atlassian.com/jira/deployments/0.1/cloud/%s/bulk")
	v.SetDefault("audit_enabled", false)

	// Defaults for the audit store
	v.SetDefault("database.db_host", "localhost")
	v.SetDefault("database.db_port", 5432)
	v.SetDefault("database.db_user", "postgres")
	v.SetDefault("database.db_name", "jiraupdate")
	v.SetDefault("database.db_sslmode", "disable")
	v.SetDefault("database.db_read_timeout", "5s")
	v.SetDefault("database.db_write_timeout", "5s")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/jiraupdate/")
		v.AddConfigPath("$HOME/.jiraupdate")
		v.AddConfigPath(".")
	}
	v.BindEnv("client_secret", "JIRAUPDATE_CLIENT_SECRET")
	v.BindEnv("database.db_password", "JIRAUPDATE_DB_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; rely on defaults and environment variables.
			log.Info().Msg("Config file not found, using defaults and environment variables.")
		} else {
			return nil, cstmerr.NewFileIOError("failed to read config file", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, cstmerr.NewConfigError("failed to unmarshal config", err)
	}

	if err := validateEndpointTemplate("builds_api_url", config.BuildsAPIURL); err != nil {
		return nil, err
	}
	if err := validateEndpointTemplate("deployments_api_url", config.DeploymentsAPIURL); err != nil {
		return nil, err
	}

	log.Info().
		Str("service", config.ServiceName).
		Str("site", config.JiraSiteURL).
		Msg("Configuration loaded")
	return &config, nil
}

// validateEndpointTemplate requires a template with exactly one %s
// placeholder for the cloud id and no other format verbs.
func validateEndpointTemplate(name, template string) error {
	placeholders := strings.Count(template, "%s")
	extra := strings.Count(strings.ReplaceAll(template, "%s", ""), "%")
	if placeholders != 1 || extra != 0 {
		return cstmerr.NewConfigError(
			fmt.Sprintf("%s must contain exactly one %%s placeholder, got %q", name, template), nil)
	}
	return nil
}
