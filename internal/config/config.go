package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env               string        `mapstructure:"ENV"`
	Port              string        `mapstructure:"PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	AdminKey          string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed       string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MigrateOnStart    bool          `mapstructure:"MIGRATE_ON_START"`
	RedisURL          string        `mapstructure:"REDIS_URL"`
	ChatRatePerMinute int           `mapstructure:"CHAT_RATE_PER_MINUTE"`
	EmailAPIKey       string        `mapstructure:"EMAIL_API_KEY"`
	SMTPHost          string        `mapstructure:"SMTP_HOST"`
	SMTPPort          int           `mapstructure:"SMTP_PORT"`
	SMTPUsername      string        `mapstructure:"SMTP_USERNAME"`
	NotifyFrom        string        `mapstructure:"NOTIFY_FROM"`
	NotifyTo          string        `mapstructure:"NOTIFY_TO"`
	CompanyPhone      string        `mapstructure:"COMPANY_PHONE"`
	ContactPageURL    string        `mapstructure:"CONTACT_PAGE_URL"`
}

var keys = []string{
	"ENV", "PORT", "DATABASE_URL", "ADMIN_KEY", "CORS_ALLOWED_ORIGINS", "REQUEST_TIMEOUT", "LOG_LEVEL",
	"MIGRATE_ON_START", "REDIS_URL", "CHAT_RATE_PER_MINUTE", "EMAIL_API_KEY", "SMTP_HOST", "SMTP_PORT",
	"SMTP_USERNAME", "NOTIFY_FROM", "NOTIFY_TO", "COMPANY_PHONE", "CONTACT_PAGE_URL",
}

func Load() (Config, error) {
	return load(".env")
}

func load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	// Unmarshal only sees env vars for keys viper already knows about.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("CHAT_RATE_PER_MINUTE", 30)
	v.SetDefault("SMTP_HOST", "smtp.resend.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "resend")
	v.SetDefault("NOTIFY_FROM", "TechServe Website <noreply@techserve.ng>")
	v.SetDefault("NOTIFY_TO", "sales@techserve.ng")
	v.SetDefault("COMPANY_PHONE", "+234 806 439 8669")
	v.SetDefault("CONTACT_PAGE_URL", "/contact")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.ChatRatePerMinute <= 0 {
		return errors.New("CHAT_RATE_PER_MINUTE must be positive")
	}
	return nil
}

// NotificationsEnabled is false when no email provider key is configured.
func (c Config) NotificationsEnabled() bool {
	return strings.TrimSpace(c.EmailAPIKey) != ""
}
