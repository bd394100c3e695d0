package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process configuration, loaded from config.yaml and
// overridden by environment variables (SERVER_PORT, ADMIN_JWT_SECRET, ...).
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Assist   AssistConfig   `mapstructure:"assist"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug | release
}

type DatabaseConfig struct {
	// postgres:// DSN for production, a file path for local sqlite
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	// empty address keeps the in-memory rate-limit counter
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	// bcrypt hash of the admin password, never the plain text
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type AssistConfig struct {
	Provider    string `mapstructure:"provider"` // anthropic | openai | gemini
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	HourlyQuota int64  `mapstructure:"hourly_quota"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// Load reads .env (when present), then config.yaml, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("database.dsn", "formgate.db")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.token_ttl", 12*time.Hour)
	viper.SetDefault("assist.provider", "anthropic")
	viper.SetDefault("assist.model", "claude-sonnet-4-5")
	viper.SetDefault("assist.hourly_quota", 20)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

func validate(cfg *Config) error {
	if cfg.Admin.JWTSecret == "" {
		return fmt.Errorf("admin.jwt_secret is required")
	}
	if cfg.Admin.PasswordHash == "" {
		return fmt.Errorf("admin.password_hash is required")
	}
	return nil
}
