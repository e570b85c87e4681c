package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig holds the settings of the card backend.
type ServerConfig struct {
	Port           string
	Env            string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	TokenTTL       time.Duration
	RabbitMQURL    string // empty disables event publishing
	ProjectID      string
	APIKey         string
	LogLevel       string
	LogFile        string
}

// ClientConfig holds the options the client needs to reach the backend.
type ClientConfig struct {
	Endpoint  string
	ProjectID string
	APIKey    string
	Timeout   time.Duration
	LogFile   string // client logs never go to the terminal
}

// loadDotEnv loads a .env file into the process environment when present.
func loadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadServer reads the backend configuration from the environment and an
// optional .env file.
func LoadServer(envFiles ...string) (*ServerConfig, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "cherishedwords.db")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("PROJECT_ID", "cherishedwords")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.AutomaticEnv()

	cfg := &ServerConfig{
		Port:           v.GetString("APP_PORT"),
		Env:            v.GetString("APP_ENV"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		ProjectID:      v.GetString("PROJECT_ID"),
		APIKey:         v.GetString("API_KEY"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFile:        v.GetString("LOG_FILE"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("API_KEY must be set")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

// LoadClient reads the client configuration. configFile is optional; when set
// it is read first and environment variables override it.
func LoadClient(configFile string, envFiles ...string) (*ClientConfig, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("ENDPOINT", "http://localhost:8080")
	v.SetDefault("PROJECT_ID", "cherishedwords")
	v.SetDefault("TIMEOUT", "10s")
	v.SetDefault("LOG_FILE", "")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &ClientConfig{
		Endpoint:  v.GetString("ENDPOINT"),
		ProjectID: v.GetString("PROJECT_ID"),
		APIKey:    v.GetString("API_KEY"),
		Timeout:   v.GetDuration("TIMEOUT"),
		LogFile:   v.GetString("LOG_FILE"),
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("ENDPOINT must be set")
	}
	return cfg, nil
}
