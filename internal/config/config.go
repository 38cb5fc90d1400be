package config

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Line      LineConfig
	Store     StoreConfig
	Receipt   ReceiptConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type LogConfig struct {
	Level  string
	Format string
}

// LineConfig holds the Messaging API delivery settings. Token and To are
// checked on every webhook call rather than at startup.
type LineConfig struct {
	Token   string
	To      string
	BaseURL string
	Timeout time.Duration
	DryRun  bool
}

// StoreConfig enables persistence when Credentials is non-empty.
type StoreConfig struct {
	Credentials string
	Timeout     time.Duration
}

type ReceiptConfig struct {
	ShopName string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig throttles the log-only webhook stubs per client IP. Zero
// requests disables it. Paid orders are never throttled.
type RateLimitConfig struct {
	Requests int
	Duration int
}

// StoreCredentials is the JSON blob carried by STORE_CREDENTIALS.
type StoreCredentials struct {
	Driver   string `json:"driver"`
	URI      string `json:"uri"`
	Database string `json:"database"`
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()
	return fromViper()
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "order-notifier")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("LINE_TOKEN", "")
	viper.SetDefault("LINE_TO", "")
	viper.SetDefault("LINE_API_BASE_URL", "https://api.line.me")
	viper.SetDefault("LINE_TIMEOUT_SECONDS", 0)
	viper.SetDefault("LINE_DRY_RUN", false)
	viper.SetDefault("STORE_CREDENTIALS", "")
	viper.SetDefault("STORE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RECEIPT_SHOP_NAME", "ไก่ทอดสมหวัง")
	viper.SetDefault("DISPLAY_TIMEZONE", "Asia/Bangkok")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 0)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
}

func fromViper() *Config {
	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Line: LineConfig{
			Token:   viper.GetString("LINE_TOKEN"),
			To:      viper.GetString("LINE_TO"),
			BaseURL: viper.GetString("LINE_API_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("LINE_TIMEOUT_SECONDS")) * time.Second,
			DryRun:  viper.GetBool("LINE_DRY_RUN"),
		},
		Store: StoreConfig{
			Credentials: strings.TrimSpace(viper.GetString("STORE_CREDENTIALS")),
			Timeout:     time.Duration(viper.GetInt("STORE_TIMEOUT_SECONDS")) * time.Second,
		},
		Receipt: ReceiptConfig{
			ShopName: viper.GetString("RECEIPT_SHOP_NAME"),
			Timezone: viper.GetString("DISPLAY_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PersistenceEnabled reports whether a store credential blob was supplied.
func (c *StoreConfig) PersistenceEnabled() bool {
	return c.Credentials != ""
}

// ParseCredentials decodes the STORE_CREDENTIALS blob.
func (c *StoreConfig) ParseCredentials() (*StoreCredentials, error) {
	var creds StoreCredentials
	if err := json.Unmarshal([]byte(c.Credentials), &creds); err != nil {
		return nil, fmt.Errorf("invalid STORE_CREDENTIALS: %w", err)
	}
	creds.Driver = strings.ToLower(strings.TrimSpace(creds.Driver))
	if creds.URI == "" {
		return nil, fmt.Errorf("invalid STORE_CREDENTIALS: uri is required")
	}
	return &creds, nil
}
