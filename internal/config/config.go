package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// MongoDB. MongoURI wins over the DB_USER/DB_PASS/MONGO_CLUSTER triple.
	MongoURI          string `mapstructure:"MONGO_URI"`
	DBUser            string `mapstructure:"DB_USER"`
	DBPass            string `mapstructure:"DB_PASS"`
	MongoCluster      string `mapstructure:"MONGO_CLUSTER"`
	MongoDatabase     string `mapstructure:"MONGO_DATABASE"`
	MongoTransactions bool   `mapstructure:"MONGO_TRANSACTIONS"`

	// Bearer credential secret. Tokens always live for one hour.
	TokenSecret string `mapstructure:"CLIENT_SECRET_TOKEN"`

	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`

	MailgunAPIKey string        `mapstructure:"MAILGUN_API_KEY"`
	MailgunDomain string        `mapstructure:"MAILGUN_DOMAIN"`
	MailSender    string        `mapstructure:"MAIL_SENDER"`
	NotifyTimeout time.Duration `mapstructure:"NOTIFY_TIMEOUT"`

	// Redis catalog cache, disabled when RedisAddr is empty.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	RequestTimeout    time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	AllowedOrigins    string        `mapstructure:"ALLOWED_ORIGINS"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var defaults = map[string]any{
	"PORT":                 "5000",
	"ENV":                  "development",
	"LOG_LEVEL":            "info",
	"MONGO_URI":            "",
	"DB_USER":              "",
	"DB_PASS":              "",
	"MONGO_CLUSTER":        "cluster0.taxrqnn.mongodb.net",
	"MONGO_DATABASE":       "smile_care",
	"MONGO_TRANSACTIONS":   false,
	"CLIENT_SECRET_TOKEN":  "",
	"STRIPE_SECRET_KEY":    "",
	"MAILGUN_API_KEY":      "",
	"MAILGUN_DOMAIN":       "",
	"MAIL_SENDER":          "",
	"NOTIFY_TIMEOUT":       "15s",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"CATALOG_CACHE_TTL":    "5m",
	"REQUEST_TIMEOUT":      "10s",
	"ALLOWED_ORIGINS":      "*",
	"MAX_REQUESTS_PER_MIN": 200,
}

// Load reads an optional .env file, then environment variables, into a Config.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports configuration the server cannot start without.
func (c *Config) Validate() error {
	if c.TokenSecret == "" {
		return errors.New("CLIENT_SECRET_TOKEN is not set")
	}
	if c.MongoURI == "" && (c.DBUser == "" || c.DBPass == "") {
		return errors.New("either MONGO_URI or DB_USER and DB_PASS must be set")
	}
	return nil
}

// MongoConnectionURI returns MONGO_URI, or the Atlas SRV URI built from the credentials.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority", c.DBUser, c.DBPass, c.MongoCluster)
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) MailEnabled() bool {
	return c.MailgunAPIKey != "" && c.MailgunDomain != ""
}
