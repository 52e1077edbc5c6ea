package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	// URL takes precedence over the discrete fields when set.
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"`
	Migrate  bool   `yaml:"migrate"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Addr          string        `yaml:"addr"`
	Password      string        `yaml:"password"`
	DB            int           `yaml:"db"`
	StorefrontTTL time.Duration `yaml:"storefront_ttl"`
}

type AuthConfig struct {
	JWTSecret         string   `yaml:"jwt_secret"`
	CookieName        string   `yaml:"cookie_name"`
	SystemAdminEmails []string `yaml:"system_admin_emails"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type RateLimitConfig struct {
	OrdersPerSecond float64 `yaml:"orders_per_second"`
	Burst           int     `yaml:"burst"`
}

// Load reads the yaml file at path, applies a .env file if one exists,
// environment overrides and defaults. A missing config file is not an error:
// the service can run from environment variables alone.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("SYSTEM_ADMIN_EMAILS"); v != "" {
		c.Auth.SystemAdminEmails = splitList(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("RABBITMQ_HOST"); v != "" {
		c.RabbitMQ.Host = v
		c.RabbitMQ.Enabled = true
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Port = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RabbitMQ.Port == 0 {
		c.RabbitMQ.Port = 5672
	}
	if c.Redis.StorefrontTTL == 0 {
		c.Redis.StorefrontTTL = time.Minute
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "session_token"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.RateLimit.OrdersPerSecond == 0 {
		c.RateLimit.OrdersPerSecond = 2
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Database.URL == "" && c.Database.Host == "" {
		return errors.New("database.url or database.host is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis is enabled")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Host == "" {
		return errors.New("rabbitmq.host is required when rabbitmq is enabled")
	}
	return nil
}

// DSN returns the connection string for pgx.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}

func (r RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.User, r.Password, r.Host, r.Port)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
