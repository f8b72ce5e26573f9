package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultDBPath      = "data/movies.db"
	DefaultRowLimit    = 10
	DefaultCacheTTL    = 10 * time.Minute
	DefaultCachePrefix = "moviequery"
	DefaultReportTopic = "movies.reports"
)

// Config is built once at startup and handed to the runner and stores.
type Config struct {
	DBPath      string      `mapstructure:"db_path"`
	LogLevel    string      `mapstructure:"log_level"`
	RowLimit    int         `mapstructure:"row_limit"`
	ForeignKeys bool        `mapstructure:"foreign_keys"`
	Redis       RedisConfig `mapstructure:"redis"`
	Kafka       KafkaConfig `mapstructure:"kafka"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// Enabled reports whether a non-blank redis address was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// CacheEnabled reports whether query results go through redis.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Enabled()
}

// PublishEnabled reports whether report results should go to kafka.
func (c *Config) PublishEnabled() bool {
	return strings.TrimSpace(c.Kafka.Brokers) != ""
}

var envBindings = map[string]string{
	"db_path":        "SQLITE_PATH",
	"log_level":      "LOG_LEVEL",
	"row_limit":      "ROW_LIMIT",
	"foreign_keys":   "SQLITE_FOREIGN_KEYS",
	"redis.addr":     "REDIS_ADDR",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",
	"redis.ttl":      "CACHE_TTL",
	"redis.prefix":   "CACHE_PREFIX",
	"kafka.brokers":  "KAFKA_BROKERS",
	"kafka.topic":    "REPORTS_KAFKA_TOPIC",
}

// Load reads .env (if any), the environment, and an optional YAML file.
// Environment variables win over file values.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("log_level", "info")
	v.SetDefault("row_limit", DefaultRowLimit)
	v.SetDefault("foreign_keys", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", DefaultCacheTTL)
	v.SetDefault("redis.prefix", DefaultCachePrefix)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", DefaultReportTopic)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath
	}
	// 0 means print every row; only nonsense values fall back.
	if cfg.RowLimit < 0 {
		cfg.RowLimit = DefaultRowLimit
	}
	return &cfg, nil
}
