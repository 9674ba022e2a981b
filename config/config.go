package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address        string `yaml:"address"`
	RequestTimeout int    `yaml:"request_timeout_seconds"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	PoolMin  int    `yaml:"pool_min"`
	PoolMax  int    `yaml:"pool_max"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_min_conns=%d pool_max_conns=%d",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.PoolMin, d.PoolMax)
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`

	CitiesCacheTTL   int `yaml:"cities_cache_ttl_seconds"`
	AirportsCacheTTL int `yaml:"airports_cache_ttl_seconds"`
	AirlinesCacheTTL int `yaml:"airlines_cache_ttl_seconds"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	GroupID            string   `yaml:"group_id"`
}

type SessionConfig struct {
	TokenTTLSeconds   int `yaml:"token_ttl_seconds"`
	SessionTTLSeconds int `yaml:"session_ttl_seconds"`
}

func (s SessionConfig) TokenTTL() time.Duration {
	return time.Duration(s.TokenTTLSeconds) * time.Second
}

func (s SessionConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLSeconds) * time.Second
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Debug bool   `yaml:"debug"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.RequestTimeout == 0 {
		c.HTTP.RequestTimeout = 5
	}
	if c.Database.PoolMin == 0 {
		c.Database.PoolMin = 1
	}
	if c.Database.PoolMax == 0 {
		c.Database.PoolMax = 10
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "aviapp:"
	}
	if c.Redis.CitiesCacheTTL == 0 {
		c.Redis.CitiesCacheTTL = 86400 * 7
	}
	if c.Redis.AirportsCacheTTL == 0 {
		c.Redis.AirportsCacheTTL = 86400 * 7
	}
	if c.Redis.AirlinesCacheTTL == 0 {
		c.Redis.AirlinesCacheTTL = 86400 * 7
	}
	if c.Session.TokenTTLSeconds == 0 {
		c.Session.TokenTTLSeconds = 3600
	}
	if c.Session.SessionTTLSeconds == 0 {
		c.Session.SessionTTLSeconds = 1800
	}
}
