// Package config loads the pipeline configuration from a YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the full pipeline configuration.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Source SourceConfig `mapstructure:"source"`
	RFM    RFMConfig    `mapstructure:"rfm"`
	Report ReportConfig `mapstructure:"report"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

// SourceConfig selects where transactions come from. Exactly one of csv or
// dsn must be set; table applies to the dsn source.
type SourceConfig struct {
	CSV   string `mapstructure:"csv"`
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

type RFMConfig struct {
	ReferenceDate string `mapstructure:"reference_date"` // RFC 3339; empty derives it from the data
}

type ReportConfig struct {
	Top             int     `mapstructure:"top"`
	HighThreshold   float64 `mapstructure:"high_threshold"`
	MediumThreshold float64 `mapstructure:"medium_threshold"`
}

// StoreConfig configures run persistence. An empty driver disables it.
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or mysql
	DSN    string `mapstructure:"dsn"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// RedisConfig configures run-completion notifications. An empty addr
// disables them.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		App:    AppConfig{Name: "marketing-analytics", Env: "dev", LogLevel: "info"},
		Source: SourceConfig{Table: "retail"},
		Report: ReportConfig{Top: 10, HighThreshold: 1000, MediumThreshold: 500},
		Server: ServerConfig{Port: "8080"},
		Redis:  RedisConfig{Channel: "rfm.runs"},
	}
}

// Load reads the config file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions before a run starts.
func (c *Config) Validate() error {
	if c.Source.CSV == "" && c.Source.DSN == "" {
		return fmt.Errorf("either source.csv or source.dsn is required")
	}
	if c.Source.CSV != "" && c.Source.DSN != "" {
		return fmt.Errorf("source.csv and source.dsn are mutually exclusive")
	}
	if c.Source.DSN != "" && c.Source.Table == "" {
		return fmt.Errorf("source.table is required with source.dsn")
	}
	if c.RFM.ReferenceDate != "" {
		if _, err := time.Parse(time.RFC3339, c.RFM.ReferenceDate); err != nil {
			return fmt.Errorf("rfm.reference_date must be RFC 3339: %w", err)
		}
	}
	if c.Report.Top <= 0 {
		return fmt.Errorf("report.top must be positive")
	}
	if c.Report.HighThreshold < c.Report.MediumThreshold {
		return fmt.Errorf("report.high_threshold must not be below report.medium_threshold")
	}
	if c.Store.Driver != "" && c.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required with store.driver")
	}
	return nil
}

// ReferenceTime parses the configured reference date. The zero time means
// none was configured.
func (c *Config) ReferenceTime() (time.Time, error) {
	if c.RFM.ReferenceDate == "" {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, c.RFM.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse reference date: %w", err)
	}
	return at, nil
}
