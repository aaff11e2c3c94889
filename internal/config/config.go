package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	PriceURL    string
	SubgraphURL string
	PGDSN       string
	Out         string
	Interval    time.Duration
	LastN       int
	LogLevel    string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PERPSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("out", "./data/quotes.jsonl")
	v.SetDefault("interval", 10*time.Second)
	v.SetDefault("last", 10)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		PriceURL:    v.GetString("price-url"),
		SubgraphURL: v.GetString("subgraph-url"),
		PGDSN:       v.GetString("pg-dsn"),
		Out:         v.GetString("out"),
		Interval:    v.GetDuration("interval"),
		LastN:       v.GetInt("last"),
		LogLevel:    v.GetString("log-level"),
	}

	return cfg, nil
}
