package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/bitcointx"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Engine EngineConfig `mapstructure:"engine"`
	Log    LogConfig    `mapstructure:"log"`
}

// APIConfig holds the ledger API settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"` // optional bearer token
}

// EngineConfig holds the form engine settings.
type EngineConfig struct {
	// ReferencePriceUSD is the fixed BTC price used to estimate transfer fees
	// in USD. It is a placeholder, not a quote.
	ReferencePriceUSD string `mapstructure:"reference_price_usd"`
	// Timezone is the IANA name of the zone of entered timestamps.
	Timezone string `mapstructure:"timezone"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// BITCOINTX_, e.g. BITCOINTX_API_BASE_URL.
//
// The file is path if not empty, else $BITCOINTX_CONFIG, else
// ~/.config/bitcointx/config.toml. Only the last one may be missing.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.token", "")
	v.SetDefault("engine.reference_price_usd", "30000")
	v.SetDefault("engine.timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("BITCOINTX_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "bitcointx"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BITCOINTX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Location returns the time zone of entered timestamps.
func (c Config) Location() (*time.Location, error) {
	switch c.Engine.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Engine.Timezone)
	if err != nil {
		return nil, fmt.Errorf("engine.timezone: %w", err)
	}
	return loc, nil
}

// ReferencePrice returns the fixed BTC price in USD used for fee estimates.
func (c Config) ReferencePrice() (bitcointx.Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(c.Engine.ReferencePriceUSD))
	if err != nil {
		return bitcointx.Amount{}, fmt.Errorf("engine.reference_price_usd: %w", err)
	}
	if d.IsNegative() {
		return bitcointx.Amount{}, fmt.Errorf("engine.reference_price_usd: must not be negative, got %s", d)
	}
	return bitcointx.A(d), nil
}
