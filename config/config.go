package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	ApiServer ServerConfigs   `toml:"api_server"`
	Session   SessionConfigs  `toml:"session"`
	Indexer   IndexerConfigs  `toml:"indexer"`
	Explorer  ExplorerConfigs `toml:"explorer"`
	Redis     RedisConfigs    `toml:"redis"`
	Log       LogConfigs      `toml:"log"`
}

type ServerConfigs struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port"`
	Cert           string   `toml:"cert"`
	Key            string   `toml:"key"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type SessionConfigs struct {
	Secret string   `toml:"secret"`
	Name   string   `toml:"name"`
	MaxAge Duration `toml:"max_age"`
	Secure bool     `toml:"secure"`
}

type IndexerConfigs struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
	Chain    string `toml:"chain"`
	Limit    int    `toml:"limit"`

	// FixedAddress replaces the connected wallet address in indexer queries
	// when it is not empty.
	FixedAddress string `toml:"fixed_address"`

	// RateLimit is the maximum number of outbound requests per second, zero
	// means unlimited.
	RateLimit float64  `toml:"rate_limit"`
	Timeout   Duration `toml:"timeout"`
}

type ExplorerConfigs struct {
	Host string `toml:"host"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type LogConfigs struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// Duration lets toml files carry values like "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Default() Configs {
	return Configs{
		Env: "local",
		ApiServer: ServerConfigs{
			Host: "",
			Port: "8080",
		},
		Session: SessionConfigs{
			Name:   "basenft_session",
			MaxAge: Duration{24 * time.Hour},
		},
		Indexer: IndexerConfigs{
			Endpoint: "https://api.opensea.io",
			Chain:    "base",
			Limit:    50,
		},
		Explorer: ExplorerConfigs{
			Host: "basescan.org",
		},
		Log: LogConfigs{
			Level: "INFO",
		},
	}
}

// LoadFile overlays the values present in a toml file on cfg.
func LoadFile(path string, cfg *Configs) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

func (c Configs) Validate() error {
	if c.Indexer.Endpoint == "" {
		return errors.New("indexer endpoint must not be empty")
	}

	if c.Indexer.Chain == "" {
		return errors.New("indexer chain must not be empty")
	}

	if c.Indexer.Limit <= 0 {
		return fmt.Errorf("indexer limit must be positive, got %d", c.Indexer.Limit)
	}

	if c.Indexer.RateLimit < 0 {
		return fmt.Errorf("indexer rate limit must not be negative, got %v", c.Indexer.RateLimit)
	}

	if c.Explorer.Host == "" {
		return errors.New("explorer host must not be empty")
	}

	if c.Session.Name == "" {
		return errors.New("session name must not be empty")
	}

	return nil
}
