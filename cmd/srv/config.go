package main

import (
	"github.com/questx-lab/basenft/config"
	"github.com/urfave/cli/v2"
)

// loadConfig layers, from lowest to highest precedence, the defaults, the
// toml file given by --config and the flags or environment variables.
func (s *srv) loadConfig(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		if err := config.LoadFile(path, &cfg); err != nil {
			return err
		}
	}

	overrideString(c, "env", &cfg.Env)
	overrideString(c, "api.host", &cfg.ApiServer.Host)
	overrideString(c, "api.port", &cfg.ApiServer.Port)
	overrideString(c, "api.cert", &cfg.ApiServer.Cert)
	overrideString(c, "api.key", &cfg.ApiServer.Key)
	if c.IsSet("api.allowed-origins") {
		cfg.ApiServer.AllowedOrigins = c.StringSlice("api.allowed-origins")
	}

	overrideString(c, "session.secret", &cfg.Session.Secret)
	overrideString(c, "session.name", &cfg.Session.Name)
	if c.IsSet("session.max-age") {
		cfg.Session.MaxAge = config.Duration{Duration: c.Duration("session.max-age")}
	}
	if c.IsSet("session.secure") {
		cfg.Session.Secure = c.Bool("session.secure")
	}

	overrideString(c, "indexer.endpoint", &cfg.Indexer.Endpoint)
	overrideString(c, "indexer.api-key", &cfg.Indexer.APIKey)
	overrideString(c, "indexer.chain", &cfg.Indexer.Chain)
	overrideString(c, "indexer.fixed-address", &cfg.Indexer.FixedAddress)
	if c.IsSet("indexer.limit") {
		cfg.Indexer.Limit = c.Int("indexer.limit")
	}
	if c.IsSet("indexer.rate-limit") {
		cfg.Indexer.RateLimit = c.Float64("indexer.rate-limit")
	}
	if c.IsSet("indexer.timeout") {
		cfg.Indexer.Timeout = config.Duration{Duration: c.Duration("indexer.timeout")}
	}

	overrideString(c, "explorer.host", &cfg.Explorer.Host)
	overrideString(c, "redis.addr", &cfg.Redis.Addr)
	overrideString(c, "log-level", &cfg.Log.Level)
	if c.IsSet("log-json") {
		cfg.Log.JSON = c.Bool("log-json")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	s.configs = &cfg
	return nil
}

func overrideString(c *cli.Context, name string, target *string) {
	if c.IsSet(name) {
		*target = c.String(name)
	}
}
