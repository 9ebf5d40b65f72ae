package main

import (
	"time"

	"github.com/urfave/cli/v2"
)

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "basenft"
	s.app.Usage = "Browse the NFTs of a wallet on Base network"
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the web server",
			Flags:       apiFlags(),
			Category:    "Api",
			Description: `Serves the explorer page, its json api and the metrics endpoint.`,
		},
	}
}

func apiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path of a toml config file",
			EnvVars: []string{"CONFIG_FILE"},
		},
		&cli.StringFlag{
			Name:    "env",
			Value:   "local",
			EnvVars: []string{"ENV"},
		},
		&cli.StringFlag{
			Name:    "api.host",
			EnvVars: []string{"API_HOST"},
		},
		&cli.StringFlag{
			Name:    "api.port",
			Value:   "8080",
			EnvVars: []string{"API_PORT", "PORT"},
		},
		&cli.StringFlag{
			Name:    "api.cert",
			Usage:   "tls certificate file, serves plain http when empty",
			EnvVars: []string{"API_TLS_CERT"},
		},
		&cli.StringFlag{
			Name:    "api.key",
			Usage:   "tls key file",
			EnvVars: []string{"API_TLS_KEY"},
		},
		&cli.StringSliceFlag{
			Name:    "api.allowed-origins",
			Usage:   "origins allowed to call the json api, every origin when empty",
			EnvVars: []string{"API_ALLOWED_ORIGINS"},
		},
		&cli.StringFlag{
			Name:    "session.secret",
			Usage:   "key signing the session cookie, random when empty",
			EnvVars: []string{"SESSION_SECRET"},
		},
		&cli.StringFlag{
			Name:    "session.name",
			Value:   "basenft_session",
			EnvVars: []string{"SESSION_NAME"},
		},
		&cli.DurationFlag{
			Name:    "session.max-age",
			Value:   24 * time.Hour,
			EnvVars: []string{"SESSION_MAX_AGE"},
		},
		&cli.BoolFlag{
			Name:    "session.secure",
			EnvVars: []string{"SESSION_SECURE"},
		},
		&cli.StringFlag{
			Name:    "indexer.endpoint",
			Value:   "https://api.opensea.io",
			EnvVars: []string{"INDEXER_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "indexer.api-key",
			EnvVars: []string{"OPENSEA_API_KEY", "NEXT_PUBLIC_OPENSEA_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "indexer.chain",
			Value:   "base",
			EnvVars: []string{"INDEXER_CHAIN"},
		},
		&cli.IntFlag{
			Name:    "indexer.limit",
			Value:   50,
			EnvVars: []string{"INDEXER_LIMIT"},
		},
		&cli.StringFlag{
			Name:    "indexer.fixed-address",
			Usage:   "query this address instead of the connected wallet",
			EnvVars: []string{"INDEXER_FIXED_ADDRESS"},
		},
		&cli.Float64Flag{
			Name:    "indexer.rate-limit",
			Usage:   "maximum indexer requests per second, 0 is unlimited",
			EnvVars: []string{"INDEXER_RATE_LIMIT"},
		},
		&cli.DurationFlag{
			Name:    "indexer.timeout",
			Usage:   "timeout of one indexer request, 0 is none",
			EnvVars: []string{"INDEXER_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "explorer.host",
			Value:   "basescan.org",
			EnvVars: []string{"EXPLORER_HOST"},
		},
		&cli.StringFlag{
			Name:    "redis.addr",
			Usage:   "share fetch states through redis when set",
			EnvVars: []string{"REDIS_ADDR"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "INFO",
			EnvVars: []string{"LOG_LEVEL"},
		},
		&cli.BoolFlag{
			Name:    "log-json",
			EnvVars: []string{"LOG_JSON"},
		},
	}
}
