package main

import (
	"context"
	"net/http"
	"time"

	"github.com/questx-lab/basenft/config"
	"github.com/questx-lab/basenft/internal/client"
	"github.com/questx-lab/basenft/internal/domain"
	"github.com/questx-lab/basenft/internal/repository"
	"github.com/questx-lab/basenft/internal/view"
	"github.com/questx-lab/basenft/pkg/crypto"
	"github.com/questx-lab/basenft/pkg/logger"
	"github.com/questx-lab/basenft/pkg/router"
	"github.com/questx-lab/basenft/pkg/session"
	"github.com/questx-lab/basenft/pkg/xcontext"
	"github.com/questx-lab/basenft/pkg/xredis"
	"github.com/urfave/cli/v2"
)

const fetchStateCleanupInterval = 10 * time.Minute

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger

	sessionStore *session.Store
	redisClient  xredis.Client
	view         *view.View

	fetchStateRepo   repository.FetchStateRepository
	memoryFetchState interface{ Cleanup(time.Duration) int }

	indexerClient client.IndexerClient

	walletDomain domain.WalletDomain
	nftDomain    domain.NFTDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	s.logger = logger.NewZapLogger(s.configs.Log.Level, s.configs.Log.JSON)
}

func (s *srv) loadSessionStore() error {
	secret := s.configs.Session.Secret
	if secret == "" {
		var err error
		secret, err = crypto.GenerateRandomString()
		if err != nil {
			return err
		}

		s.logger.Warnf("No session secret is configured, sessions will not survive a restart")
	}

	s.sessionStore = session.NewCookieStore(
		s.configs.Session.Name,
		s.configs.Session.MaxAge.Duration,
		s.configs.Session.Secure,
		[]byte(secret),
	)
	return nil
}

func (s *srv) loadRedis(ctx context.Context) error {
	if s.configs.Redis.Addr == "" {
		return nil
	}

	redisClient, err := xredis.NewClient(xcontext.WithConfigs(ctx, *s.configs))
	if err != nil {
		return err
	}

	s.redisClient = redisClient
	return nil
}

func (s *srv) loadRepos() {
	if s.redisClient != nil {
		s.fetchStateRepo = repository.NewRedisFetchStateRepository(
			s.redisClient, s.configs.Session.MaxAge.Duration)
		return
	}

	memoryRepo := repository.NewMemoryFetchStateRepository()
	s.fetchStateRepo = memoryRepo
	s.memoryFetchState = memoryRepo
}

func (s *srv) loadClients() {
	s.indexerClient = client.NewIndexerClient(s.configs.Indexer)
}

func (s *srv) loadDomains() {
	s.walletDomain = domain.NewWalletDomain(s.fetchStateRepo)
	s.nftDomain = domain.NewNFTDomain(s.fetchStateRepo, s.indexerClient)
}

func (s *srv) loadView() error {
	v, err := view.New(s.configs.Explorer.Host)
	if err != nil {
		return err
	}

	s.view = v
	return nil
}

// runJanitor drops the in-memory fetch states of expired sessions. Redis
// expires them by itself.
func (s *srv) runJanitor(ctx context.Context) {
	if s.memoryFetchState == nil {
		return
	}

	ticker := time.NewTicker(fetchStateCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.memoryFetchState.Cleanup(s.configs.Session.MaxAge.Duration); n > 0 {
				s.logger.Debugf("Cleaned up %d expired fetch states", n)
			}
		}
	}
}
