package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/basenft/internal/middleware"
	"github.com/questx-lab/basenft/internal/view"
	"github.com/questx-lab/basenft/pkg/prometheus"
	"github.com/questx-lab/basenft/pkg/router"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func (s *srv) startApi(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := s.loadConfig(c); err != nil {
		return err
	}

	s.loadLogger()
	if err := s.loadSessionStore(); err != nil {
		return err
	}

	if err := s.loadRedis(ctx); err != nil {
		return err
	}

	s.loadRepos()
	s.loadClients()
	s.loadDomains()
	if err := s.loadView(); err != nil {
		return err
	}

	s.loadRouter()

	s.server = &http.Server{
		Addr:              s.configs.ApiServer.Address(),
		Handler:           middleware.AllowCors(s.configs.ApiServer.AllowedOrigins, s.router.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.runJanitor(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorf("Cannot shutdown the server: %v", err)
		}
	}()

	s.logger.Infof("Starting server on %s", s.server.Addr)

	var err error
	if s.configs.ApiServer.Cert != "" && s.configs.ApiServer.Key != "" {
		err = s.server.ListenAndServeTLS(s.configs.ApiServer.Cert, s.configs.ApiServer.Key)
	} else {
		err = s.server.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(*s.configs, s.logger, s.sessionStore)
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	s.router.Static("/static/", view.Static())
	s.router.Handle("/metrics", prometheus.NewHandler())
	s.router.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	// Page
	pageRouter := s.router.Branch()
	pageRouter.AddCloser(middleware.ErrorPage(s.view))
	{
		renderRouter := pageRouter.Branch()
		renderRouter.After(middleware.RenderPage(s.view))
		router.GET(renderRouter, "/", s.nftDomain.GetNFTs)

		formRouter := pageRouter.Branch()
		formRouter.After(middleware.HandleSaveSession())
		formRouter.After(middleware.RedirectTo("/"))
		router.POST(formRouter, "/wallet/connect", s.walletDomain.Connect)
		router.POST(formRouter, "/wallet/disconnect", s.walletDomain.Disconnect)
		router.POST(formRouter, "/nfts/fetch", s.nftDomain.FetchNFTs)
	}

	// Json API
	apiRouter := s.router.Branch()
	apiRouter.After(middleware.HandleSaveSession())
	{
		router.GET(apiRouter, "/api/getSession", s.walletDomain.GetSession)
		router.GET(apiRouter, "/api/getNFTs", s.nftDomain.GetNFTs)
		router.POST(apiRouter, "/api/fetchNFTs", s.nftDomain.FetchNFTs)
		router.POST(apiRouter, "/api/connectWallet", s.walletDomain.Connect)
		router.POST(apiRouter, "/api/disconnectWallet", s.walletDomain.Disconnect)
	}
}
