package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/questx-lab/basenft/config"
	"github.com/questx-lab/basenft/internal/common"
	"github.com/questx-lab/basenft/pkg/logger"
	"github.com/questx-lab/basenft/pkg/session"
	"github.com/questx-lab/basenft/pkg/xcontext"
)

func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.Session.Secret = "session-secret"
	cfg.Session.MaxAge = config.Duration{Duration: time.Hour}
	return cfg
}

// MockContext returns a context of a GET / request from a browser without
// any session cookie.
func MockContext() context.Context {
	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithSessionStore(ctx, session.NewCookieStore(
		cfg.Session.Name, cfg.Session.MaxAge.Duration, false, []byte(cfg.Session.Secret)))
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	ctx = xcontext.WithResponseWriter(ctx, httptest.NewRecorder())
	return ctx
}

// MockWalletContext is MockContext with a connected wallet session.
func MockWalletContext(sessionID, address string) context.Context {
	ctx := MockContext()
	SetWalletSession(ctx, sessionID, address)
	return ctx
}

// SetWalletSession changes the session cached for the request of ctx, so
// that later reads in the same request observe it.
func SetWalletSession(ctx context.Context, sessionID, address string) {
	s, _ := xcontext.SessionStore(ctx).Get(xcontext.HTTPRequest(ctx))
	s.Values[common.SessionIDKey] = sessionID
	s.Values[common.SessionAddressKey] = address
}
