package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/questx-lab/basenft/config"
	"github.com/questx-lab/basenft/pkg/errorx"
	"github.com/questx-lab/basenft/pkg/logger"
	"github.com/questx-lab/basenft/pkg/session"
	"github.com/questx-lab/basenft/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may return a nil context to keep the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs, even when a middleware or the handler failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	inner *mux.Router

	cfg          config.Configs
	logger       logger.Logger
	sessionStore *session.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(cfg config.Configs, logger logger.Logger, sessionStore *session.Store) *Router {
	return &Router{
		inner:        mux.NewRouter(),
		cfg:          cfg,
		logger:       logger,
		sessionStore: sessionStore,
	}
}

// Branch returns a router sharing the same routes but with its own copy of
// middlewares. Middlewares added to the branch only apply to endpoints
// registered through the branch.
func (r *Router) Branch() *Router {
	return &Router{
		inner:        r.inner,
		cfg:          r.cfg,
		logger:       r.logger,
		sessionStore: r.sessionStore,
		befores:      append([]MiddlewareFunc{}, r.befores...),
		afters:       append([]MiddlewareFunc{}, r.afters...),
		closers:      append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(prefix string, fs http.FileSystem) {
	r.inner.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(fs)))
}

func (r *Router) Handle(path string, handler http.Handler) {
	r.inner.Handle(path, handler)
}

func (r *Router) Handler() http.Handler {
	return r.inner
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	r.inner.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		writer := &statusWriter{ResponseWriter: w}
		ctx := r.newContext(req, writer)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}

			handleResponse(ctx, writer)
		}()

		var ok bool
		if ctx, ok = runMiddlewares(ctx, befores); !ok {
			return
		}

		request := new(Request)
		if err := bind(req, request); err != nil {
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request: %v", err))
			return
		}

		resp, err := handler(ctx, request)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}

		if resp != nil {
			ctx = xcontext.WithResponse(ctx, resp)
		}

		ctx, _ = runMiddlewares(ctx, afters)
	}).Methods(method)
}

func (r *Router) newContext(req *http.Request, w http.ResponseWriter) context.Context {
	ctx := req.Context()
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithSessionStore(ctx, r.sessionStore)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithResponseWriter(ctx, w)
	ctx = xcontext.WithStartTime(ctx, time.Now())
	return ctx
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, bool) {
	for _, middleware := range middlewares {
		newCtx, err := middleware(ctx)
		if err != nil {
			return xcontext.WithError(ctx, err), false
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, true
}
