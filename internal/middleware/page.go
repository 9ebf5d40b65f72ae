package middleware

import (
	"context"
	"net/http"

	"github.com/questx-lab/basenft/internal/model"
	"github.com/questx-lab/basenft/internal/view"
	"github.com/questx-lab/basenft/pkg/errorx"
	"github.com/questx-lab/basenft/pkg/router"
	"github.com/questx-lab/basenft/pkg/xcontext"
)

// RenderPage writes the html page for the page state returned by the
// handler.
func RenderPage(v *view.View) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		resp, ok := xcontext.Response(ctx).(*model.GetNFTsResponse)
		if !ok {
			return nil, errorx.New(errorx.Internal, "Unexpected page response %T", xcontext.Response(ctx))
		}

		w := xcontext.ResponseWriter(ctx)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)

		err := v.Page(w, view.PageData{
			Address:     resp.Address,
			IsConnected: resp.IsConnected,
			IsLoading:   resp.IsLoading,
			Error:       resp.Error,
			NFTs:        resp.NFTs,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot render the page: %v", err)
		}

		return nil, nil
	}
}

// ErrorPage renders failed page requests as html instead of the json
// envelope.
func ErrorPage(v *view.View) router.CloserFunc {
	return func(ctx context.Context) {
		err := xcontext.Error(ctx)
		if err == nil {
			return
		}

		w := xcontext.ResponseWriter(ctx)
		if router.Status(w) != 0 {
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(router.HTTPStatus(err))
		if err := v.Error(w, view.ErrorData{Message: router.ErrorMessage(err)}); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot render the error page: %v", err)
		}
	}
}
