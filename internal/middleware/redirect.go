package middleware

import (
	"context"
	"net/http"

	"github.com/questx-lab/basenft/pkg/router"
	"github.com/questx-lab/basenft/pkg/xcontext"
)

// RedirectTo answers every successful form post with a 303 to uri, so that
// reloading the page does not post the form again.
func RedirectTo(uri string) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		http.Redirect(xcontext.ResponseWriter(ctx), xcontext.HTTPRequest(ctx), uri, http.StatusSeeOther)
		return nil, nil
	}
}
