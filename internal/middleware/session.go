package middleware

import (
	"context"

	"github.com/questx-lab/basenft/pkg/router"
	"github.com/questx-lab/basenft/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession writes the session info of the response to the session
// cookie. A nil value deletes its key, a nil map leaves the cookie as is.
func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return nil, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return nil, nil
		}

		req := xcontext.HTTPRequest(ctx)
		store := xcontext.SessionStore(ctx)
		session, err := store.Get(req)
		if err != nil {
			// The cookie is replaced by a fresh session below.
			xcontext.Logger(ctx).Debugf("Cannot decode the session cookie: %v", err)
		}

		for k, v := range sessionInfo {
			if v == nil {
				delete(session.Values, k)
			} else {
				session.Values[k] = v
			}
		}

		if err := store.Save(req, xcontext.ResponseWriter(ctx), session); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save the session: %v", err)
			return nil, err
		}

		return nil, nil
	}
}
