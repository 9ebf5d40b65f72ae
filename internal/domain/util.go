package domain

import (
	"context"

	"github.com/questx-lab/basenft/internal/common"
	"github.com/questx-lab/basenft/pkg/errorx"
	"github.com/questx-lab/basenft/pkg/xcontext"
)

var errStateStore = errorx.New(errorx.Unavailable, "State store is unavailable")

// walletSession returns the wallet session of the current request. Both
// values are empty when no wallet is connected.
func walletSession(ctx context.Context) (string, string) {
	s, err := xcontext.SessionStore(ctx).Get(xcontext.HTTPRequest(ctx))
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode the wallet session: %v", err)
	}

	if s == nil {
		return "", ""
	}

	sessionID, _ := s.Values[common.SessionIDKey].(string)
	address, _ := s.Values[common.SessionAddressKey].(string)
	if sessionID == "" || address == "" {
		return "", ""
	}

	return sessionID, address
}
