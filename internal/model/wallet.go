package model

import "github.com/questx-lab/basenft/internal/common"

type ConnectWalletRequest struct {
	Address   string `json:"address"`
	Connector string `json:"connector"`
	Error     string `json:"error"`
}

type ConnectWalletResponse struct {
	Address     string `json:"address"`
	IsConnected bool   `json:"isConnected"`
	SessionID   string `json:"-"`
}

// SessionInfo is nil when the connection failed, leaving the session as is.
func (r ConnectWalletResponse) SessionInfo() map[string]any {
	if r.SessionID == "" {
		return nil
	}

	return map[string]any{
		common.SessionIDKey:      r.SessionID,
		common.SessionAddressKey: r.Address,
	}
}

type DisconnectWalletRequest struct{}

type DisconnectWalletResponse struct {
	Address     string `json:"address"`
	IsConnected bool   `json:"isConnected"`
}

func (r DisconnectWalletResponse) SessionInfo() map[string]any {
	return map[string]any{
		common.SessionIDKey:      nil,
		common.SessionAddressKey: nil,
	}
}

type GetSessionRequest struct{}

type GetSessionResponse struct {
	Address     string `json:"address"`
	IsConnected bool   `json:"isConnected"`
}
