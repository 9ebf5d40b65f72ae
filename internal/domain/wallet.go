package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/questx-lab/basenft/internal/common"
	"github.com/questx-lab/basenft/internal/model"
	"github.com/questx-lab/basenft/internal/repository"
	"github.com/questx-lab/basenft/pkg/ethutil"
	"github.com/questx-lab/basenft/pkg/xcontext"
	"golang.org/x/exp/slices"
)

var supportedConnectors = []string{common.ConnectorInjected}

type WalletDomain interface {
	Connect(context.Context, *model.ConnectWalletRequest) (*model.ConnectWalletResponse, error)
	Disconnect(context.Context, *model.DisconnectWalletRequest) (*model.DisconnectWalletResponse, error)
	GetSession(context.Context, *model.GetSessionRequest) (*model.GetSessionResponse, error)
}

type walletDomain struct {
	fetchStateRepo repository.FetchStateRepository
}

func NewWalletDomain(fetchStateRepo repository.FetchStateRepository) WalletDomain {
	return &walletDomain{fetchStateRepo: fetchStateRepo}
}

// Connect never fails because of the wallet. A rejected or invalid connection
// is logged and the current session is returned unchanged.
func (d *walletDomain) Connect(
	ctx context.Context, req *model.ConnectWalletRequest,
) (*model.ConnectWalletResponse, error) {
	sessionID, address := walletSession(ctx)
	unchanged := &model.ConnectWalletResponse{Address: address, IsConnected: address != ""}

	connector := req.Connector
	if connector == "" {
		connector = common.ConnectorInjected
	}

	if !slices.Contains(supportedConnectors, connector) {
		xcontext.Logger(ctx).Warnf("Connection error: unsupported connector %s", connector)
		return unchanged, nil
	}

	if req.Error != "" {
		xcontext.Logger(ctx).Warnf("Connection error: %s", req.Error)
		return unchanged, nil
	}

	checksummed, err := ethutil.ChecksumAddress(req.Address)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Connection error: %v", err)
		return unchanged, nil
	}

	if sessionID != "" {
		if err := d.fetchStateRepo.Delete(ctx, sessionID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot delete the previous fetch state: %v", err)
		}
	}

	return &model.ConnectWalletResponse{
		Address:     checksummed,
		IsConnected: true,
		SessionID:   uuid.NewString(),
	}, nil
}

func (d *walletDomain) Disconnect(
	ctx context.Context, req *model.DisconnectWalletRequest,
) (*model.DisconnectWalletResponse, error) {
	sessionID, _ := walletSession(ctx)
	if sessionID != "" {
		// A fetch still running for this session finds no state with its
		// generation and drops its result. If the delete fails the state is
		// orphaned with the cleared cookie and expires by itself.
		if err := d.fetchStateRepo.Delete(ctx, sessionID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete fetch state: %v", err)
		}
	}

	return &model.DisconnectWalletResponse{Address: "", IsConnected: false}, nil
}

func (d *walletDomain) GetSession(
	ctx context.Context, req *model.GetSessionRequest,
) (*model.GetSessionResponse, error) {
	_, address := walletSession(ctx)
	return &model.GetSessionResponse{Address: address, IsConnected: address != ""}, nil
}
