package domain

import (
	"context"
	"fmt"

	"github.com/questx-lab/basenft/internal/client"
	"github.com/questx-lab/basenft/internal/entity"
	"github.com/questx-lab/basenft/internal/model"
	"github.com/questx-lab/basenft/internal/repository"
	"github.com/questx-lab/basenft/pkg/errorx"
	"github.com/questx-lab/basenft/pkg/xcontext"
)

const (
	ErrMsgNoNFTs      = "No NFTs found for this wallet on Base network"
	ErrMsgMissingNFTs = "No NFTs data in the response"
)

type NFTDomain interface {
	FetchNFTs(context.Context, *model.FetchNFTsRequest) (*model.FetchNFTsResponse, error)
	GetNFTs(context.Context, *model.GetNFTsRequest) (*model.GetNFTsResponse, error)
}

type nftDomain struct {
	fetchStateRepo repository.FetchStateRepository
	indexer        client.IndexerClient
}

func NewNFTDomain(
	fetchStateRepo repository.FetchStateRepository,
	indexer client.IndexerClient,
) NFTDomain {
	return &nftDomain{
		fetchStateRepo: fetchStateRepo,
		indexer:        indexer,
	}
}

// FetchNFTs marks the session as loading and queries the indexer in the
// background. The result is applied only if no later fetch or disconnect
// happened in between.
func (d *nftDomain) FetchNFTs(
	ctx context.Context, req *model.FetchNFTsRequest,
) (*model.FetchNFTsResponse, error) {
	sessionID, address := walletSession(ctx)
	if address == "" {
		return &model.FetchNFTsResponse{
			FetchState: model.ConvertFetchState(entity.FetchState{}),
		}, nil
	}

	generation, err := d.fetchStateRepo.NextGeneration(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the next fetch generation: %v", err)
		return nil, errStateStore
	}

	state, err := d.fetchStateRepo.Update(ctx, sessionID, func(s *entity.FetchState) error {
		s.IsLoading = true
		s.Error = ""
		s.Generation = generation
		return nil
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot begin fetching NFTs: %v", err)
		return nil, errStateStore
	}

	target := address
	if fixed := xcontext.Configs(ctx).Indexer.FixedAddress; fixed != "" {
		target = fixed
	}

	done := make(chan entity.FetchState, 1)
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		done <- d.complete(bgCtx, sessionID, target, generation)
	}()

	if !req.Wait {
		return &model.FetchNFTsResponse{FetchState: model.ConvertFetchState(state)}, nil
	}

	select {
	case state = <-done:
		return &model.FetchNFTsResponse{FetchState: model.ConvertFetchState(state)}, nil
	case <-ctx.Done():
		return nil, errorx.New(errorx.Unavailable, "Request is cancelled")
	}
}

// complete sends the indexer request and applies its outcome to the state
// stamped with generation. It returns the state found after the update.
func (d *nftDomain) complete(
	ctx context.Context, sessionID, address string, generation int64,
) entity.FetchState {
	result, fetchErr := d.indexer.GetNFTs(ctx, address)

	stale := false
	state, err := d.fetchStateRepo.Update(ctx, sessionID, func(s *entity.FetchState) error {
		if s.Generation != generation {
			stale = true
			return repository.ErrNotModified
		}

		applyIndexerResult(ctx, s, result, fetchErr)
		s.IsLoading = false
		return nil
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot finish fetching NFTs: %v", err)
		return state
	}

	if stale {
		xcontext.Logger(ctx).Debugf("Drop the NFTs result of generation %d, current is %d",
			generation, state.Generation)
	}

	return state
}

func applyIndexerResult(
	ctx context.Context, s *entity.FetchState, result client.IndexerResult, err error,
) {
	if err != nil {
		s.Error = fmt.Sprintf("Error fetching NFTs: %v", err)
		xcontext.Logger(ctx).Errorf("%s", s.Error)
		return
	}

	switch t := result.(type) {
	case client.NFTList:
		xcontext.Logger(ctx).Debugf("Fetched NFTs: %v", t.NFTs)
		s.NFTs = t.NFTs
		if s.NFTs == nil {
			s.NFTs = []entity.NFT{}
		}
		if len(s.NFTs) == 0 {
			s.Error = ErrMsgNoNFTs
		}

	case client.MissingNFTs:
		s.NFTs = []entity.NFT{}
		s.Error = ErrMsgMissingNFTs

	case client.HTTPFailure:
		s.Error = fmt.Sprintf("Error fetching NFTs: Failed to fetch NFTs: %s", t.Status)
		xcontext.Logger(ctx).Errorf("%s", s.Error)

	default:
		s.Error = fmt.Sprintf("Error fetching NFTs: unexpected result %T", result)
		xcontext.Logger(ctx).Errorf("%s", s.Error)
	}
}

func (d *nftDomain) GetNFTs(
	ctx context.Context, req *model.GetNFTsRequest,
) (*model.GetNFTsResponse, error) {
	sessionID, address := walletSession(ctx)
	if sessionID == "" {
		return &model.GetNFTsResponse{
			FetchState: model.ConvertFetchState(entity.FetchState{}),
		}, nil
	}

	state, err := d.fetchStateRepo.Get(ctx, sessionID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get fetch state: %v", err)
		return nil, errStateStore
	}

	return &model.GetNFTsResponse{
		Address:     address,
		IsConnected: true,
		FetchState:  model.ConvertFetchState(state),
	}, nil
}
