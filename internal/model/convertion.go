package model

import "github.com/questx-lab/basenft/internal/entity"

func ConvertNFT(nft entity.NFT) NFT {
	return NFT{
		ID:          nft.ID,
		Title:       nft.Title,
		Description: nft.Description,
		Image:       nft.Image,
		TokenID:     nft.TokenID,
		Contract:    nft.Contract,
	}
}

func ConvertNFTs(nfts []entity.NFT) []NFT {
	result := make([]NFT, 0, len(nfts))
	for _, nft := range nfts {
		result = append(result, ConvertNFT(nft))
	}

	return result
}

func ConvertFetchState(state entity.FetchState) FetchState {
	return FetchState{
		IsLoading: state.IsLoading,
		Error:     state.Error,
		NFTs:      ConvertNFTs(state.NFTs),
	}
}
