package model

type NFT struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	TokenID     string `json:"tokenId"`
	Contract    string `json:"contract"`
}

type FetchState struct {
	IsLoading bool   `json:"isLoading"`
	Error     string `json:"error"`
	NFTs      []NFT  `json:"nfts"`
}

type FetchNFTsRequest struct {
	// Wait blocks the request until the indexer has answered.
	Wait bool `json:"wait"`
}

type FetchNFTsResponse struct {
	FetchState
}

type GetNFTsRequest struct{}

type GetNFTsResponse struct {
	Address     string `json:"address"`
	IsConnected bool   `json:"isConnected"`
	FetchState
}
