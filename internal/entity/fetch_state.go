package entity

import "time"

type FetchState struct {
	IsLoading bool   `json:"is_loading"`
	Error     string `json:"error"`
	NFTs      []NFT  `json:"nfts"`

	// Generation is the stamp of the last fetch or reset applied to this
	// state. A fetch result is only applied while it still matches.
	Generation int64     `json:"generation"`
	UpdatedAt  time.Time `json:"updated_at"`
}
