package entity

// NFT is one record of the indexer response. Only TokenID and Contract are
// guaranteed to be set.
type NFT struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	Image       string `json:"image" mapstructure:"image"`
	TokenID     string `json:"tokenId" mapstructure:"tokenId"`
	Contract    string `json:"contract" mapstructure:"contract"`
}
