package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/basenft/config"
	"github.com/questx-lab/basenft/internal/common"
	"github.com/questx-lab/basenft/internal/entity"
	"github.com/questx-lab/basenft/pkg/api"
	"github.com/questx-lab/basenft/pkg/xcontext"
	"golang.org/x/time/rate"
)

const indexerNFTsPath = "/api/v2/chain/%s/account/%s/nfts"

// IndexerResult is one of NFTList, MissingNFTs or HTTPFailure.
type IndexerResult interface {
	isIndexerResult()
}

// NFTList is a successful answer. NFTs may be empty.
type NFTList struct {
	NFTs []entity.NFT
}

// MissingNFTs is a successful answer whose body has no nfts field.
type MissingNFTs struct{}

// HTTPFailure is a non-2xx answer.
type HTTPFailure struct {
	StatusCode int
	Status     string
}

func (NFTList) isIndexerResult()     {}
func (MissingNFTs) isIndexerResult() {}
func (HTTPFailure) isIndexerResult() {}

type IndexerClient interface {
	// GetNFTs sends exactly one request for the NFTs owned by address. A
	// returned error means the request could not be sent or the body could
	// not be decoded.
	GetNFTs(ctx context.Context, address string) (IndexerResult, error)
}

type indexerClient struct {
	generator api.Generator
	apiKey    string
	chain     string
	limit     int
	limiter   *rate.Limiter

	// httpClient replaces the default client when a timeout is configured.
	httpClient *http.Client
}

func NewIndexerClient(cfg config.IndexerConfigs) *indexerClient {
	c := &indexerClient{
		generator: api.NewGenerator(cfg.Endpoint),
		apiKey:    cfg.APIKey,
		chain:     cfg.Chain,
		limit:     cfg.Limit,
	}

	if cfg.Timeout.Duration > 0 {
		c.httpClient = &http.Client{Timeout: cfg.Timeout.Duration}
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return c
}

func (c *indexerClient) GetNFTs(ctx context.Context, address string) (IndexerResult, error) {
	start := time.Now()
	result, err := c.getNFTs(ctx, address)
	observeIndexerRequest(result, err, time.Since(start))
	return result, err
}

func (c *indexerClient) getNFTs(ctx context.Context, address string) (IndexerResult, error) {
	if c.httpClient != nil {
		ctx = xcontext.WithHTTPClient(ctx, c.httpClient)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.generator.New(indexerNFTsPath, c.chain, address).
		Header("Accept", "application/json").
		Query(api.Parameter{"limit": strconv.Itoa(c.limit)}).
		GET(ctx, api.APIKey("X-API-KEY", c.apiKey))
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return HTTPFailure{StatusCode: resp.Code, Status: resp.Status}, nil
	}

	body, err := resp.Object()
	if err != nil {
		return nil, err
	}

	return decodeNFTs(body)
}

func decodeNFTs(body api.JSON) (IndexerResult, error) {
	raw, ok := body["nfts"]
	if !ok || raw == nil {
		return MissingNFTs{}, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid type of field nfts (%T)", raw)
	}

	nfts := make([]entity.NFT, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid type of nfts[%d] (%T)", i, item)
		}

		nft, err := decodeNFT(obj)
		if err != nil {
			return nil, fmt.Errorf("invalid nfts[%d]: %w", i, err)
		}

		nfts = append(nfts, nft)
	}

	return NFTList{NFTs: nfts}, nil
}

func decodeNFT(obj map[string]any) (entity.NFT, error) {
	var nft entity.NFT
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &nft,
	})
	if err != nil {
		return entity.NFT{}, err
	}

	if err := decoder.Decode(obj); err != nil {
		return entity.NFT{}, err
	}

	if nft.TokenID == "" {
		return entity.NFT{}, errors.New("missing tokenId")
	}

	if nft.Contract == "" {
		return entity.NFT{}, errors.New("missing contract")
	}

	return nft, nil
}

func observeIndexerRequest(result IndexerResult, err error, elapsed time.Duration) {
	label := common.IndexerResultError
	switch t := result.(type) {
	case NFTList:
		if len(t.NFTs) == 0 {
			label = common.IndexerResultEmpty
		} else {
			label = common.IndexerResultSuccess
		}
	case MissingNFTs:
		label = common.IndexerResultMissingNFTs
	case HTTPFailure:
		label = common.IndexerResultHTTPFailure
	}

	if err != nil {
		label = common.IndexerResultError
	}

	common.PromCounters[common.IndexerRequestTotal].WithLabelValues(label).Inc()
	common.PromHistograms[common.IndexerRequestSeconds].WithLabelValues(label).Observe(elapsed.Seconds())
}
