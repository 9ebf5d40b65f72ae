package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/questx-lab/basenft/config"
	"github.com/questx-lab/basenft/internal/entity"
	"github.com/questx-lab/basenft/pkg/api"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x5dadb2e88cf9cc2b6f53b5e7413ebfa1a7d740a1"

func newTestIndexer(t *testing.T, handler http.HandlerFunc) *indexerClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.Default().Indexer
	cfg.Endpoint = server.URL
	cfg.APIKey = "test-key"
	return NewIndexerClient(cfg)
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestIndexerClient_SendsDocumentedRequest(t *testing.T) {
	requests := 0
	c := newTestIndexer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v2/chain/base/account/"+testAddress+"/nfts", r.URL.Path)
		require.Equal(t, "50", r.URL.Query().Get("limit"))
		require.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		respond(http.StatusOK, `{"nfts": []}`)(w, r)
	})

	result, err := c.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, NFTList{NFTs: []entity.NFT{}}, result)
	require.Equal(t, 1, requests)
}

func TestIndexerClient_BuildsRequestWithGenerator(t *testing.T) {
	generator := &api.MockGenerator{
		Respond: func(ctx context.Context, call api.MockCall) (*api.Response, error) {
			return &api.Response{
				Code:    http.StatusOK,
				Status:  "OK",
				RawBody: []byte(`{"nfts": [{"tokenId": 1, "contract": "0xabc"}]}`),
			}, nil
		},
	}

	cfg := config.Default().Indexer
	cfg.APIKey = "test-key"
	c := NewIndexerClient(cfg)
	c.generator = generator

	result, err := c.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, NFTList{NFTs: []entity.NFT{{TokenID: "1", Contract: "0xabc"}}}, result)

	calls := generator.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, indexerNFTsPath, calls[0].Path)
	require.Equal(t, []any{"base", testAddress}, calls[0].Args)
	require.Equal(t, http.MethodGet, calls[0].Method)
	require.Equal(t, api.Parameter{"limit": "50"}, calls[0].Query)
	require.Equal(t, "test-key", calls[0].Header.Get("X-API-KEY"))
	require.Equal(t, "application/json", calls[0].Header.Get("Accept"))
	require.Nil(t, calls[0].Body)
}

func TestIndexerClient_GeneratorHTTPFailure(t *testing.T) {
	c := NewIndexerClient(config.Default().Indexer)
	c.generator = &api.MockGenerator{
		Respond: func(ctx context.Context, call api.MockCall) (*api.Response, error) {
			return &api.Response{Code: http.StatusTooManyRequests, Status: "Too Many Requests"}, nil
		},
	}

	result, err := c.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, HTTPFailure{StatusCode: http.StatusTooManyRequests, Status: "Too Many Requests"}, result)
}

func TestIndexerClient_DecodesList(t *testing.T) {
	c := newTestIndexer(t, respond(http.StatusOK, `{"nfts": [
		{"id": "1", "tokenId": "12345678901", "contract": "0xabc", "title": "X"},
		{"id": 2, "tokenId": 7, "contract": "0xdef", "title": null, "image": "https://img/7.png"}
	]}`))

	result, err := c.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, NFTList{NFTs: []entity.NFT{
		{ID: "1", TokenID: "12345678901", Contract: "0xabc", Title: "X"},
		{ID: "2", TokenID: "7", Contract: "0xdef", Image: "https://img/7.png"},
	}}, result)
}

func TestIndexerClient_MissingNFTs(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "no field", body: `{"next": null}`},
		{name: "null field", body: `{"nfts": null}`},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestIndexer(t, respond(http.StatusOK, tt.body))
			result, err := c.GetNFTs(context.Background(), testAddress)
			require.NoError(t, err)
			require.Equal(t, MissingNFTs{}, result)
		})
	}
}

func TestIndexerClient_HTTPFailure(t *testing.T) {
	c := newTestIndexer(t, respond(http.StatusUnauthorized, `{"detail": "bad key"}`))

	result, err := c.GetNFTs(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, HTTPFailure{StatusCode: http.StatusUnauthorized, Status: "Unauthorized"}, result)
}

func TestIndexerClient_DecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "not an object", body: `[1, 2, 3]`},
		{name: "nfts not an array", body: `{"nfts": "none"}`},
		{name: "entry not an object", body: `{"nfts": [1]}`},
		{name: "missing token id", body: `{"nfts": [{"contract": "0xabc"}]}`},
		{name: "missing contract", body: `{"nfts": [{"tokenId": "1"}]}`},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestIndexer(t, respond(http.StatusOK, tt.body))
			result, err := c.GetNFTs(context.Background(), testAddress)
			require.Error(t, err)
			require.Nil(t, result)
		})
	}
}

func TestIndexerClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	cfg := config.Default().Indexer
	cfg.Endpoint = server.URL
	server.Close()

	result, err := NewIndexerClient(cfg).GetNFTs(context.Background(), testAddress)
	require.Error(t, err)
	require.Nil(t, result)
}

func TestIndexerClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(server.Close)

	cfg := config.Default().Indexer
	cfg.Endpoint = server.URL
	cfg.Timeout = config.Duration{Duration: 20 * time.Millisecond}
	c := NewIndexerClient(cfg)
	require.NotNil(t, c.httpClient)
	require.Equal(t, 20*time.Millisecond, c.httpClient.Timeout)

	_, err := c.GetNFTs(context.Background(), testAddress)
	require.Error(t, err)

	cfg.Timeout = config.Duration{}
	require.Nil(t, NewIndexerClient(cfg).httpClient)
}

func TestIndexerClient_RateLimit(t *testing.T) {
	cfg := config.Default().Indexer
	cfg.RateLimit = 5
	c := NewIndexerClient(cfg)
	require.NotNil(t, c.limiter)

	cfg.RateLimit = 0
	require.Nil(t, NewIndexerClient(cfg).limiter)
}
