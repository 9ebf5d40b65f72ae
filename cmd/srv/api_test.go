package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/questx-lab/basenft/internal/client"
	"github.com/questx-lab/basenft/internal/entity"
	"github.com/questx-lab/basenft/internal/middleware"
	"github.com/questx-lab/basenft/pkg/logger"
	"github.com/questx-lab/basenft/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, indexer client.IndexerClient) (*httptest.Server, *http.Client) {
	s := &srv{}
	cfg := testutil.MockConfigs()
	s.configs = &cfg
	s.logger = logger.NewNopLogger()
	require.NoError(t, s.loadSessionStore())
	s.loadRepos()
	s.indexerClient = indexer
	s.loadDomains()
	require.NoError(t, s.loadView())
	s.loadRouter()

	server := httptest.NewServer(middleware.AllowCors(nil, s.router.Handler()))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return server, &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func getPage(t *testing.T, c *http.Client, server *httptest.Server) string {
	resp, err := c.Get(server.URL + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	return readBody(t, resp)
}

func callAPI(t *testing.T, c *http.Client, req *http.Request, data any) envelope {
	resp, err := c.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &env))
	require.Equal(t, int64(0), env.Code)
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestServer_PageFlow(t *testing.T) {
	indexer := &testutil.MockIndexer{
		GetNFTsFunc: func(context.Context, string) (client.IndexerResult, error) {
			return client.NFTList{NFTs: []entity.NFT{
				{ID: "1", TokenID: "12345678901", Contract: "0xabc", Title: "X"},
			}}, nil
		},
	}
	server, c := newTestServer(t, indexer)

	page := getPage(t, c, server)
	require.Contains(t, page, "Connect Wallet")

	// A rejected connection leaves the page disconnected.
	resp, err := c.PostForm(server.URL+"/wallet/connect", url.Values{
		"connector": {"injected"},
		"error":     {"User rejected the request."},
	})
	require.NoError(t, err)
	require.Contains(t, readBody(t, resp), "Connect Wallet")

	resp, err = c.PostForm(server.URL+"/wallet/connect", url.Values{
		"address":   {"0x5dadb2e88cf9cc2b6f53b5e7413ebfa1a7d740a1"},
		"connector": {"injected"},
	})
	require.NoError(t, err)
	page = readBody(t, resp)
	require.Contains(t, page, "0x5DadB2e88cF9cC2B6f53b5e7413ebFa1a7D740a1")
	require.Contains(t, page, "Click 'Fetch NFTs' to view your NFTs on Base network")

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/fetchNFTs", strings.NewReader(`{"wait": true}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	var state struct {
		IsLoading bool              `json:"isLoading"`
		Error     string            `json:"error"`
		NFTs      []json.RawMessage `json:"nfts"`
	}
	callAPI(t, c, req, &state)
	require.False(t, state.IsLoading)
	require.Empty(t, state.Error)
	require.Len(t, state.NFTs, 1)

	page = getPage(t, c, server)
	require.Contains(t, page, "Token ID: 123456...")
	require.Contains(t, page, `href="https://basescan.org/token/0xabc?a=12345678901"`)

	resp, err = c.PostForm(server.URL+"/wallet/disconnect", nil)
	require.NoError(t, err)
	require.Contains(t, readBody(t, resp), "Connect Wallet")

	req, err = http.NewRequest(http.MethodGet, server.URL+"/api/getSession", nil)
	require.NoError(t, err)
	var session struct {
		Address     string `json:"address"`
		IsConnected bool   `json:"isConnected"`
	}
	callAPI(t, c, req, &session)
	require.False(t, session.IsConnected)
	require.Empty(t, session.Address)
}

func TestServer_FetchWithoutWalletIsNoop(t *testing.T) {
	indexer := &testutil.MockIndexer{}
	server, c := newTestServer(t, indexer)

	resp, err := c.PostForm(server.URL+"/nfts/fetch", nil)
	require.NoError(t, err)
	require.Contains(t, readBody(t, resp), "Connect Wallet")
	require.Empty(t, indexer.Calls())
}

func TestServer_FormRedirectsWithSeeOther(t *testing.T) {
	server, c := newTestServer(t, &testutil.MockIndexer{})
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := c.PostForm(server.URL+"/wallet/disconnect", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestServer_Ambient(t *testing.T) {
	server, c := newTestServer(t, &testutil.MockIndexer{})

	resp, err := c.Get(server.URL + "/healthz")
	require.NoError(t, err)
	require.Equal(t, "OK", readBody(t, resp))

	resp, err = c.Get(server.URL + "/static/placeholder.svg")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, readBody(t, resp), "<svg")

	getPage(t, c, server)
	resp, err = c.Get(server.URL + "/metrics")
	require.NoError(t, err)
	require.Contains(t, readBody(t, resp), "http_requests_total")

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/getNFTs", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err = c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
