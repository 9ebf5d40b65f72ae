package testutil

import (
	"context"
	"sync"

	"github.com/questx-lab/basenft/internal/client"
)

type MockIndexer struct {
	GetNFTsFunc func(ctx context.Context, address string) (client.IndexerResult, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockIndexer) GetNFTs(ctx context.Context, address string) (client.IndexerResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, address)
	m.mu.Unlock()

	if m.GetNFTsFunc != nil {
		return m.GetNFTsFunc(ctx, address)
	}

	return client.NFTList{}, nil
}

// Calls returns the addresses requested so far.
func (m *MockIndexer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.calls...)
}
