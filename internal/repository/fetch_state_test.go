package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/questx-lab/basenft/internal/entity"
	"github.com/questx-lab/basenft/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func testRepositories() map[string]FetchStateRepository {
	return map[string]FetchStateRepository{
		"memory": NewMemoryFetchStateRepository(),
		"redis":  NewRedisFetchStateRepository(testutil.NewMapRedisClient(), time.Hour),
	}
}

func TestFetchStateRepository_InitialState(t *testing.T) {
	for name, repo := range testRepositories() {
		t.Run(name, func(t *testing.T) {
			state, err := repo.Get(context.Background(), "session1")
			require.NoError(t, err)
			require.False(t, state.IsLoading)
			require.Empty(t, state.Error)
			require.NotNil(t, state.NFTs)
			require.Empty(t, state.NFTs)
		})
	}
}

func TestFetchStateRepository_UpdateAndDelete(t *testing.T) {
	for name, repo := range testRepositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			updated, err := repo.Update(ctx, "session1", func(s *entity.FetchState) error {
				s.IsLoading = true
				s.Generation = 3
				s.NFTs = []entity.NFT{{TokenID: "1", Contract: "0xabc"}}
				return nil
			})
			require.NoError(t, err)
			require.True(t, updated.IsLoading)

			state, err := repo.Get(ctx, "session1")
			require.NoError(t, err)
			require.True(t, state.IsLoading)
			require.Equal(t, int64(3), state.Generation)
			require.Equal(t, []entity.NFT{{TokenID: "1", Contract: "0xabc"}}, state.NFTs)

			other, err := repo.Get(ctx, "session2")
			require.NoError(t, err)
			require.False(t, other.IsLoading)

			require.NoError(t, repo.Delete(ctx, "session1"))
			state, err = repo.Get(ctx, "session1")
			require.NoError(t, err)
			require.Equal(t, int64(0), state.Generation)
			require.Empty(t, state.NFTs)
		})
	}
}

func TestFetchStateRepository_NotModified(t *testing.T) {
	for name, repo := range testRepositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := repo.Update(ctx, "session1", func(s *entity.FetchState) error {
				s.Error = "kept"
				return nil
			})
			require.NoError(t, err)

			state, err := repo.Update(ctx, "session1", func(s *entity.FetchState) error {
				s.Error = "dropped"
				return ErrNotModified
			})
			require.NoError(t, err)
			require.Equal(t, "kept", state.Error)

			state, err = repo.Get(ctx, "session1")
			require.NoError(t, err)
			require.Equal(t, "kept", state.Error)
		})
	}
}

func TestFetchStateRepository_UpdateError(t *testing.T) {
	for name, repo := range testRepositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := repo.Update(ctx, "session1", func(s *entity.FetchState) error {
				s.Error = "never stored"
				return errors.New("boom")
			})
			require.EqualError(t, err, "boom")

			state, err := repo.Get(ctx, "session1")
			require.NoError(t, err)
			require.Empty(t, state.Error)
		})
	}
}

func TestFetchStateRepository_NextGenerationIncreases(t *testing.T) {
	for name, repo := range testRepositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			prev := int64(0)
			for i := 0; i < 5; i++ {
				gen, err := repo.NextGeneration(ctx)
				require.NoError(t, err)
				require.Greater(t, gen, prev)
				prev = gen
			}
		})
	}
}

func TestMemoryFetchStateRepository_ConcurrentUpdates(t *testing.T) {
	repo := NewMemoryFetchStateRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "session1", func(s *entity.FetchState) error {
				s.Generation++
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := repo.Get(ctx, "session1")
	require.NoError(t, err)
	require.Equal(t, int64(50), state.Generation)
}

func TestMemoryFetchStateRepository_Cleanup(t *testing.T) {
	repo := NewMemoryFetchStateRepository()
	ctx := context.Background()

	_, err := repo.Update(ctx, "idle", func(s *entity.FetchState) error {
		s.Error = "old"
		return nil
	})
	require.NoError(t, err)

	_, err = repo.Update(ctx, "loading", func(s *entity.FetchState) error {
		s.IsLoading = true
		return nil
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	require.Equal(t, 1, repo.Cleanup(time.Millisecond))

	state, err := repo.Get(ctx, "idle")
	require.NoError(t, err)
	require.Empty(t, state.Error)

	state, err = repo.Get(ctx, "loading")
	require.NoError(t, err)
	require.True(t, state.IsLoading)
}

func TestMemoryFetchStateRepository_CleanupKeepsFetchStartedDuringSweep(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		repo := NewMemoryFetchStateRepository()
		_, err := repo.Update(ctx, "session", func(s *entity.FetchState) error {
			s.Error = "old"
			return nil
		})
		require.NoError(t, err)

		var wg sync.WaitGroup
		var updateErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			repo.Cleanup(0)
		}()
		go func() {
			defer wg.Done()
			_, updateErr = repo.Update(ctx, "session", func(s *entity.FetchState) error {
				s.IsLoading = true
				return nil
			})
		}()
		wg.Wait()
		require.NoError(t, updateErr)

		state, err := repo.Get(ctx, "session")
		require.NoError(t, err)
		require.True(t, state.IsLoading)
	}
}

func TestMemoryFetchStateRepository_UpdateAfterDelete(t *testing.T) {
	repo := NewMemoryFetchStateRepository()
	ctx := context.Background()

	_, err := repo.Update(ctx, "session", func(s *entity.FetchState) error {
		s.Error = "old"
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "session"))
	require.NoError(t, repo.Delete(ctx, "session"))

	state, err := repo.Update(ctx, "session", func(s *entity.FetchState) error {
		s.IsLoading = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, state.IsLoading)
	require.Empty(t, state.Error)
}
