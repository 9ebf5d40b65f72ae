package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/basenft/internal/common"
	"github.com/questx-lab/basenft/internal/entity"
	"github.com/questx-lab/basenft/pkg/xredis"
)

// ErrNotModified can be returned by an update function to leave the stored
// state untouched. Update then returns the current state without error.
var ErrNotModified = errors.New("fetch state not modified")

type UpdateFunc func(state *entity.FetchState) error

type FetchStateRepository interface {
	// Get returns the initial state when sessionID has no state yet.
	Get(ctx context.Context, sessionID string) (entity.FetchState, error)

	// Update applies fn atomically to the state of sessionID.
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (entity.FetchState, error)
	Delete(ctx context.Context, sessionID string) error

	// NextGeneration returns a stamp greater than every stamp returned
	// before.
	NextGeneration(ctx context.Context) (int64, error)
}

func newFetchState() entity.FetchState {
	return entity.FetchState{NFTs: []entity.NFT{}}
}

type fetchStateEntry struct {
	mu      sync.Mutex
	state   entity.FetchState
	deleted bool
}

type memoryFetchStateRepository struct {
	states     *xsync.MapOf[string, *fetchStateEntry]
	generation atomic.Int64
}

func NewMemoryFetchStateRepository() *memoryFetchStateRepository {
	return &memoryFetchStateRepository{
		states: xsync.NewMapOf[*fetchStateEntry](),
	}
}

func (r *memoryFetchStateRepository) Get(ctx context.Context, sessionID string) (entity.FetchState, error) {
	entry, ok := r.states.Load(sessionID)
	if !ok {
		return newFetchState(), nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.deleted {
		return newFetchState(), nil
	}

	return entry.state, nil
}

func (r *memoryFetchStateRepository) Update(
	ctx context.Context, sessionID string, fn UpdateFunc,
) (entity.FetchState, error) {
	for {
		entry, _ := r.states.LoadOrStore(sessionID, &fetchStateEntry{state: newFetchState()})

		entry.mu.Lock()
		if entry.deleted {
			// Lost a race with Delete, the next LoadOrStore sees a new entry.
			entry.mu.Unlock()
			continue
		}

		state := entry.state
		err := fn(&state)
		if errors.Is(err, ErrNotModified) {
			entry.mu.Unlock()
			return entry.state, nil
		}

		if err != nil {
			entry.mu.Unlock()
			return entity.FetchState{}, err
		}

		state.UpdatedAt = time.Now()
		entry.state = state
		entry.mu.Unlock()

		return state, nil
	}
}

func (r *memoryFetchStateRepository) Delete(ctx context.Context, sessionID string) error {
	entry, ok := r.states.Load(sessionID)
	if !ok {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if !entry.deleted {
		r.removeLocked(sessionID, entry)
	}

	return nil
}

// removeLocked must be called with entry.mu held. An entry is in the map
// exactly while it is not marked deleted.
func (r *memoryFetchStateRepository) removeLocked(sessionID string, entry *fetchStateEntry) {
	entry.deleted = true
	r.states.Delete(sessionID)
}

func (r *memoryFetchStateRepository) NextGeneration(ctx context.Context) (int64, error) {
	return r.generation.Add(1), nil
}

// Cleanup drops the states not updated for longer than ttl and returns how
// many were dropped.
func (r *memoryFetchStateRepository) Cleanup(ttl time.Duration) int {
	deadline := time.Now().Add(-ttl)
	dropped := 0
	r.states.Range(func(sessionID string, entry *fetchStateEntry) bool {
		entry.mu.Lock()
		defer entry.mu.Unlock()

		if !entry.deleted && !entry.state.IsLoading && entry.state.UpdatedAt.Before(deadline) {
			r.removeLocked(sessionID, entry)
			dropped++
		}
		return true
	})

	return dropped
}

type redisFetchStateRepository struct {
	redisClient xredis.Client
	ttl         time.Duration
}

func NewRedisFetchStateRepository(redisClient xredis.Client, ttl time.Duration) *redisFetchStateRepository {
	if ttl <= 0 {
		ttl = common.FetchStateTTL
	}

	return &redisFetchStateRepository{redisClient: redisClient, ttl: ttl}
}

func (r *redisFetchStateRepository) Get(ctx context.Context, sessionID string) (entity.FetchState, error) {
	state := newFetchState()
	if err := r.redisClient.GetObj(ctx, common.RedisKeyFetchState(sessionID), &state); err != nil {
		if xredis.IsNil(err) {
			return newFetchState(), nil
		}

		return entity.FetchState{}, err
	}

	if state.NFTs == nil {
		state.NFTs = []entity.NFT{}
	}

	return state, nil
}

func (r *redisFetchStateRepository) Update(
	ctx context.Context, sessionID string, fn UpdateFunc,
) (entity.FetchState, error) {
	var result entity.FetchState
	err := r.redisClient.Transact(ctx, common.RedisKeyFetchState(sessionID), r.ttl,
		func(current string, exists bool) (string, error) {
			state := newFetchState()
			if exists {
				if err := json.Unmarshal([]byte(current), &state); err != nil {
					return "", err
				}
			}

			result = state
			if err := fn(&state); err != nil {
				return "", err
			}

			state.UpdatedAt = time.Now()
			b, err := json.Marshal(state)
			if err != nil {
				return "", err
			}

			result = state
			return string(b), nil
		})

	if errors.Is(err, ErrNotModified) {
		return result, nil
	}

	if err != nil {
		return entity.FetchState{}, err
	}

	return result, nil
}

func (r *redisFetchStateRepository) Delete(ctx context.Context, sessionID string) error {
	return r.redisClient.Del(ctx, common.RedisKeyFetchState(sessionID))
}

func (r *redisFetchStateRepository) NextGeneration(ctx context.Context) (int64, error) {
	return r.redisClient.Incr(ctx, common.RedisKeyFetchGeneration())
}
