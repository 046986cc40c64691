package inmemory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sharetube/livepage/internal/repository/snapshot"
)

type entry struct {
	snapshot  snapshot.Snapshot
	expiresAt time.Time
}

type repo struct {
	entries map[string]entry
	ttl     time.Duration
	mu      sync.RWMutex
	logger  *slog.Logger
}

func NewRepo(ttl time.Duration, logger *slog.Logger) *repo {
	return &repo{
		entries: make(map[string]entry),
		ttl:     ttl,
		logger:  logger,
	}
}

func clone(s snapshot.Snapshot) snapshot.Snapshot {
	if s.Page != nil {
		s.Page = s.Page.Clone()
	}

	return s
}

func (r *repo) Get(ctx context.Context, key string) (snapshot.Snapshot, error) {
	funcName := "snapshot.inmemory.Get"
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.logger.DebugContext(ctx, funcName, "key", key)
	e, ok := r.entries[key]
	if !ok || (r.ttl > 0 && time.Now().After(e.expiresAt)) {
		return snapshot.Snapshot{}, snapshot.ErrNotFound
	}

	return clone(e.snapshot), nil
}

func (r *repo) Set(ctx context.Context, key string, s snapshot.Snapshot) error {
	funcName := "snapshot.inmemory.Set"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.DebugContext(ctx, funcName, "key", key, "state", s.State)
	r.entries[key] = entry{
		snapshot:  clone(s),
		expiresAt: time.Now().Add(r.ttl),
	}

	return nil
}

func (r *repo) Delete(ctx context.Context, key string) error {
	funcName := "snapshot.inmemory.Delete"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.DebugContext(ctx, funcName, "key", key)
	if _, ok := r.entries[key]; !ok {
		return snapshot.ErrNotFound
	}
	delete(r.entries, key)

	return nil
}
