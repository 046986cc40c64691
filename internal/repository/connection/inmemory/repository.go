package inmemory

import (
	"log/slog"
	"sync"

	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/internal/repository/connection"
)

type repo struct {
	viewers map[string]*domain.Viewer
	byKey   map[string]map[string]*domain.Viewer
	mu      sync.RWMutex
	logger  *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		viewers: make(map[string]*domain.Viewer),
		byKey:   make(map[string]map[string]*domain.Viewer),
		logger:  logger,
	}
}

func (r *repo) Add(viewer *domain.Viewer) error {
	funcName := "connection.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "viewer_id", viewer.ID, "content_key", viewer.ContentKey)
	if _, ok := r.viewers[viewer.ID]; ok {
		r.logger.Info(funcName, "error", connection.ErrAlreadyExists)
		return connection.ErrAlreadyExists
	}

	r.viewers[viewer.ID] = viewer
	if r.byKey[viewer.ContentKey] == nil {
		r.byKey[viewer.ContentKey] = make(map[string]*domain.Viewer)
	}
	r.byKey[viewer.ContentKey][viewer.ID] = viewer

	return nil
}

func (r *repo) Remove(viewerID string) (*domain.Viewer, error) {
	funcName := "connection.inmemory.Remove"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "viewer_id", viewerID)
	viewer, ok := r.viewers[viewerID]
	if !ok {
		r.logger.Info(funcName, "error", connection.ErrNotFound)
		return nil, connection.ErrNotFound
	}

	delete(r.viewers, viewerID)
	delete(r.byKey[viewer.ContentKey], viewerID)
	if len(r.byKey[viewer.ContentKey]) == 0 {
		delete(r.byKey, viewer.ContentKey)
	}

	return viewer, nil
}

func (r *repo) Get(viewerID string) (*domain.Viewer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	viewer, ok := r.viewers[viewerID]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return viewer, nil
}

func (r *repo) GetByContentKey(key string) []*domain.Viewer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	viewers := make([]*domain.Viewer, 0, len(r.byKey[key]))
	for _, v := range r.byKey[key] {
		viewers = append(viewers, v)
	}

	return viewers
}

func (r *repo) Count(key string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byKey[key])
}

func (r *repo) All() []*domain.Viewer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	viewers := make([]*domain.Viewer, 0, len(r.viewers))
	for _, v := range r.viewers {
		viewers = append(viewers, v)
	}

	return viewers
}
