package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/internal/repository/snapshot"
)

type iSnapshotRepo interface {
	Get(ctx context.Context, key string) (snapshot.Snapshot, error)
	Set(ctx context.Context, key string, s snapshot.Snapshot) error
	Delete(ctx context.Context, key string) error
}

type iConnRepo interface {
	Add(viewer *domain.Viewer) error
	Remove(viewerID string) (*domain.Viewer, error)
	GetByContentKey(key string) []*domain.Viewer
	Count(key string) int
	All() []*domain.Viewer
}

// Service owns one poller per content key. Pollers start with the first
// viewer of a key and are shut down when its last viewer leaves.
type Service struct {
	settings     *Settings
	client       iContentClient
	snapshotRepo iSnapshotRepo
	connRepo     iConnRepo
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// guards pollers and orders renders against connects
	mu      sync.Mutex
	pollers map[string]*Poller
}

func NewService(settings *Settings, client iContentClient, snapshotRepo iSnapshotRepo, connRepo iConnRepo, logger *slog.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		settings:     settings,
		client:       client,
		snapshotRepo: snapshotRepo,
		connRepo:     connRepo,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		pollers:      make(map[string]*Poller),
	}
}

func (s *Service) getSnapshot(ctx context.Context, key string) snapshot.Snapshot {
	snap, err := s.snapshotRepo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to get snapshot", "content_key", key, "error", err)
		}
		return snapshot.Snapshot{State: StateUninitialized.String(), Page: domain.NewPage()}
	}

	if snap.Page == nil {
		snap.Page = domain.NewPage()
	}

	return snap
}

// Connect registers a viewer for the content id. Before any render reaches
// it, the viewer is sent PAGE_STATE with the commands that bring its freshly
// served page up to date. The poller for the key is started if none is
// running.
func (s *Service) Connect(ctx context.Context, params *ConnectParams) (ConnectResponse, error) {
	cfg := NewConfig(s.settings, params.ContentID, params.DraftKey)
	if err := cfg.Validate(); err != nil {
		s.logger.ErrorContext(ctx, "invalid configuration", "error", err)
		return ConnectResponse{}, err
	}

	key := cfg.Key()
	viewer := domain.NewViewer(uuid.NewString(), key, params.Conn)

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.getSnapshot(ctx, key)
	state := ParseState(snap.State)

	if _, ok := s.pollers[key]; !ok {
		state = s.resumeState(ctx, key, &snap)
		if state != StateStopped {
			poller := NewPoller(cfg, s.client, s, s.logger.With("content_key", key)).WithState(state)
			if err := poller.Start(s.ctx); err != nil {
				return ConnectResponse{}, err
			}
			s.pollers[key] = poller
		}
	}

	replay := snap.Page.Replay()
	if err := viewer.WriteJSON(&Output{
		Type: OutputPageState,
		Payload: RenderPayload{
			State:    state.String(),
			Commands: replay,
		},
	}); err != nil {
		s.stopIfIdle(key)
		return ConnectResponse{}, err
	}

	if err := s.connRepo.Add(viewer); err != nil {
		s.stopIfIdle(key)
		return ConnectResponse{}, err
	}

	s.logger.InfoContext(ctx, "viewer connected", "viewer_id", viewer.ID, "content_key", key, "viewers", s.connRepo.Count(key))

	return ConnectResponse{
		Viewer: viewer,
		State:  state,
		Replay: replay,
	}, nil
}

// resumeState decides how a new poller picks up a stored page. An ended
// stream stays ended; a page left behind by a failed fetch is discarded.
func (s *Service) resumeState(ctx context.Context, key string, snap *snapshot.Snapshot) State {
	state := ParseState(snap.State)
	if state != StateStopped {
		return state
	}

	if snap.Page.IsGone(domain.ElementYoutube) {
		return StateStopped
	}

	if err := s.snapshotRepo.Delete(ctx, key); err != nil && !errors.Is(err, snapshot.ErrNotFound) {
		s.logger.WarnContext(ctx, "failed to delete snapshot", "content_key", key, "error", err)
	}
	snap.Page = domain.NewPage()
	snap.State = StateUninitialized.String()

	return StateUninitialized
}

func (s *Service) Disconnect(ctx context.Context, viewer *domain.Viewer) {
	s.mu.Lock()
	if _, err := s.connRepo.Remove(viewer.ID); err != nil {
		s.logger.DebugContext(ctx, "viewer already removed", "viewer_id", viewer.ID)
	}

	remaining := s.connRepo.Count(viewer.ContentKey)
	s.stopIfIdle(viewer.ContentKey)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "viewer disconnected", "viewer_id", viewer.ID, "content_key", viewer.ContentKey, "viewers", remaining)
}

// stopIfIdle shuts down the poller of key when it has no viewers left. The
// caller holds s.mu.
func (s *Service) stopIfIdle(key string) {
	if s.connRepo.Count(key) > 0 {
		return
	}

	if poller, ok := s.pollers[key]; ok {
		poller.Stop()
		delete(s.pollers, key)
	}
}

// Render applies commands to the stored page of key and pushes them to every
// viewer of that key.
func (s *Service) Render(ctx context.Context, key string, state State, cmds []domain.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.getSnapshot(ctx, key)
	snap.Page.Apply(cmds...)
	snap.State = state.String()
	snap.UpdatedAt = time.Now()

	var storeErr error
	if err := s.snapshotRepo.Set(ctx, key, snap); err != nil {
		storeErr = err
	}

	if len(cmds) == 0 {
		return storeErr
	}

	s.broadcast(ctx, s.connRepo.GetByContentKey(key), &Output{
		Type: OutputRender,
		Payload: RenderPayload{
			State:    state.String(),
			Commands: cmds,
		},
	})

	return storeErr
}

func (s *Service) broadcast(ctx context.Context, viewers []*domain.Viewer, output *Output) {
	for _, viewer := range viewers {
		if err := viewer.WriteJSON(output); err != nil {
			s.logger.InfoContext(ctx, "failed to write to viewer", "viewer_id", viewer.ID, "error", err)
		}
	}
}

// PollerState reports the state of the running poller for key, and false if
// none is running.
func (s *Service) PollerState(key string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poller, ok := s.pollers[key]
	if !ok {
		return StateUninitialized, false
	}

	return poller.State(), true
}

// Shutdown stops every poller and closes every viewer connection.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	pollers := make([]*Poller, 0, len(s.pollers))
	for _, p := range s.pollers {
		pollers = append(pollers, p)
	}
	s.pollers = make(map[string]*Poller)
	s.mu.Unlock()

	s.cancel()

	for _, p := range pollers {
		p.Stop()
		select {
		case <-p.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for _, viewer := range s.connRepo.All() {
		viewer.Close()
	}

	return nil
}
