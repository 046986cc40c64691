package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/internal/repository/content"
)

var ErrAlreadyStarted = errors.New("poller already started")

type iContentClient interface {
	Get(ctx context.Context, params *content.GetParams) (content.Record, error)
}

type iRenderer interface {
	Render(ctx context.Context, key string, state State, cmds []domain.Command) error
}

// Poller fetches one content record on a fixed interval and hands the
// resulting render commands to a renderer until the stream ends or a fetch
// fails. Stopped is terminal.
type Poller struct {
	cfg      Config
	client   iContentClient
	renderer iRenderer
	logger   *slog.Logger

	// serializes fetches; a tick that fires mid-fetch is dropped by the ticker
	fetchMu sync.Mutex

	mu       sync.Mutex
	state    State
	started  bool
	ticker   *time.Ticker
	cancel   context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once
}

func NewPoller(cfg Config, client iContentClient, renderer iRenderer, logger *slog.Logger) *Poller {
	return &Poller{
		cfg:      cfg,
		client:   client,
		renderer: renderer,
		logger:   logger,
		state:    StateUninitialized,
		done:     make(chan struct{}),
	}
}

// WithState sets the state the poller starts in. Only Uninitialized and Live
// are accepted; it must be called before Start.
func (p *Poller) WithState(state State) *Poller {
	if state != StateStopped {
		p.state = state
	}

	return p
}

func (p *Poller) Config() Config {
	return p.cfg
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Done is closed once the poll loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Start validates the config, fetches once and keeps fetching every
// PollInterval in the background. An invalid config is logged and returned;
// nothing is fetched in that case.
func (p *Poller) Start(ctx context.Context) error {
	if err := p.cfg.Validate(); err != nil {
		p.logger.ErrorContext(ctx, "poller not started", "error", err)
		return err
	}

	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	if p.state == StateStopped {
		p.mu.Unlock()
		p.finish()
		return nil
	}
	p.started = true
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.ticker = time.NewTicker(p.cfg.PollInterval)
	state := p.state
	p.mu.Unlock()

	p.logger.InfoContext(ctx, "poller started",
		"content_id", p.cfg.ContentID,
		"interval", p.cfg.PollInterval.String(),
		"state", state.String(),
	)

	go p.run(loopCtx)

	return nil
}

func (p *Poller) run(ctx context.Context) {
	defer p.finish()

	p.FetchAndReconcile(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.ticker.C:
			p.FetchAndReconcile(ctx)
		}
	}
}

// FetchAndReconcile performs one poll. It does nothing once the poller is
// stopped. A failed fetch stops the poller for good.
func (p *Poller) FetchAndReconcile(ctx context.Context) error {
	p.fetchMu.Lock()
	defer p.fetchMu.Unlock()

	if p.State() == StateStopped {
		return nil
	}

	record, err := p.client.Get(ctx, &content.GetParams{
		Endpoint:  p.cfg.Endpoint,
		ContentID: p.cfg.ContentID,
		DraftKey:  p.cfg.DraftKey,
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.logger.WarnContext(ctx, "fetch failed, polling stopped", "content_id", p.cfg.ContentID, "error", err)
		if err := p.renderer.Render(ctx, p.cfg.Key(), StateStopped, nil); err != nil {
			p.logger.WarnContext(ctx, "failed to render", "content_id", p.cfg.ContentID, "error", err)
		}
		p.Stop()
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}

	state := p.State()
	if state == StateStopped {
		return nil
	}

	cmds, next := Reconcile(record, state, p.cfg.ReconcileOptions())
	if err := p.renderer.Render(ctx, p.cfg.Key(), next, cmds); err != nil {
		p.logger.WarnContext(ctx, "failed to render", "content_id", p.cfg.ContentID, "error", err)
	}

	if next == StateStopped {
		p.logger.InfoContext(ctx, "stream ended, polling stopped", "content_id", p.cfg.ContentID)
		p.Stop()
		return nil
	}

	p.mu.Lock()
	if p.state != StateStopped {
		p.state = next
	}
	p.mu.Unlock()

	return nil
}

// Stop moves the poller to Stopped, stops the ticker and ends the loop. It is
// safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.state = StateStopped
	if p.ticker != nil {
		p.ticker.Stop()
	}
	cancel := p.cancel
	started := p.started
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if !started {
		p.finish()
	}
}

func (p *Poller) finish() {
	p.doneOnce.Do(func() {
		close(p.done)
	})
}
