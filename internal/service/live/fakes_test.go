package live

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/internal/repository/content"
)

var errBoom = errors.New("boom")

type fakeClient struct {
	mu      sync.Mutex
	records []content.Record
	errs    []error
	calls   int
	params  []content.GetParams
}

// Get returns the queued responses in order and keeps repeating the last one.
func (c *fakeClient) Get(_ context.Context, params *content.GetParams) (content.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.calls
	c.calls++
	c.params = append(c.params, *params)

	if i < len(c.errs) && c.errs[i] != nil {
		return content.Record{}, c.errs[i]
	}
	if len(c.records) == 0 {
		return content.Record{}, errBoom
	}
	if i >= len(c.records) {
		i = len(c.records) - 1
	}

	return c.records[i], nil
}

func (c *fakeClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls
}

type rendered struct {
	key   string
	state State
	cmds  []domain.Command
}

type fakeRenderer struct {
	mu     sync.Mutex
	calls  []rendered
	render chan struct{}
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{render: make(chan struct{}, 64)}
}

func (r *fakeRenderer) Render(_ context.Context, key string, state State, cmds []domain.Command) error {
	r.mu.Lock()
	r.calls = append(r.calls, rendered{key: key, state: state, cmds: cmds})
	r.mu.Unlock()

	select {
	case r.render <- struct{}{}:
	default:
	}

	return nil
}

func (r *fakeRenderer) Calls() []rendered {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]rendered(nil), r.calls...)
}

func (r *fakeRenderer) countOp(op domain.Op) int {
	n := 0
	for _, call := range r.Calls() {
		for _, cmd := range call.cmds {
			if cmd.Op == op {
				n++
			}
		}
	}

	return n
}

type fakeConn struct {
	mu     sync.Mutex
	out    []any
	closed bool
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.out = append(c.out, v)
	return nil
}

func (c *fakeConn) SetWriteDeadline(time.Time) error {
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

func (c *fakeConn) Outputs() []*Output {
	c.mu.Lock()
	defer c.mu.Unlock()

	outputs := make([]*Output, 0, len(c.out))
	for _, v := range c.out {
		if o, ok := v.(*Output); ok {
			outputs = append(outputs, o)
		}
	}

	return outputs
}

func validConfig() Config {
	return Config{
		ServerDomain: "example",
		APIKey:       "key",
		Endpoint:     "live",
		PollInterval: 5 * time.Millisecond,
		PlayerWidth:  1280,
		PlayerHeight: 720,
		ContentID:    "abc123",
	}
}

func strPtr(s string) *string {
	return &s
}
