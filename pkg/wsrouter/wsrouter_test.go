package wsrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoInput struct {
	Text string `json:"text"`
}

func newTestServer(t *testing.T, r *WSRouter) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = r.ServeConn(context.Background(), conn)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestServeConnRoutesTypedPayload(t *testing.T) {
	r := New()
	seenType := make(chan string, 1)
	r.Use(func(next HandlerFunc[any]) HandlerFunc[any] {
		return func(ctx context.Context, conn *websocket.Conn, payload any) error {
			seenType <- GetMessageTypeFromCtx(ctx)
			return next(ctx, conn, payload)
		}
	})
	Handle(r, "ECHO", func(_ context.Context, conn *websocket.Conn, input echoInput) error {
		return conn.WriteJSON(map[string]string{"text": input.Text})
	})

	conn := newTestServer(t, r)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "ECHO", "payload": map[string]string{"text": "hi"}}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out map[string]string
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "hi", out["text"])
	assert.Equal(t, "ECHO", <-seenType)
}

func TestServeConnUnknownTypeGoesToErrorHandler(t *testing.T) {
	r := New()
	r.HandleError(func(_ context.Context, conn *websocket.Conn, err error) error {
		return conn.WriteJSON(map[string]string{"error": err.Error()})
	})

	conn := newTestServer(t, r)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "NOPE"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var out map[string]string
	require.NoError(t, conn.ReadJSON(&out))
	assert.Contains(t, out["error"], "unknown message type")
}
