package domain

import (
	"sync"
	"time"
)

const writeWait = 10 * time.Second

// Conn is the part of *websocket.Conn a viewer writes through.
type Conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Viewer is one browser connected to a landing page. Writes are serialized
// because the poller and the viewer's own read loop both write to it.
type Viewer struct {
	ID         string
	ContentKey string

	conn Conn
	mu   sync.Mutex
}

func NewViewer(id, contentKey string, conn Conn) *Viewer {
	return &Viewer{
		ID:         id,
		ContentKey: contentKey,
		conn:       conn,
	}
}

func (v *Viewer) WriteJSON(msg any) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return v.conn.WriteJSON(msg)
}

func (v *Viewer) Close() error {
	return v.conn.Close()
}
