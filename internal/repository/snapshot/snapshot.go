package snapshot

import (
	"errors"
	"time"

	"github.com/sharetube/livepage/internal/domain"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the last rendered page of one content key together with the
// poller state that produced it.
type Snapshot struct {
	State     string
	Page      *domain.Page
	UpdatedAt time.Time
}

func (s Snapshot) VideoID() string {
	if s.Page == nil || s.Page.Player == nil {
		return ""
	}

	return s.Page.Player.VideoID
}
