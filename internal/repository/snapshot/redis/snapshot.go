package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/internal/repository/snapshot"
	omitnilpointers "github.com/sharetube/livepage/pkg/omit-nil-pointers"
)

func (r repo) getSnapshotKey(key string) string {
	return "livepage:snapshot:" + key
}

func (r repo) Set(ctx context.Context, key string, s snapshot.Snapshot) error {
	funcName := "snapshot.redis.Set"
	r.logger.DebugContext(ctx, funcName, "key", key, "state", s.State)

	page, err := json.Marshal(s.Page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	var videoID *string
	if id := s.VideoID(); id != "" {
		videoID = &id
	}

	var updatedAt int64
	if !s.UpdatedAt.IsZero() {
		updatedAt = s.UpdatedAt.UnixMilli()
	}

	fields := omitnilpointers.OmitNilPointers(map[string]any{
		"state":      s.State,
		"page":       string(page),
		"video_id":   videoID,
		"updated_at": updatedAt,
	})

	snapshotKey := r.getSnapshotKey(key)
	pipe := r.rc.TxPipeline()
	pipe.Del(ctx, snapshotKey)
	pipe.HSet(ctx, snapshotKey, fields)
	pipe.Expire(ctx, snapshotKey, r.expireDuration)

	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (r repo) Get(ctx context.Context, key string) (snapshot.Snapshot, error) {
	funcName := "snapshot.redis.Get"
	r.logger.DebugContext(ctx, funcName, "key", key)

	snapshotKey := r.getSnapshotKey(key)
	fields, err := r.rc.HGetAll(ctx, snapshotKey).Result()
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if len(fields) == 0 {
		return snapshot.Snapshot{}, snapshot.ErrNotFound
	}

	page := domain.NewPage()
	if err := json.Unmarshal([]byte(fields["page"]), page); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to unmarshal page: %w", err)
	}
	if page.Elements == nil {
		page.Elements = make(map[string]*domain.Element)
	}

	r.rc.Expire(ctx, snapshotKey, r.expireDuration)

	return snapshot.Snapshot{
		State:     fields["state"],
		Page:      page,
		UpdatedAt: r.fieldToUnixMilli(fields["updated_at"]),
	}, nil
}

func (r repo) Delete(ctx context.Context, key string) error {
	funcName := "snapshot.redis.Delete"
	r.logger.DebugContext(ctx, funcName, "key", key)

	res, err := r.rc.Del(ctx, r.getSnapshotKey(key)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	if res == 0 {
		return snapshot.ErrNotFound
	}

	return nil
}
