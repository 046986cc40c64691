package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

func (r repo) executePipe(ctx context.Context, pipe redis.Pipeliner) error {
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		for _, cmd := range cmds {
			if err := cmd.Err(); err != nil {
				return err
			}
		}

		return err
	}

	return nil
}

func (r repo) fieldToUnixMilli(field string) time.Time {
	ms, _ := strconv.ParseInt(field, 10, 64)
	if ms == 0 {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}
