package controller

import (
	"context"

	"github.com/sharetube/livepage/internal/domain"
)

type contextKey int

const (
	viewerCtxKey contextKey = iota
)

func (c controller) getViewerFromCtx(ctx context.Context) *domain.Viewer {
	viewer, ok := ctx.Value(viewerCtxKey).(*domain.Viewer)
	if !ok {
		return nil
	}

	return viewer
}
