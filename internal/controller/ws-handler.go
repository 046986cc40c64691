package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sharetube/livepage/internal/service/live"
	"github.com/sharetube/livepage/pkg/ctxlogger"
	"github.com/sharetube/livepage/pkg/validator"
)

var ErrViewerNotFound = errors.New("viewer not found in context")

type viewportResizedInput struct {
	Width int `json:"width" validate:"min=0"`
}

type errorPayload struct {
	Message string                      `json:"message"`
	Errors  []validator.ValidationError `json:"errors,omitempty"`
}

func (c controller) connectLive(w http.ResponseWriter, r *http.Request) {
	contentID := r.URL.Query().Get("cid")
	if contentID == "" {
		c.logger.DebugContext(r.Context(), "cid query param is missing")
		http.Error(w, "cid query param is required", http.StatusBadRequest)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.DebugContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	resp, err := c.liveService.Connect(ctx, &live.ConnectParams{
		ContentID: contentID,
		DraftKey:  r.URL.Query().Get("dkey"),
		Conn:      conn,
	})
	if err != nil {
		c.logger.InfoContext(ctx, "failed to connect viewer", "error", err)
		_ = conn.WriteJSON(live.Output{
			Type:    live.OutputError,
			Payload: errorPayload{Message: err.Error()},
		})
		return
	}
	defer c.liveService.Disconnect(context.WithoutCancel(ctx), resp.Viewer)

	ctx = ctxlogger.AppendCtx(ctx, slog.String("viewer_id", resp.Viewer.ID))
	ctx = context.WithValue(ctx, viewerCtxKey, resp.Viewer)
	c.logger.InfoContext(ctx, "viewer connected", "content_key", resp.Viewer.ContentKey, "state", resp.State.String())

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			c.logger.InfoContext(ctx, "websocket closed unexpectedly", "error", err)
		} else {
			c.logger.DebugContext(ctx, "websocket closed", "error", err)
		}
	}
}

func (c controller) handleAlive(ctx context.Context, _ *websocket.Conn, _ any) error {
	c.logger.DebugContext(ctx, "alive")
	return nil
}

func (c controller) handleViewportResized(ctx context.Context, _ *websocket.Conn, input viewportResizedInput) error {
	viewer := c.getViewerFromCtx(ctx)
	if viewer == nil {
		return ErrViewerNotFound
	}

	if errs, ok := c.validate.Validate(input); !ok {
		return validator.Join(errs)
	}

	return viewer.WriteJSON(live.Output{
		Type:    live.OutputHeaderLayout,
		Payload: live.RenderPayload{Commands: live.HeaderLayout(input.Width)},
	})
}

// handleWSError reports the error to the viewer and keeps the connection open.
// Only a failed write closes it.
func (c controller) handleWSError(ctx context.Context, conn *websocket.Conn, err error) error {
	c.logger.InfoContext(ctx, "websocket message failed", "error", err)

	viewer := c.getViewerFromCtx(ctx)
	if viewer == nil {
		return err
	}

	payload := errorPayload{Message: err.Error()}
	var vErr validator.ValidationError
	if errors.As(err, &vErr) {
		payload.Errors = []validator.ValidationError{vErr}
	}

	return viewer.WriteJSON(live.Output{
		Type:    live.OutputError,
		Payload: payload,
	})
}
