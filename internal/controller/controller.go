package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sharetube/livepage/internal/domain"
	"github.com/sharetube/livepage/internal/service/live"
	"github.com/sharetube/livepage/pkg/validator"
	"github.com/sharetube/livepage/pkg/wsrouter"
)

type iLiveService interface {
	Connect(context.Context, *live.ConnectParams) (live.ConnectResponse, error)
	Disconnect(context.Context, *domain.Viewer)
}

type controller struct {
	liveService iLiveService
	upgrader    websocket.Upgrader
	wsmux       *wsrouter.WSRouter
	validate    *validator.Validator
	logger      *slog.Logger
}

func NewController(liveService iLiveService, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		liveService: liveService,
		validate:    validator.NewValidator(),
		logger:      logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
