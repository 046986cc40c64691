package controller

import (
	"github.com/sharetube/livepage/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()
	mux.Use(c.wsRequestIdWSMw(), c.loggerWSMw())
	mux.HandleError(c.handleWSError)

	wsrouter.Handle(mux, "ALIVE", c.handleAlive)
	wsrouter.Handle(mux, "VIEWPORT_RESIZED", c.handleViewportResized)

	return mux
}
