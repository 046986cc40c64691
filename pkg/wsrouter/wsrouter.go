package wsrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
)

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrInvalidPayload     = errors.New("invalid payload")
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type HandlerFunc[T any] func(ctx context.Context, conn *websocket.Conn, payload T) error

type Middleware func(next HandlerFunc[any]) HandlerFunc[any]

// ErrorHandler receives every error returned by a handler. Returning a non-nil
// error closes the connection.
type ErrorHandler func(ctx context.Context, conn *websocket.Conn, err error) error

type WSRouter struct {
	routes       map[string]HandlerFunc[any]
	middlewares  []Middleware
	errorHandler ErrorHandler
}

func New() *WSRouter {
	return &WSRouter{
		routes: make(map[string]HandlerFunc[any]),
		errorHandler: func(_ context.Context, _ *websocket.Conn, err error) error {
			return err
		},
	}
}

func (r *WSRouter) Use(mws ...Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

func (r *WSRouter) HandleError(h ErrorHandler) {
	r.errorHandler = h
}

// Handle registers a typed handler; the raw payload is decoded into T before
// the handler runs.
func Handle[T any](r *WSRouter, messageType string, handler HandlerFunc[T]) {
	r.routes[messageType] = func(ctx context.Context, conn *websocket.Conn, payload any) error {
		var input T
		raw, _ := payload.(json.RawMessage)
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &input); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
			}
		}

		return handler(ctx, conn, input)
	}
}

func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		handler, exists := r.routes[msg.Type]
		if !exists {
			handler = func(context.Context, *websocket.Conn, any) error {
				return fmt.Errorf("%w: %s", ErrUnknownMessageType, msg.Type)
			}
		}

		for i := len(r.middlewares) - 1; i >= 0; i-- {
			handler = r.middlewares[i](handler)
		}

		msgCtx := context.WithValue(ctx, messageTypeKey, msg.Type)
		if err := handler(msgCtx, conn, msg.Payload); err != nil {
			if err := r.errorHandler(msgCtx, conn, err); err != nil {
				return err
			}
		}
	}
}
