package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chargelog/internal/http/middleware"
	"chargelog/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the PWA origin; same-host checks are
	// handled by the reverse proxy in front.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewWSHandler returns GET /api/ws: upgrades the connection and streams
// change events for the authenticated user. Websocket clients pass the
// token as a query parameter.
func NewWSHandler(validator middleware.TokenValidator, hub *ws.Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.BearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing credentials")
			return
		}

		claims, err := validator.ValidateToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		hub.Serve(r.Context(), claims.UserID, conn)
	}
}
