/*
Package handler provides the HTTP handler for WebSocket connection upgrading
and initialization.

HandleWebSocket rate-limits upgrade attempts, optionally resolves the client's
identity from a token query parameter, upgrades the connection, and starts the
client lifecycle. No credential is required to connect: an anonymous
connection can still join rooms, while an authenticated one is additionally
joined to its private notification channel.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"meetrix/internal/app/realtime"
	"meetrix/internal/pkg/auth/jwt"
	"meetrix/internal/pkg/errs"
	"meetrix/internal/pkg/limiter"
	"meetrix/internal/pkg/logx"
	"meetrix/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc that processes WebSocket
// connection requests.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			rateLimitErr := errs.NewError(errs.ErrRateLimitExceeded)
			resp.RespondError(w, r, rateLimitErr)
			return
		}

		// Identity is optional on connect. A valid token gets the connection
		// joined to the user's private notification channel; anything else
		// proceeds as anonymous.
		userID := ""
		if token := r.URL.Query().Get("token"); token != "" {
			payload, err := jwt.ParseToken(token, deps.Config.JWTSecret)
			if err != nil {
				logx.Warn("WebSocket connect with invalid token, proceeding as anonymous", "error", err)
			} else {
				userID = payload.ID
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := realtime.NewClient(deps.Hub, conn, userID)

		go client.WritePump()

		deps.Hub.Register(client)

		if userID != "" {
			deps.Hub.Join(client, realtime.UserRoom(userID))
		}

		logx.Info("WebSocket connection established",
			"connection_id", client.ID(),
			"user_id", userID,
		)

		client.ReadPump()
	}
}
