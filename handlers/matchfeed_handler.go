package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/torneos/esports-api/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API serves browser frontends on other origins; access control
	// happens at the token level, not the origin level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type MatchFeedHandler struct {
	hub *live.Hub
}

func NewMatchFeedHandler(hub *live.Hub) *MatchFeedHandler {
	return &MatchFeedHandler{hub: hub}
}

// Subscribe upgrades the connection and joins the caller to the match room.
// Updates flow server-to-client only.
func (h *MatchFeedHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	h.hub.Join(conn, live.MatchRoom(matchID))
}
