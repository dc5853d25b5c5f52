package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/table-order-app/live"
	"github.com/yeremiapane/table-order-app/services"
	"github.com/yeremiapane/table-order-app/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type LiveController struct {
	Sessions *services.SessionService
}

func NewLiveController(sessions *services.SessionService) *LiveController {
	return &LiveController{Sessions: sessions}
}

// LiveSession -> WS /public/session/live?room=&name=&qrCode=
// Validasi sesi dijalankan SEBELUM upgrade: socket tanpa sesi valid
// ditolak keras, tidak pernah masuk ke room.
func (lc *LiveController) LiveSession(c *gin.Context) {
	room := c.Query("room")
	name := c.Query("name")
	qrCode := c.Query("qrCode")

	if _, err := lc.Sessions.RequireSessionByQRAndCode(qrCode, room); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	live.JoinRoom(room, ws, name)

	// Relay: payload masuk diteruskan apa adanya ke seluruh room
	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			break
		}
		live.BroadcastToRoom(room, live.Message{
			Message: string(payload),
			Name:    live.EventMessage,
		})
	}

	live.LeaveRoom(room, ws)
}
