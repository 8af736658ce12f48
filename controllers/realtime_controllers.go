package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/geprek-app/hub"
	"github.com/yeremiapane/geprek-app/middlewares"
	"github.com/yeremiapane/geprek-app/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // token sudah diverifikasi middleware
	},
}

type RealtimeController struct {
	Hub *hub.Hub
}

func NewRealtimeController(h *hub.Hub) *RealtimeController {
	return &RealtimeController{Hub: h}
}

// HandleWebSocket -> dashboard admin/manager menerima event pesanan & rekap
func (rc *RealtimeController) HandleWebSocket(c *gin.Context) {
	role := c.GetString(middlewares.ContextRole)
	if _, ok := models.ParseRole(role); !ok {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	rc.Hub.RegisterClient(ws, role)

	// pesan dari client diabaikan, loop hanya mendeteksi disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	rc.Hub.UnregisterClient(ws)
}
