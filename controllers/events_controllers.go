package controllers

import (
	"net/http"

	"github.com/dinebook/reservation-app/events"
	"github.com/dinebook/reservation-app/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventStream upgrades the connection and keeps it registered with the
// broadcast hub until the client goes away. The hub writes, clients only
// listen; inbound frames are drained and dropped.
func EventStream(c *gin.Context) {
	role, _ := c.Get("role")
	roleStr, _ := role.(string)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	events.RegisterClient(conn, roleStr)
	defer events.UnregisterClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
