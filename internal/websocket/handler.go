package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws — 升级连接，分配一次性玩家 ID 并立刻告知客户端
func ServeWS(hub *Hub, sendBuf int) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		client := &Client{
			UserID: uuid.NewString(),
			Conn:   conn,
			Send:   make(chan OutgoingMessage, sendBuf),
			Hub:    hub,
		}

		hub.register <- client

		// 注册后、读循环前入队，保证 connected 是该连接收到的第一条
		client.Send <- OutgoingMessage{Type: "connected", UserID: client.UserID}

		go client.writePump()
		go client.readPump()
	}
}
