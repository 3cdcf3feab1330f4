package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"MissyCards/internal/utils"
)

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan OutgoingMessage
	Hub    *Hub
}

const (
	writeWait  = 10 * time.Second    // 单次写超时
	pongWait   = 60 * time.Second    // 读超时
	pingPeriod = (pongWait * 9) / 10 // 心跳发送周期
)

// 写协程
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod) // 心跳
	defer func() {
		ticker.Stop()
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()

	for {
		select {

		// 有消息待发
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub关闭Send，通知前端
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(msg); err != nil {
				return
			}

		// 定时发送 ping 维持连接健康
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// 读协程。解析失败只记日志、连接保持打开；读错误（含断开）才退出，
// 退出触发 unregister，进而由 Hub 回调断线清理。
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			utils.Error.Printf("bad payload from %s: %v", c.UserID, err)
			continue
		}
		msg.From = c.UserID
		c.Hub.incoming <- msg
	}
}
