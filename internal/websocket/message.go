package websocket

// OutgoingMessage 服务端下行。三种形态共用一个结构：
// connected(userId) / error(message) / gameStateUpdate(gameState)
type OutgoingMessage struct {
	Type      string      `json:"type"`
	UserID    string      `json:"userId,omitempty"`
	Message   string      `json:"message,omitempty"`
	GameState interface{} `json:"gameState,omitempty"`
}

// IncomingMessage 客户端上行；From 由服务端按连接填入，多余字段一律忽略
type IncomingMessage struct {
	From   string `json:"-"`
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}
