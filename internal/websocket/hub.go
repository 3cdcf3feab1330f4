package websocket

import (
	"sync"

	"MissyCards/internal/utils"
)

type HubInterface interface {
	BroadcastToPlayers(ids []string, msg OutgoingMessage)
	SendToPlayer(id string, msg OutgoingMessage)
	Close()
}

// Hub 所有连接的注册表，Run 是唯一消费协程：
// 注册、注销、收发都在这一个循环里排队处理，房间状态的修改
// 通过 OnIncoming/OnDisconnect 回调同样落在这个协程上，天然互斥。
type Hub struct {
	clients      map[string]*Client // userID -> client
	register     chan *Client
	unregister   chan *Client
	broadcast    chan broadcastReq
	sendOne      chan sendReq
	incoming     chan IncomingMessage
	OnIncoming   func(IncomingMessage)
	OnDisconnect func(userID string)
	quit         chan struct{}
	mu           sync.RWMutex
}

type broadcastReq struct {
	UserIDs []string
	Message OutgoingMessage
}

type sendReq struct {
	UserID  string
	Message OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		incoming:   make(chan IncomingMessage),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {

	utils.Info.Println("Hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.UserID] = c
			utils.Info.Printf("Hub.register -> %s (当前连接数: %d)", c.UserID, len(h.clients))
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[c.UserID]
			if ok {
				delete(h.clients, c.UserID)
				utils.Info.Printf("Hub.unregister -> %s (当前连接数: %d)", c.UserID, len(h.clients))
				close(c.Send)
			}
			h.mu.Unlock()

			// 两个 pump 都会发 unregister，存在性检查保证只清理一次
			if ok && h.OnDisconnect != nil {
				h.OnDisconnect(c.UserID)
			}

		case req := <-h.broadcast:
			for _, id := range req.UserIDs {
				if client, ok := h.clients[id]; ok {
					select {
					case client.Send <- req.Message:
					default:
						// 客户端写队列满就丢，下一次全量快照会补齐
					}
				}
			}

		case req := <-h.sendOne:
			if client, ok := h.clients[req.UserID]; ok {
				select {
				case client.Send <- req.Message:
				default:
				}
			}

		case req := <-h.incoming:
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}

		case <-h.quit:
			for _, c := range h.clients {
				close(c.Send)
			}
			return
		}
	}
}

// Broadcast to multiple players
func (h *Hub) BroadcastToPlayers(ids []string, msg OutgoingMessage) {
	h.broadcast <- broadcastReq{
		UserIDs: ids,
		Message: msg,
	}
}

// Send to a single player (safe concurrent)
func (h *Hub) SendToPlayer(id string, msg OutgoingMessage) {
	h.sendOne <- sendReq{
		UserID:  id,
		Message: msg,
	}
}

func (h *Hub) Close() {
	close(h.quit)
}
