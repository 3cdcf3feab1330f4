package manager

import (
	"MissyCards/internal/game/deck"
	"MissyCards/internal/game/registry"
	"MissyCards/internal/game/room"
	"MissyCards/internal/utils"
	"MissyCards/internal/websocket"
)

// ---------------------
//   ACTION DEFINITION
// ---------------------

type action struct {
	msg        websocket.IncomingMessage
	disconnect bool
}

// ---------------------
//     GAME MANAGER
// ---------------------

// GameManager 连接生命周期 + 动作路由。actionChan 由单个 Run 协程
// 消费，一条消息处理完才取下一条，房间状态因此不需要锁。
type GameManager struct {
	registry     *registry.Registry
	playerToRoom map[string]string // userID → roomID
	hub          websocket.HubInterface
	factory      *deck.Factory
	codeLen      int
	actionChan   chan action
}

func NewGameManager(reg *registry.Registry, hub websocket.HubInterface, factory *deck.Factory, codeLen int) *GameManager {
	return &GameManager{
		registry:     reg,
		playerToRoom: make(map[string]string),
		hub:          hub,
		factory:      factory,
		codeLen:      codeLen,
		actionChan:   make(chan action, 64), // 防止死锁
	}
}

// Attach 把 Hub 的回调接到动作队列上。回调在 Hub 协程里执行，
// 只做入队，真正的状态修改都在 Run 协程完成。
func (m *GameManager) Attach(hub *websocket.Hub) {
	hub.OnIncoming = func(msg websocket.IncomingMessage) {
		m.actionChan <- action{msg: msg}
	}
	hub.OnDisconnect = func(userID string) {
		m.actionChan <- action{msg: websocket.IncomingMessage{From: userID}, disconnect: true}
	}
}

// Run 动作循环：串行消费玩家动作与断线事件
func (m *GameManager) Run() {
	for act := range m.actionChan {
		if act.disconnect {
			m.handleDisconnect(act.msg.From)
			continue
		}
		m.handleMessage(act.msg)
	}
}

func (m *GameManager) Close() {
	close(m.actionChan)
}

// handleMessage 按 type 分发。未知类型只记日志，不回错误。
func (m *GameManager) handleMessage(msg websocket.IncomingMessage) {
	switch msg.Type {

	case "createRoom":
		m.handleCreateRoom(msg.From)

	case "joinRoom":
		m.handleJoinRoom(msg.From, registry.Normalize(msg.RoomID))

	case "drawCard":
		m.handleDrawCard(msg.From)

	default:
		utils.Error.Printf("unknown message type %q from %s", msg.Type, msg.From)
	}
}

// handleCreateRoom 生成新房间码、建房并把创建者作为房主落座
func (m *GameManager) handleCreateRoom(userID string) {
	code := m.registry.NewCode(m.codeLen, m.factory.Rnd())
	r, err := m.registry.Create(code, userID, m.factory.NewDeck())
	if err != nil {
		// NewCode 已经避开了占用中的码，理论上到不了这里
		utils.Error.Printf("create room %s: %v", code, err)
		return
	}
	utils.Info.Printf("room %s created by %s", code, userID)
	m.joinRoom(r, userID)
}

func (m *GameManager) handleJoinRoom(userID, roomID string) {
	r, ok := m.registry.Get(roomID)
	if !ok {
		// 唯一回给客户端的错误：目标房间不存在
		m.hub.SendToPlayer(userID, websocket.OutgoingMessage{
			Type:    "error",
			Message: "Room does not exist.",
		})
		return
	}
	m.joinRoom(r, userID)
}

func (m *GameManager) joinRoom(r *room.Room, userID string) {
	if !r.Join(userID) {
		utils.Info.Printf("player %s already in room %s", userID, r.RoomID)
		return
	}
	m.playerToRoom[userID] = r.RoomID
	utils.Info.Printf("player %s joined room %s (players: %d)", userID, r.RoomID, len(r.Players))
	m.broadcast(r)
}

func (m *GameManager) handleDrawCard(userID string) {
	roomID, ok := m.playerToRoom[userID]
	if !ok {
		return
	}
	r, ok := m.registry.Get(roomID)
	if !ok {
		return
	}
	// 过期抽牌（非当前回合、已终局、空堆）在 Draw 里静默拒绝，不广播
	if r.Draw(userID) {
		m.broadcast(r)
	}
}

// handleDisconnect 断线收尾：移出房间，空房即销毁，
// 否则房主/回合指针按规则重排后广播给剩下的人。
func (m *GameManager) handleDisconnect(userID string) {
	roomID, ok := m.playerToRoom[userID]
	if !ok {
		return
	}
	delete(m.playerToRoom, userID)

	r, ok := m.registry.Get(roomID)
	if !ok {
		return
	}
	if !r.RemovePlayer(userID) {
		return
	}
	if r.Empty() {
		m.registry.Remove(roomID)
		utils.Info.Printf("room %s is empty, removed", roomID)
		return
	}
	m.broadcast(r)
}

// ---------------------
//   BROADCAST ENGINE
// ---------------------

// broadcast 状态快照全量下发：只发净化后的投影，尽力送达，
// 没收到的客户端靠下一次快照自愈。
func (m *GameManager) broadcast(r *room.Room) {
	m.hub.BroadcastToPlayers(r.PlayerIDs(), websocket.OutgoingMessage{
		Type:      "gameStateUpdate",
		GameState: r.Snapshot(),
	})
}
