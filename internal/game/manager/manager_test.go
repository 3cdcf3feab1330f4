package manager

import (
	"testing"

	"MissyCards/internal/game/deck"
	"MissyCards/internal/game/registry"
	"MissyCards/internal/websocket"
)

// mockHub 实现 HubInterface，记录消息
type mockHub struct {
	sentToPlayer map[string][]websocket.OutgoingMessage
	broadcasts   []broadcastEntry
}

type broadcastEntry struct {
	UserIDs []string
	Message websocket.OutgoingMessage
}

func newMockHub() *mockHub {
	return &mockHub{
		sentToPlayer: make(map[string][]websocket.OutgoingMessage),
		broadcasts:   make([]broadcastEntry, 0),
	}
}

func (h *mockHub) BroadcastToPlayers(ids []string, msg websocket.OutgoingMessage) {
	h.broadcasts = append(h.broadcasts, broadcastEntry{UserIDs: ids, Message: msg})
}

func (h *mockHub) SendToPlayer(id string, msg websocket.OutgoingMessage) {
	h.sentToPlayer[id] = append(h.sentToPlayer[id], msg)
}

func (h *mockHub) Close() {}

func (h *mockHub) lastBroadcast(t *testing.T) broadcastEntry {
	t.Helper()
	if len(h.broadcasts) == 0 {
		t.Fatalf("expected at least one broadcast")
	}
	return h.broadcasts[len(h.broadcasts)-1]
}

func newTestManager() (*GameManager, *mockHub, *registry.Registry) {
	hub := newMockHub()
	reg := registry.New()
	mgr := NewGameManager(reg, hub, deck.NewFactory(42), 5)
	return mgr, hub, reg
}

func createRoomAs(t *testing.T, mgr *GameManager, hub *mockHub, userID string) string {
	t.Helper()
	mgr.handleMessage(websocket.IncomingMessage{From: userID, Type: "createRoom"})
	last := hub.lastBroadcast(t)
	if last.Message.Type != "gameStateUpdate" {
		t.Fatalf("expected gameStateUpdate after create, got %s", last.Message.Type)
	}
	return mgr.playerToRoom[userID]
}

// ✅ 建房：创建者自动落座为房主 + 第一位玩家，并收到快照广播
func TestCreateRoomAutoJoinsCreator(t *testing.T) {
	mgr, hub, reg := newTestManager()

	code := createRoomAs(t, mgr, hub, "creator-1234")
	if code == "" {
		t.Fatalf("creator not mapped to a room")
	}

	r, ok := reg.Get(code)
	if !ok {
		t.Fatalf("room %s not in registry", code)
	}
	if r.HostID != "creator-1234" {
		t.Fatalf("creator should be host, got %s", r.HostID)
	}
	if len(r.Players) != 1 || r.Players[0].ID != "creator-1234" {
		t.Fatalf("creator should be the only player: %+v", r.Players)
	}
	if len(r.Deck) != 54 {
		t.Fatalf("fresh room should hold a full deck, got %d", len(r.Deck))
	}

	last := hub.lastBroadcast(t)
	if len(last.UserIDs) != 1 || last.UserIDs[0] != "creator-1234" {
		t.Fatalf("broadcast should target the creator, got %v", last.UserIDs)
	}
}

// ✅ 加入不存在的房间：只给发送者回 error，不广播
func TestJoinMissingRoomSendsError(t *testing.T) {
	mgr, hub, _ := newTestManager()

	mgr.handleMessage(websocket.IncomingMessage{From: "p1", Type: "joinRoom", RoomID: "NOPE1"})

	msgs := hub.sentToPlayer["p1"]
	if len(msgs) != 1 || msgs[0].Type != "error" {
		t.Fatalf("expected one error message, got %+v", msgs)
	}
	if len(hub.broadcasts) != 0 {
		t.Fatalf("failed join must not broadcast")
	}
}

// 房间码大小写不敏感
func TestJoinNormalizesRoomCode(t *testing.T) {
	mgr, hub, reg := newTestManager()
	code := createRoomAs(t, mgr, hub, "host-1")

	mgr.handleMessage(websocket.IncomingMessage{From: "p2", Type: "joinRoom", RoomID: " " + lower(code) + " "})

	r, _ := reg.Get(code)
	if len(r.Players) != 2 {
		t.Fatalf("lowercased code should still join, players: %d", len(r.Players))
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + 'a' - 'A'
		}
	}
	return string(b)
}

// ✅ 抽牌：有效则广播新快照，过期动作静默无广播
func TestDrawCardBroadcastsOnlyOnChange(t *testing.T) {
	mgr, hub, reg := newTestManager()
	code := createRoomAs(t, mgr, hub, "p1")
	mgr.handleMessage(websocket.IncomingMessage{From: "p2", Type: "joinRoom", RoomID: code})

	n := len(hub.broadcasts)

	// p2 不是当前回合玩家
	mgr.handleMessage(websocket.IncomingMessage{From: "p2", Type: "drawCard"})
	if len(hub.broadcasts) != n {
		t.Fatalf("stale draw must not broadcast")
	}

	mgr.handleMessage(websocket.IncomingMessage{From: "p1", Type: "drawCard"})
	if len(hub.broadcasts) != n+1 {
		t.Fatalf("valid draw should broadcast exactly once")
	}

	r, _ := reg.Get(code)
	if len(r.Deck) != 53 || r.CurrentPlayerIndex != 1 {
		t.Fatalf("draw not applied: deck=%d idx=%d", len(r.Deck), r.CurrentPlayerIndex)
	}

	last := hub.lastBroadcast(t)
	if last.Message.Type != "gameStateUpdate" || last.Message.GameState == nil {
		t.Fatalf("broadcast should carry a gameState snapshot")
	}
}

// 不在任何房间的玩家抽牌是无害的
func TestDrawWithoutRoomIgnored(t *testing.T) {
	mgr, hub, _ := newTestManager()
	mgr.handleMessage(websocket.IncomingMessage{From: "loner", Type: "drawCard"})
	if len(hub.broadcasts) != 0 || len(hub.sentToPlayer) != 0 {
		t.Fatalf("roomless draw should do nothing")
	}
}

func TestUnknownTypeIgnored(t *testing.T) {
	mgr, hub, _ := newTestManager()
	mgr.handleMessage(websocket.IncomingMessage{From: "p1", Type: "teleport"})
	if len(hub.broadcasts) != 0 || len(hub.sentToPlayer) != 0 {
		t.Fatalf("unknown type should be dropped silently")
	}
}

// ✅ 房主断线：移交房主、广播给剩下的人
func TestDisconnectTransfersHost(t *testing.T) {
	mgr, hub, reg := newTestManager()
	code := createRoomAs(t, mgr, hub, "p1")
	mgr.handleMessage(websocket.IncomingMessage{From: "p2", Type: "joinRoom", RoomID: code})
	mgr.handleMessage(websocket.IncomingMessage{From: "p3", Type: "joinRoom", RoomID: code})

	n := len(hub.broadcasts)
	mgr.handleDisconnect("p1")

	r, ok := reg.Get(code)
	if !ok {
		t.Fatalf("room should survive with members left")
	}
	if r.HostID != "p2" {
		t.Fatalf("host should transfer to p2, got %s", r.HostID)
	}
	if len(hub.broadcasts) != n+1 {
		t.Fatalf("disconnect with members left should broadcast once")
	}
	last := hub.lastBroadcast(t)
	if len(last.UserIDs) != 2 {
		t.Fatalf("broadcast should target the 2 remaining players, got %v", last.UserIDs)
	}
}

// ✅ 最后一人断线：房间销毁，旧码重新 join 报房间不存在
func TestDisconnectLastPlayerRemovesRoom(t *testing.T) {
	mgr, hub, reg := newTestManager()
	code := createRoomAs(t, mgr, hub, "p1")

	n := len(hub.broadcasts)
	mgr.handleDisconnect("p1")

	if _, ok := reg.Get(code); ok {
		t.Fatalf("empty room should be removed from registry")
	}
	if len(hub.broadcasts) != n {
		t.Fatalf("removing an empty room must not broadcast")
	}

	mgr.handleMessage(websocket.IncomingMessage{From: "p9", Type: "joinRoom", RoomID: code})
	msgs := hub.sentToPlayer["p9"]
	if len(msgs) != 1 || msgs[0].Type != "error" {
		t.Fatalf("join to removed room should error, got %+v", msgs)
	}
}

// 未入房玩家的断线事件无害
func TestDisconnectUnknownPlayer(t *testing.T) {
	mgr, hub, _ := newTestManager()
	mgr.handleDisconnect("ghost")
	if len(hub.broadcasts) != 0 {
		t.Fatalf("unknown disconnect should do nothing")
	}
}
