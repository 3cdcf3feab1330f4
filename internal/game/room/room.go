package room

import (
	"fmt"

	"MissyCards/internal/game/deck"
)

// Player 房间内玩家；连接句柄不在这里，由 Hub 按 ID 映射
type Player struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Hand []deck.Card `json:"hand"`
}

// Roles 角色归属。皇帝单槽位、后写覆盖；小姐/仆人只增不减。
type Roles struct {
	Emperor  string   `json:"emperor"`
	Missies  []string `json:"missies"`
	Servants []string `json:"servants"`
}

// Room 一局游戏的权威状态。所有修改都经由 Join/Draw/RemovePlayer，
// 调用方（GameManager）负责串行化，这里不加锁。
type Room struct {
	RoomID             string
	HostID             string
	Players            []*Player
	Deck               []deck.Card
	CurrentPlayerIndex int
	LastDrawnCard      *deck.Card
	GameLog            []string
	Roles              Roles
	IsGameOver         bool
}

// DisplayName 由 ID 前 4 位派生的展示名
func DisplayName(playerID string) string {
	short := playerID
	if len(short) > 4 {
		short = short[:4]
	}
	return "Player " + short
}

func New(roomID, hostID string, cards []deck.Card) *Room {
	return &Room{
		RoomID:  roomID,
		HostID:  hostID,
		Players: []*Player{},
		Deck:    cards,
		GameLog: []string{fmt.Sprintf("Room created by %s.", DisplayName(hostID))},
		Roles:   Roles{Missies: []string{}, Servants: []string{}},
	}
}

// Join 加入房间；重复加入是幂等的。返回状态是否发生变化。
func (r *Room) Join(playerID string) bool {
	for _, p := range r.Players {
		if p.ID == playerID {
			return false
		}
	}
	r.Players = append(r.Players, &Player{
		ID:   playerID,
		Name: DisplayName(playerID),
		Hand: []deck.Card{},
	})
	return true
}

// CurrentPlayer 当前回合玩家；空房间返回 nil
func (r *Room) CurrentPlayer() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[r.CurrentPlayerIndex]
}

// Draw 当前玩家抽牌。以下情况静默忽略（过期/越权请求，不算错误）：
// 游戏已结束、不是该玩家回合、牌堆已空。返回状态是否发生变化。
//
// 有效抽牌：弹出堆顶，7/8/小王 存入手牌，K/Q/J 结算角色，
// 回合指针按当前人数取模前进；抽空牌堆即终局，终局不可逆。
func (r *Room) Draw(playerID string) bool {
	if r.IsGameOver {
		return false
	}
	cp := r.CurrentPlayer()
	if cp == nil || cp.ID != playerID {
		return false
	}
	if len(r.Deck) == 0 {
		return false
	}

	card := r.Deck[len(r.Deck)-1]
	r.Deck = r.Deck[:len(r.Deck)-1]

	logLine := fmt.Sprintf("%s drew %s.", cp.Name, card)
	if card.Holdable() {
		cp.Hand = append(cp.Hand, card)
		logLine += " Card kept in hand."
	} else {
		r.applyRole(card.Rank, cp.ID)
	}

	r.LastDrawnCard = &card
	r.GameLog = append(r.GameLog, logLine)
	r.CurrentPlayerIndex = (r.CurrentPlayerIndex + 1) % len(r.Players)

	if len(r.Deck) == 0 {
		r.IsGameOver = true
		r.GameLog = append(r.GameLog, "The deck is empty. Game over!")
	}
	return true
}

func (r *Room) applyRole(rank deck.Rank, playerID string) {
	switch rank {
	case "K":
		r.Roles.Emperor = playerID
	case "Q":
		if !contains(r.Roles.Missies, playerID) {
			r.Roles.Missies = append(r.Roles.Missies, playerID)
		}
	case "J":
		if !contains(r.Roles.Servants, playerID) {
			r.Roles.Servants = append(r.Roles.Servants, playerID)
		}
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// RemovePlayer 断线清理。房主离开则移交给列表中新的第一位；
// 回合指针越界时重置为 0（明确采用「回到首位」策略，不追溯原回合归属）。
// 返回该玩家是否确实在房间内。
func (r *Room) RemovePlayer(playerID string) bool {
	idx := -1
	for i, p := range r.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	if len(r.Players) == 0 {
		return true
	}
	if r.HostID == playerID {
		r.HostID = r.Players[0].ID
	}
	if r.CurrentPlayerIndex >= len(r.Players) {
		r.CurrentPlayerIndex = 0
	}
	return true
}

func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// PlayerIDs 广播目标列表
func (r *Room) PlayerIDs() []string {
	ids := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		ids = append(ids, p.ID)
	}
	return ids
}
