package room

import "MissyCards/internal/game/deck"

// Snapshot 发给客户端的投影。独立类型、逐字段拷贝，
// 保证任何传输层句柄都不会混进序列化结果。
type Snapshot struct {
	RoomID             string      `json:"roomId"`
	HostID             string      `json:"hostId"`
	Players            []Player    `json:"players"`
	Deck               []deck.Card `json:"deck"`
	CurrentPlayerIndex int         `json:"currentPlayerIndex"`
	LastDrawnCard      *deck.Card  `json:"lastDrawnCard"`
	GameLog            []string    `json:"gameLog"`
	Roles              Roles       `json:"roles"`
	IsGameOver         bool        `json:"isGameOver"`
}

func (r *Room) Snapshot() Snapshot {
	players := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, *p)
	}
	return Snapshot{
		RoomID:             r.RoomID,
		HostID:             r.HostID,
		Players:            players,
		Deck:               r.Deck,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		LastDrawnCard:      r.LastDrawnCard,
		GameLog:            r.GameLog,
		Roles:              r.Roles,
		IsGameOver:         r.IsGameOver,
	}
}
