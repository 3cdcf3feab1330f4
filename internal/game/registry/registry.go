package registry

import (
	"errors"
	"sync"

	"MissyCards/internal/game/deck"
	"MissyCards/internal/game/room"
)

var ErrDuplicateRoom = errors.New("room id already exists")

// Registry 进程级唯一的 roomID → Room 映射。
// Room 的生命周期归它管：建房写入，最后一人离开时删除。
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*room.Room),
	}
}

// Create 建房。ID 实际上由 NewCode 现生成，这里仍拒绝碰撞而不是静默覆盖。
func (reg *Registry) Create(roomID, hostID string, cards []deck.Card) (*room.Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.rooms[roomID]; ok {
		return nil, ErrDuplicateRoom
	}
	r := room.New(roomID, hostID, cards)
	reg.rooms[roomID] = r
	return r, nil
}

func (reg *Registry) Get(roomID string) (*room.Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[roomID]
	return r, ok
}

func (reg *Registry) Remove(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, roomID)
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
