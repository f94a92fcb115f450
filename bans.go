package main

import (
	"sort"
	"sync"
)

// BanList is the process-lifetime set of users blocked from the bot.
// Users land here when a duplicate registration attempt is detected and are
// never removed automatically.
type BanList struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

// NewBanList creates an empty BanList.
func NewBanList() *BanList {
	return &BanList{ids: make(map[int64]struct{})}
}

// Add bans a user.
func (b *BanList) Add(userID int64) {
	b.mu.Lock()
	b.ids[userID] = struct{}{}
	b.mu.Unlock()
}

// Contains checks whether a user is banned.
func (b *BanList) Contains(userID int64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.ids[userID]
	return ok
}

// List returns the banned user ids in ascending order.
func (b *BanList) List() []int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]int64, 0, len(b.ids))
	for id := range b.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
