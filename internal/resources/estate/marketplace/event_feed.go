package marketplace

import (
	"fmt"
	"sync"

	"github.com/estate-chain/marketplace-router/internal/resources/estate"
	"github.com/gammazero/deque"
)

// EventFeed keeps the most recent decoded contract events, oldest are dropped first
type EventFeed struct {
	size int

	mu     sync.RWMutex
	events *deque.Deque[estate.Event]
	seen   map[string]struct{}
}

func NewEventFeed(size int) *EventFeed {
	if size <= 0 {
		size = 1
	}
	return &EventFeed{
		size:   size,
		events: deque.New[estate.Event](),
		seen:   make(map[string]struct{}, size),
	}
}

// Push adds the event unless the same log was already recorded
func (f *EventFeed) Push(ev estate.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := eventKey(ev)
	if _, ok := f.seen[key]; ok {
		return false
	}

	if f.events.Len() >= f.size {
		dropped := f.events.PopFront()
		delete(f.seen, eventKey(dropped))
	}
	f.events.PushBack(ev)
	f.seen[key] = struct{}{}
	return true
}

// Recent returns up to limit events, newest first. Non-positive limit returns all
func (f *EventFeed) Recent(limit int) []estate.Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := f.events.Len()
	if limit <= 0 || limit > n {
		limit = n
	}
	res := make([]estate.Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		res = append(res, f.events.At(i))
	}
	return res
}

func (f *EventFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.events.Len()
}

func eventKey(ev estate.Event) string {
	return fmt.Sprintf("%s:%d", ev.TxHash.Hex(), ev.LogIndex)
}
