// Package notify fans out row-change notifications from Postgres to the
// live views. Events are invalidation hints only: subscribers re-read the
// authoritative state instead of applying event payloads.
package notify

import (
	"context"
	"sync"

	"tableside/order-svc/internal/domain"
)

const DefaultBuffer = 16

// Filter selects events for one subscriber. Empty fields match everything.
type Filter struct {
	Table   string
	OrderID string
}

func (f Filter) Matches(event domain.ChangeEvent) bool {
	if event.IsResync() {
		return true
	}
	if f.Table != "" && f.Table != event.Table {
		return false
	}
	return f.OrderID == "" || f.OrderID == event.OrderID
}

type Subscription struct {
	id     uint64
	filter Filter
	events chan domain.ChangeEvent
	bridge *Bridge
	once   sync.Once
}

func (s *Subscription) Events() <-chan domain.ChangeEvent {
	return s.events
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bridge.remove(s.id)
	})
}

// Invalidator drops cached state derived from the changed rows.
type Invalidator interface {
	Invalidate(ctx context.Context, event domain.ChangeEvent)
}

type Bridge struct {
	mu           sync.RWMutex
	nextID       uint64
	subs         map[uint64]*Subscription
	invalidators []Invalidator
}

// NewBridge runs every invalidator on each event before any subscriber sees
// it.
func NewBridge(invalidators ...Invalidator) *Bridge {
	return &Bridge{
		subs:         make(map[uint64]*Subscription),
		invalidators: invalidators,
	}
}

func (b *Bridge) Subscribe(filter Filter, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:     b.nextID,
		filter: filter,
		events: make(chan domain.ChangeEvent, buffer),
		bridge: b,
	}
	b.subs[sub.id] = sub
	return sub
}

// Publish waits only for the invalidators; delivery to subscribers never
// blocks. A subscriber whose buffer is full loses its oldest pending event
// and receives a resync marker instead, which makes it re-read everything
// it shows.
func (b *Bridge) Publish(event domain.ChangeEvent) {
	for _, inv := range b.invalidators {
		inv.Invalidate(context.Background(), event)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if !sub.filter.Matches(event) {
			continue
		}
		select {
		case sub.events <- event:
			continue
		default:
		}
		select {
		case <-sub.events:
		default:
		}
		select {
		case sub.events <- domain.ResyncEvent():
		default:
		}
	}
}

func (b *Bridge) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bridge) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.events)
	}
}
