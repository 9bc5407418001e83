// Package event provides typed publish/subscribe with explicit teardown.
package event

import (
	"slices"
	"sync"
)

// Bus delivers values of type T to subscribers. The zero value is ready to use.
type Bus[T any] struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(T)
}

// Subscribe registers fn and returns the subscription that removes it.
func (b *Bus[T]) Subscribe(fn func(T)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func(T))
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	return &Subscription{cancel: func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}}
}

// Publish calls every current subscriber with v, in subscription order.
// Subscribers run on the caller's goroutine.
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	fns := make(map[int]func(T), len(b.subs))
	for id, fn := range b.subs {
		fns[id] = fn
	}
	b.mu.RUnlock()

	ids := make([]int, 0, len(fns))
	for id := range fns {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fns[id](v)
	}
}

// Len returns the number of active subscribers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Subscription is a live registration on a Bus.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the subscriber. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}
