// Package broker fans session snapshots out to the views subscribed to them.
package broker

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
)

const subscriberBuffer = 16

// Broker is an in-process pub/sub keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan entity.Session]struct{}
}

func New() *Broker {
	return &Broker{
		subs: make(map[string]map[chan entity.Session]struct{}),
	}
}

// Subscribe returns a channel receiving every snapshot published for sessionID.
func (b *Broker) Subscribe(sessionID string) chan entity.Session {
	ch := make(chan entity.Session, subscriberBuffer)

	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan entity.Session]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()

	return ch
}

// Unsubscribe removes and closes ch.
func (b *Broker) Unsubscribe(sessionID string, ch chan entity.Session) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sessionID][ch]; !ok {
		return
	}

	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	close(ch)
}

// Publish sends a snapshot to every subscriber of the session. It never
// blocks: a full subscriber loses its oldest queued snapshot, so the newest
// one is always delivered.
func (b *Broker) Publish(session entity.Session) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[session.ID] {
		offer(ch, session)
	}
}

func offer(ch chan entity.Session, session entity.Session) {
	for {
		select {
		case ch <- session:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}

// Subscribers returns how many views follow the session.
func (b *Broker) Subscribers(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs[sessionID])
}
