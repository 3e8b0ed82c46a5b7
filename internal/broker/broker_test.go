package broker

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesOnlyTheSession(t *testing.T) {
	b := New()

	// Given: two sessions with one subscriber each
	first := entity.NewSession(entity.ThemeLight)
	second := entity.NewSession(entity.ThemeLight)
	firstCh := b.Subscribe(first.ID)
	secondCh := b.Subscribe(second.ID)

	// When: the first session is published
	b.Publish(first)

	// Then: only its subscriber receives it
	require.Len(t, firstCh, 1)
	assert.Equal(t, first, <-firstCh)
	assert.Empty(t, secondCh)
}

func TestBroker_SlowSubscriberKeepsNewestSnapshots(t *testing.T) {
	b := New()
	session := entity.NewSession(entity.ThemeLight)
	ch := b.Subscribe(session.ID)

	// Given: more distinct snapshots than the buffer holds
	published := make([]entity.Session, 0, subscriberBuffer+2)
	for i := range subscriberBuffer + 2 {
		snapshot := session
		snapshot.UpdatedAt = time.Unix(int64(i), 0).UTC()
		published = append(published, snapshot)
	}

	// When: all of them are published without draining
	for _, snapshot := range published {
		b.Publish(snapshot)
	}

	// Then: the buffer holds the newest ones in order and ends with the latest
	require.Len(t, ch, subscriberBuffer)

	received := make([]entity.Session, 0, subscriberBuffer)
	for range subscriberBuffer {
		received = append(received, <-ch)
	}

	assert.Equal(t, published[2:], received)
	assert.Equal(t, published[len(published)-1], received[len(received)-1])
}

func TestBroker_Unsubscribe(t *testing.T) {
	b := New()
	session := entity.NewSession(entity.ThemeLight)
	ch := b.Subscribe(session.ID)
	require.Equal(t, 1, b.Subscribers(session.ID))

	// When: unsubscribing twice
	b.Unsubscribe(session.ID, ch)
	b.Unsubscribe(session.ID, ch)

	// Then: the channel is closed and nothing is left
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.Subscribers(session.ID))

	// Then: publishing to a session without subscribers is fine
	b.Publish(session)
}
