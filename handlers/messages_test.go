package handlers

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainSub(t *testing.T, sub *notifySubscriber, want int) []interface{} {
	t.Helper()

	got := make([]interface{}, 0, want)
	deadline := time.After(2 * time.Second)
	for len(got) < want {
		select {
		case payload := <-sub.send:
			got = append(got, payload)
		case <-deadline:
			t.Fatalf("timed out after %d of %d events", len(got), want)
		}
	}
	return got
}

func TestHubPushFansOutToEverySubscriber(t *testing.T) {
	hub := &messageHub{subs: make(map[uint][]*notifySubscriber)}

	a := hub.add(7)
	b := hub.add(7)
	other := hub.add(8)

	hub.push(7, "event")

	assert.Len(t, drainSub(t, a, 1), 1)
	assert.Len(t, drainSub(t, b, 1), 1)
	assert.Empty(t, other.send)
}

func TestHubConcurrentPushesAreAllDelivered(t *testing.T) {
	hub := &messageHub{subs: make(map[uint][]*notifySubscriber)}
	sub := hub.add(1)

	const senders = 4
	const perSender = 25

	var wg sync.WaitGroup
	for s := 0; s < senders; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				hub.push(1, s)
			}
		}(s)
	}
	wg.Wait()

	got := drainSub(t, sub, senders*perSender)
	assert.Len(t, got, senders*perSender)
}

func TestHubPushNeverBlocksOnFullBuffer(t *testing.T) {
	hub := &messageHub{subs: make(map[uint][]*notifySubscriber)}
	sub := hub.add(1)

	// Nothing drains the channel; overflow events must be dropped, not
	// stall the sender.
	done := make(chan struct{})
	go func() {
		for i := 0; i < notifyBufferSize+50; i++ {
			hub.push(1, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("push blocked on a full buffer")
	}
	assert.Len(t, sub.send, notifyBufferSize)
}

func TestHubRemoveDuringConcurrentPush(t *testing.T) {
	hub := &messageHub{subs: make(map[uint][]*notifySubscriber)}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				hub.push(1, "event")
			}
		}
	}()

	for i := 0; i < 50; i++ {
		sub := hub.add(1)
		hub.remove(1, sub)

		select {
		case <-sub.done:
		default:
			t.Fatal("remove did not signal the writer to stop")
		}
	}
	close(stop)
	wg.Wait()

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	require.Empty(t, hub.subs)
}
