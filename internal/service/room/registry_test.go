package room

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

// stubObserver records deliveries and can be told to fail them
type stubObserver struct {
	mu       sync.Mutex
	received []any
	failSend bool
	closed   bool
}

func (o *stubObserver) Send(event any) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.failSend {
		return errors.New("transport closed")
	}
	o.received = append(o.received, event)
	return nil
}

func (o *stubObserver) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
}

func (o *stubObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.received)
}

func TestSubscribeBroadcastUnsubscribe(t *testing.T) {
	r := NewRegistry()
	a := &stubObserver{}
	b := &stubObserver{}

	r.Subscribe("PKG-1", a)
	r.Subscribe("PKG-1", b)
	if size := r.RoomSize("PKG-1"); size != 2 {
		t.Fatalf("RoomSize = %d, want 2", size)
	}

	r.Unsubscribe("PKG-1", a)
	if size := r.RoomSize("PKG-1"); size != 1 {
		t.Fatalf("RoomSize after unsubscribe = %d, want 1", size)
	}

	r.Broadcast("PKG-1", "event")
	if a.count() != 0 {
		t.Errorf("unsubscribed observer received %d events, want 0", a.count())
	}
	if b.count() != 1 {
		t.Errorf("observer B received %d events, want 1", b.count())
	}
}

func TestSubscribeIsIdempotent(t *testing.T) {
	r := NewRegistry()
	a := &stubObserver{}

	r.Subscribe("PKG-1", a)
	r.Subscribe("PKG-1", a)

	if size := r.RoomSize("PKG-1"); size != 1 {
		t.Fatalf("RoomSize = %d, want 1", size)
	}

	r.Broadcast("PKG-1", "event")
	if a.count() != 1 {
		t.Errorf("observer received %d deliveries, want 1 (no duplicates)", a.count())
	}
}

func TestEmptyRoomIsRemoved(t *testing.T) {
	r := NewRegistry()
	a := &stubObserver{}

	r.Subscribe("PKG-1", a)
	r.Unsubscribe("PKG-1", a)

	if size := r.RoomSize("PKG-1"); size != 0 {
		t.Fatalf("RoomSize = %d, want 0", size)
	}

	// Broadcast into a dead room is a cheap no-op
	r.Broadcast("PKG-1", "event")
	if a.count() != 0 {
		t.Errorf("observer received %d events after room removal, want 0", a.count())
	}
}

func TestUnsubscribeUnknownIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Unsubscribe("PKG-MISSING", &stubObserver{})

	if size := r.RoomSize("PKG-MISSING"); size != 0 {
		t.Fatalf("RoomSize = %d, want 0", size)
	}
}

func TestBroadcastSelfHealsFailedObserver(t *testing.T) {
	r := NewRegistry()
	bad := &stubObserver{failSend: true}
	good := &stubObserver{}

	r.Subscribe("PKG-1", bad)
	r.Subscribe("PKG-1", good)

	r.Broadcast("PKG-1", "event")

	if good.count() != 1 {
		t.Errorf("healthy observer received %d events, want 1", good.count())
	}
	if size := r.RoomSize("PKG-1"); size != 1 {
		t.Errorf("RoomSize after failure = %d, want 1", size)
	}
	bad.mu.Lock()
	closed := bad.closed
	bad.mu.Unlock()
	if !closed {
		t.Error("failed observer was not closed")
	}

	// Subsequent broadcasts no longer attempt the removed observer
	r.Broadcast("PKG-1", "event")
	if good.count() != 2 {
		t.Errorf("healthy observer received %d events, want 2", good.count())
	}
}

func TestRoomsAreIndependent(t *testing.T) {
	r := NewRegistry()
	a := &stubObserver{}
	b := &stubObserver{}

	r.Subscribe("PKG-1", a)
	r.Subscribe("PKG-2", b)

	r.Broadcast("PKG-1", "event")

	if a.count() != 1 || b.count() != 0 {
		t.Errorf("deliveries = (%d, %d), want (1, 0)", a.count(), b.count())
	}
}

func TestConcurrentSubscribeBroadcastUnsubscribe(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			roomID := fmt.Sprintf("PKG-%d", i%4)
			obs := &stubObserver{}

			for j := 0; j < 100; j++ {
				r.Subscribe(roomID, obs)
				r.Broadcast(roomID, j)
				r.RoomSize(roomID)
				r.Unsubscribe(roomID, obs)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		roomID := fmt.Sprintf("PKG-%d", i)
		if size := r.RoomSize(roomID); size != 0 {
			t.Errorf("RoomSize(%s) = %d after all unsubscribed, want 0", roomID, size)
		}
	}
}
