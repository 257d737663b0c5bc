package room

import (
	"log"
	"sync"
)

// Observer is one live subscriber connection within a tracking room.
// Send must be bounded: implementations return an error instead of
// blocking when the peer cannot keep up. A failed Send gets the
// observer removed from its room.
type Observer interface {
	Send(event any) error
	Close()
}

// room holds the observer set for one tracking identifier. Each room
// has its own lock so traffic on one package never contends with
// traffic on another.
type room struct {
	mu        sync.Mutex
	observers map[Observer]struct{}
}

// Registry multiplexes enriched location events to per-package observer
// groups. Rooms exist only while at least one observer is attached.
// The registry is safe for concurrent use and carries no global state:
// callers construct and inject their own instance.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*room)}
}

// Subscribe registers an observer under a room, creating the room on
// first use. Registering the same observer twice is a no-op.
func (r *Registry) Subscribe(roomID string, obs Observer) {
	r.mu.Lock()
	rm, ok := r.rooms[roomID]
	if !ok {
		rm = &room{observers: make(map[Observer]struct{})}
		r.rooms[roomID] = rm
	}
	// Take the room lock before releasing the registry lock so the room
	// cannot be emptied and deleted between lookup and insert.
	rm.mu.Lock()
	r.mu.Unlock()

	rm.observers[obs] = struct{}{}
	count := len(rm.observers)
	rm.mu.Unlock()

	log.Printf("Observer subscribed to tracking room %s (total: %d)", roomID, count)
}

// Unsubscribe removes an observer from a room and drops the room once
// its observer set becomes empty. No-op when either is absent.
func (r *Registry) Unsubscribe(roomID string, obs Observer) {
	r.mu.Lock()
	rm, ok := r.rooms[roomID]
	if !ok {
		r.mu.Unlock()
		return
	}

	rm.mu.Lock()
	delete(rm.observers, obs)
	empty := len(rm.observers) == 0
	if empty {
		delete(r.rooms, roomID)
	}
	rm.mu.Unlock()
	r.mu.Unlock()

	log.Printf("Observer unsubscribed from tracking room %s", roomID)
}

// Broadcast delivers an event to every current observer of a room.
// A room with no observers is a cheap no-op. Delivery is attempted
// independently per observer; observers whose delivery fails are
// unsubscribed and closed after the fan-out so one bad connection
// never affects its siblings or the caller.
func (r *Registry) Broadcast(roomID string, event any) {
	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	if !ok {
		r.mu.RUnlock()
		return
	}

	rm.mu.Lock()
	snapshot := make([]Observer, 0, len(rm.observers))
	for obs := range rm.observers {
		snapshot = append(snapshot, obs)
	}
	rm.mu.Unlock()
	r.mu.RUnlock()

	var failed []Observer
	for _, obs := range snapshot {
		if err := obs.Send(event); err != nil {
			log.Printf("Error delivering to observer in room %s: %v", roomID, err)
			failed = append(failed, obs)
		}
	}

	for _, obs := range failed {
		r.Unsubscribe(roomID, obs)
		obs.Close()
	}

	log.Printf("Broadcasted event for %s to %d observers", roomID, len(snapshot)-len(failed))
}

// RoomSize returns the number of observers currently attached to a room
func (r *Registry) RoomSize(roomID string) int {
	r.mu.RLock()
	rm, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return 0
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	return len(rm.observers)
}
