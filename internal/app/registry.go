package app

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/renato145/interactive-class/internal/domain"
)

// Presence mirrors room existence into an external store (e.g. Redis) as
// best-effort liveness markers. It is never the source of truth.
type Presence interface {
	MarkRoom(ctx context.Context, name string) error
	ClearRoom(ctx context.Context, name string) error
}

// RoomLoader provides initial room names from a backing store so a deployment
// can come up with its class rooms already created.
type RoomLoader interface {
	LoadRooms(ctx context.Context) ([]string, error)
}

// Registry is the process-wide owner of all rooms. A single mutex serializes
// every mutation, so concurrent sessions never race on room state; critical
// sections stay short (map work only, no I/O).
type Registry struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	presence Presence
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// NewRegistryWithPresence builds a registry that mirrors room lifecycle into
// the given presence store.
func NewRegistryWithPresence(presence Presence) *Registry {
	registry := NewRegistry()
	registry.presence = presence
	return registry
}

// CreateRoom inserts an empty room under name.
func (r *Registry) CreateRoom(name string) error {
	r.mu.Lock()
	if _, ok := r.rooms[name]; ok {
		r.mu.Unlock()
		return domain.ErrRoomExists
	}
	r.rooms[name] = newRoom(name)
	r.mu.Unlock()

	// Presence updates happen outside the lock: they may hit the network.
	if r.presence != nil {
		if err := r.presence.MarkRoom(context.Background(), name); err != nil {
			log.Printf("presence: mark room %q: %v", name, err)
		}
	}
	return nil
}

// DeleteRoom removes a room and everything in it. Connections still holding
// the name are not notified; their next operation fails with an invalid room.
func (r *Registry) DeleteRoom(name string) error {
	r.mu.Lock()
	if _, ok := r.rooms[name]; !ok {
		r.mu.Unlock()
		return domain.ErrRoomNotFound
	}
	delete(r.rooms, name)
	r.mu.Unlock()

	if r.presence != nil {
		if err := r.presence.ClearRoom(context.Background(), name); err != nil {
			log.Printf("presence: clear room %q: %v", name, err)
		}
	}
	return nil
}

// ListRooms returns a sorted snapshot of room names.
func (r *Registry) ListRooms() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.rooms))
	for name := range r.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithRoom runs f against the named room while holding the registry lock.
// This is the only way callers touch room internals, so every read-then-write
// sequence inside f is atomic with respect to all other sessions. f must not
// block on I/O; outbound sends are queue-only.
func (r *Registry) WithRoom(name string, f func(room *Room) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[name]
	if !ok {
		return domain.InvalidRoomError(name)
	}
	return f(room)
}

// Preload creates one room per name returned by the loader. Names that
// already exist are kept as-is.
func (r *Registry) Preload(ctx context.Context, loader RoomLoader) error {
	names, err := loader.LoadRooms(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := r.CreateRoom(name); err != nil && err != domain.ErrRoomExists {
			return err
		}
	}
	return nil
}
