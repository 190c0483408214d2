package memory

import "context"

// StaticRoomLoader serves a fixed room list (useful for tests and demos).
type StaticRoomLoader struct {
	rooms []string
}

func NewStaticRoomLoader(rooms []string) *StaticRoomLoader {
	return &StaticRoomLoader{rooms: rooms}
}

func (l *StaticRoomLoader) LoadRooms(_ context.Context) ([]string, error) {
	return append([]string(nil), l.rooms...), nil
}
