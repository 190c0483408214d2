package memory

import (
	"context"
	"reflect"
	"testing"
)

func TestStaticRoomLoader(t *testing.T) {
	loader := NewStaticRoomLoader([]string{"math", "art"})

	rooms, err := loader.LoadRooms(context.Background())
	if err != nil {
		t.Fatalf("load rooms: %v", err)
	}
	if want := []string{"math", "art"}; !reflect.DeepEqual(rooms, want) {
		t.Fatalf("expected %v, got %v", want, rooms)
	}

	// Mutating the result must not leak into the loader.
	rooms[0] = "changed"
	again, _ := loader.LoadRooms(context.Background())
	if again[0] != "math" {
		t.Fatalf("expected loader unaffected by caller mutation, got %v", again)
	}
}
