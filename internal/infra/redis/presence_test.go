package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestPresenceMarksAndClearsRooms(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	presence := NewPresence(client, time.Minute)

	if err := presence.MarkRoom(context.Background(), "math"); err != nil {
		t.Fatalf("mark room: %v", err)
	}
	if !mr.Exists("cups:room:math") {
		t.Fatalf("expected redis key to be set")
	}

	if err := presence.ClearRoom(context.Background(), "math"); err != nil {
		t.Fatalf("clear room: %v", err)
	}
	if mr.Exists("cups:room:math") {
		t.Fatalf("expected redis key to be removed")
	}
}
