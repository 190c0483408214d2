package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Presence mirrors room lifecycle into Redis as TTL'd liveness markers.
// Notes:
//   - All room state stays in-process; these keys only advertise which rooms
//     this instance is serving.
//   - A monitoring dashboard (or a future cross-instance router) can watch
//     the cups:room:* keyspace without touching the server.
type Presence struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPresence(client *redis.Client, ttl time.Duration) *Presence {
	return &Presence{client: client, ttl: ttl}
}

func (p *Presence) MarkRoom(ctx context.Context, name string) error {
	return p.client.Set(ctx, p.key(name), "1", p.ttl).Err()
}

func (p *Presence) ClearRoom(ctx context.Context, name string) error {
	return p.client.Del(ctx, p.key(name)).Err()
}

func (p *Presence) key(name string) string {
	return "cups:room:" + name
}
