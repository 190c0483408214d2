package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RoomLoader reads the room roster from Postgres so the registry can be
// preseeded at startup.
type RoomLoader struct {
	pool *pgxpool.Pool
}

func NewRoomLoader(pool *pgxpool.Pool) *RoomLoader {
	return &RoomLoader{pool: pool}
}

func (l *RoomLoader) LoadRooms(ctx context.Context) ([]string, error) {
	rows, err := l.pool.Query(ctx, `SELECT name FROM rooms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	return names, nil
}
