package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: "9000"
websocket:
  heartbeat_interval: 2s
  client_timeout: 7s
rooms:
  - math
  - art
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Fatalf("expected port 9000, got %q", cfg.Server.Port)
	}
	if len(cfg.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %v", cfg.Rooms)
	}

	interval, timeout, err := cfg.Heartbeat()
	if err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if interval != 2*time.Second || timeout != 7*time.Second {
		t.Fatalf("expected 2s/7s, got %s/%s", interval, timeout)
	}
}

func TestHeartbeatRejectsTimeoutBelowInterval(t *testing.T) {
	path := writeConfig(t, `
websocket:
  heartbeat_interval: 5s
  client_timeout: 3s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, _, err := cfg.Heartbeat(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestDurationFallback(t *testing.T) {
	if got := Duration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %s", got)
	}
	if got := Duration("nonsense", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback on junk, got %s", got)
	}
	if got := Duration("250ms", time.Minute); got != 250*time.Millisecond {
		t.Fatalf("expected parsed value, got %s", got)
	}
}
