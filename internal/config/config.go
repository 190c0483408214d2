package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	Websocket struct {
		HeartbeatInterval string `yaml:"heartbeat_interval"`
		ClientTimeout     string `yaml:"client_timeout"`
	} `yaml:"websocket"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	// Rooms are created at startup when no Postgres roster is configured.
	Rooms []string `yaml:"rooms"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Heartbeat returns the liveness timings, enforcing that the client timeout
// exceeds the ping interval (otherwise healthy clients get disconnected
// between pings).
func (c Config) Heartbeat() (interval, timeout time.Duration, err error) {
	interval = Duration(c.Websocket.HeartbeatInterval, 5*time.Second)
	timeout = Duration(c.Websocket.ClientTimeout, 10*time.Second)
	if timeout <= interval {
		return 0, 0, fmt.Errorf("client_timeout (%s) must be greater than heartbeat_interval (%s)", timeout, interval)
	}
	return interval, timeout, nil
}
