package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/merge2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/merge2048.yaml and is used when that file cannot be parsed.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			DBPath: "~/.merge2048/scores.db",
		},
		Bot: BotConfig{
			Address:         "127.0.0.1:3000",
			Path:            "/i",
			Command:         "2048",
			ShutdownTimeout: 10 * time.Second,
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
