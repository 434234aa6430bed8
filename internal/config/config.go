// Package config provides YAML-based configuration loading for the game,
// the chat bot and the SSH server.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config is the complete configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Bot     BotConfig     `yaml:"bot"`
	SSH     SSHConfig     `yaml:"ssh"`
	Play    PlayConfig    `yaml:"play"`
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // "~" expands to the home directory
}

// BotConfig configures the Discord interactions endpoint.
type BotConfig struct {
	Address         string        `yaml:"address"`
	Path            string        `yaml:"path"`
	PublicKey       string        `yaml:"public_key"` // hex encoded ed25519 key
	Command         string        `yaml:"command"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// PlayConfig configures local terminal games.
type PlayConfig struct {
	Seed int64 `yaml:"seed"` // 0 means seed from the clock
}

// ErrMissingPublicKey is returned when the bot has no key to verify requests.
var ErrMissingPublicKey = errors.New("config: bot.public_key is required (or set DISCORD_PUBLIC_KEY)")

// Validate checks the settings every command relies on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage.DBPath) == "" {
		return errors.New("config: storage.db_path is empty")
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("config: ssh.idle_timeout is negative: %s", c.SSH.IdleTimeout)
	}
	return nil
}

// ValidateBot checks the settings needed to serve interactions.
func (c Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}

	b := c.Bot
	if b.PublicKey == "" {
		return ErrMissingPublicKey
	}
	if raw, err := hex.DecodeString(b.PublicKey); err != nil || len(raw) != 32 {
		return errors.New("config: bot.public_key must be 64 hex characters")
	}
	if !strings.HasPrefix(b.Path, "/") {
		return fmt.Errorf("config: bot.path must start with /: %q", b.Path)
	}
	if b.Command == "" {
		return errors.New("config: bot.command is empty")
	}
	if b.Address == "" {
		return errors.New("config: bot.address is empty")
	}
	return nil
}
