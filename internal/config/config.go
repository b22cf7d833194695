// Package config provides YAML-based configuration loading for the
// patience platform.
package config

import "time"

// Config contains all user-tunable settings.
type Config struct {
	DefaultGame       string         `yaml:"default_game"`
	AutoPlay          AutoPlayConfig `yaml:"autoplay"`
	StuckNotification bool           `yaml:"stuck_notification"`
	Demo              DemoConfig     `yaml:"demo"`
	SaveDir           string         `yaml:"save_dir"`
	DBPath            string         `yaml:"db_path"`
	SSH               SSHConfig      `yaml:"ssh"`
}

// AutoPlayConfig selects the automatic moves made after each player move.
type AutoPlayConfig struct {
	FaceUp bool `yaml:"face_up"` // turn face-down row tops up
	Drop   bool `yaml:"drop"`    // move playable cards to the foundations
	Deal   bool `yaml:"deal"`    // deal when the waste runs empty
}

// DemoConfig controls the self-playing demo.
type DemoConfig struct {
	MaxMoves int `yaml:"max_moves"` // 0 = until no move is left
}

// SSHConfig defines the wish server settings.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}
