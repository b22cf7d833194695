package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the built-in configuration. It matches the
// embedded defaults/config.yaml.
func DefaultConfig() Config {
	return Config{
		DefaultGame: "klondike",
		AutoPlay: AutoPlayConfig{
			FaceUp: true,
			Drop:   true,
		},
		StuckNotification: true,
		Demo: DemoConfig{
			MaxMoves: 500,
		},
		SaveDir: "~/.patience/saves",
		DBPath:  "~/.patience/patience.db",
		SSH: SSHConfig{
			Address:            ":2222",
			HostKey:            ".ssh/patience_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}
