package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultYAML returns the embedded default configuration file, useful
// for writing a starting point the user can edit.
func DefaultYAML() []byte {
	return defaultPongYAML
}
