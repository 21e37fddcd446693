package config

import (
	"os"

	"github.com/pseudomuto/concierge/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Function attempts to load the configuration from concierge.yaml (or the
	// file named by CONCIERGE_CONFIG) if it exists. Returns nil if the file
	// doesn't exist, allowing commands that don't require config (like
	// describe on builtins, help, version) to function properly.
	func() (*Config, error) {
		path := os.Getenv(consts.ConfigFileEnvVar)
		if path == "" {
			path = consts.DefaultConfigFile
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			// Return nil config for commands that don't need it
			return nil, nil
		}

		return LoadConfigFile(path)
	},
))
