package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/concierge/pkg/config"
	"github.com/pseudomuto/concierge/pkg/consts"
	"github.com/stretchr/testify/require"
)

// Workspace represents an isolated test directory holding a concierge config
// file and the API description it names.
type Workspace struct {
	Dir        string
	ConfigFile string
	Config     *config.Config
}

// NewWorkspace creates a temp directory containing the given API description
// and a concierge.yaml pointing at it. rules, when non-empty, is a raw YAML
// block appended to the config file, e.g. "rules:\n  skip:\n    - internal\n".
func NewWorkspace(t *testing.T, description, rules string) *Workspace {
	t.Helper()

	dir := t.TempDir()

	sourcePath := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(sourcePath, []byte(description), consts.ModeFile))

	configYAML := "source: " + sourcePath + "\n" + rules
	configPath := filepath.Join(dir, consts.DefaultConfigFile)
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), consts.ModeFile))

	cfg, err := config.LoadConfigFile(configPath)
	require.NoError(t, err, "Failed to load workspace config")

	return &Workspace{
		Dir:        dir,
		ConfigFile: configPath,
		Config:     cfg,
	}
}
