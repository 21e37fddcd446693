package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/consts"
	"github.com/urfave/cli/v3"
)

const starterConfig = `# concierge configuration
source: %s

# Path rules shape the generated command tree.
# rules:
#   strip_prefix: true
#   skip:
#     - internal
#   collapse:
#     /api/v1/health: /status
`

// initCmd returns a CLI command that writes a starter concierge.yaml into the
// target directory. Initialization is idempotent: an existing config file is
// never overwritten, so the command is safe to run in populated directories.
//
// Optional flags:
//   - --source, -s: API description file the starter config points at
//   - --dir, -d: Directory to initialize (defaults to the current directory)
//
// Example usage:
//
//	# Initialize the current directory
//	concierge init
//
//	# Point the starter config at a description up front
//	concierge init --source api/openapi.yaml
func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter concierge.yaml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "API description file to reference from the config",
				Value:   "openapi.yaml",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to initialize",
				Value:   ".",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")
			if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
				return errors.Wrapf(err, "failed to create directory: %s", dir)
			}

			path := filepath.Join(dir, consts.DefaultConfigFile)
			if _, err := os.Stat(path); err == nil {
				// Preserve the existing config
				return nil
			} else if !os.IsNotExist(err) {
				return errors.Wrapf(err, "failed to stat file: %s", path)
			}

			content := fmt.Sprintf(starterConfig, cmd.String("source"))
			if err := os.WriteFile(path, []byte(content), consts.ModeFile); err != nil {
				return errors.Wrapf(err, "failed to write config file: %s", path)
			}

			return nil
		},
	}
}
