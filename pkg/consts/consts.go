package consts

import "os"

const (
	// DefaultConfigFile is the config file concierge looks for in the working directory
	DefaultConfigFile = "concierge.yaml"

	// ConfigFileEnvVar overrides the config file location when set
	ConfigFileEnvVar = "CONCIERGE_CONFIG"

	// DefaultContentType is the body content type used when an API description
	// doesn't state one
	DefaultContentType = "application/json"

	// RootGroupName names the synthetic group that collects operations whose
	// display path carries no literal segments
	RootGroupName = "root"

	// RawBodyFlag is the reserved flag name for the raw body override
	RawBodyFlag = "body"

	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)
)
