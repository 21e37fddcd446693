package config

import (
	"io"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/pseudomuto/concierge/pkg/paths"
	"gopkg.in/yaml.v3"
)

// validate checks config shape after decoding. Created once; validator
// instances are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

type (
	// Config represents the project configuration for command generation.
	//
	// Known fields are typed; any other top-level key in the file is kept
	// opaquely in Extra, so a loaded configuration can be written back out
	// without losing keys this version doesn't understand.
	Config struct {
		// Source is the path to the API description the command tree is
		// generated from
		Source string `validate:"required"`

		// Rules controls how raw description paths become display paths
		Rules paths.RuleSet

		// Extra holds unrecognized top-level keys, preserved for round-trip
		// serialization
		Extra map[string]*yaml.Node
	}
)

// known mirrors Config's typed fields for the YAML codec. Decoding into a
// separate type keeps Config's own UnmarshalYAML from recursing.
type known struct {
	Source string        `yaml:"source"`
	Rules  paths.RuleSet `yaml:"rules"`
}

var knownKeys = map[string]bool{"source": true, "rules": true}

// UnmarshalYAML decodes recognized fields into their typed homes and stashes
// everything else in Extra.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var k known
	if err := value.Decode(&k); err != nil {
		return err
	}
	c.Source = k.Source
	c.Rules = k.Rules

	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if knownKeys[key] {
			continue
		}
		if c.Extra == nil {
			c.Extra = map[string]*yaml.Node{}
		}
		c.Extra[key] = value.Content[i+1]
	}
	return nil
}

// MarshalYAML writes recognized fields and the preserved extras back out.
func (c Config) MarshalYAML() (any, error) {
	out := map[string]any{"source": c.Source}
	if !reflect.DeepEqual(c.Rules, paths.RuleSet{}) {
		out["rules"] = c.Rules
	}
	for key, node := range c.Extra {
		out[key] = node
	}
	return out, nil
}

// LoadConfig parses a project configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data naming the API
// description file and the path rewrite rules. It uses a streaming YAML
// decoder and validates the decoded shape, so a config without a source file
// is rejected up front.
//
// Example:
//
//	yamlData := `
//	source: api.yaml
//	rules:
//	  skip: [internal]
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("API description: %s\n", cfg.Source)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal concierge config")
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid concierge config")
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("concierge.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}
