package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config is the content of .jsonschema.yaml.
//
//	root: openapi.yaml
//	formats:
//	  ticket: value.startsWith("TCK-")
//	documents:
//	  - uri: common.json
//	    path: schemas/common.yaml
type Config struct {
	// Root is the path of the document against which fragment references
	// resolve first, e.g. an OpenAPI description.
	Root string `mapstructure:"root"`

	// Formats maps format names to CEL expressions over the string
	// variable "value". Names are case-insensitive.
	Formats map[string]string `mapstructure:"formats"`

	// Documents are registered under their URI before compiling.
	Documents []DocumentConfig `mapstructure:"documents"`
}

// DocumentConfig names a file to register as a reference target.
type DocumentConfig struct {
	URI  string `mapstructure:"uri"`
	Path string `mapstructure:"path"`
}

// LoadConfig reads the config file at path, or .jsonschema.yaml in the
// working directory when path is empty. A missing default file yields an
// empty config. JSONSCHEMA_ROOT overrides the root document.
func LoadConfig(path string) (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".jsonschema")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("JSONSCHEMA")
	v.AutomaticEnv()
	if err := v.BindEnv("root"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for i, d := range cfg.Documents {
		if d.URI == "" || d.Path == "" {
			return nil, fmt.Errorf("documents[%d]: uri and path are required", i)
		}
	}
	return cfg, nil
}
