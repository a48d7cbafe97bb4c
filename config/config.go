package config

import (
	"drill/meta"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds everything the command line tool needs to run a drill.
// Values come from defaults, then the YAML file, then DRILL_* environment
// variables.
type Config struct {
	Source      string        `yaml:"source" envconfig:"SOURCE" validate:"required_without=TreePath"`
	TreePath    string        `yaml:"tree_path" envconfig:"TREE_PATH"`
	Prefix      []string      `yaml:"prefix" envconfig:"PREFIX" validate:"dive,required"`
	ReplyDelay  time.Duration `yaml:"reply_delay" envconfig:"REPLY_DELAY" validate:"gte=0s"`
	Seed        uint64        `yaml:"seed" envconfig:"SEED"`
	LogLevel    string        `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	RecordsDir  string        `yaml:"records_dir" envconfig:"RECORDS_DIR"`
	MetricsAddr string        `yaml:"metrics_addr" envconfig:"METRICS_ADDR" validate:"omitempty,hostname_port"`
}

const envPrefix = "DRILL"

var validate = validator.New()

func Default() Config {
	return Config{
		Source:     meta.DEFAULT_SOURCE,
		Prefix:     meta.ScotchGambitPrefix(),
		ReplyDelay: meta.DEFAULT_REPLY_DELAY,
		LogLevel:   meta.DEFAULT_LOG_LEVEL,
	}
}

// Load reads the configuration. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			first := invalid[0]
			return fmt.Errorf("invalid config: %s fails %q", first.Namespace(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
