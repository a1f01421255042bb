// Package config loads the settings of the rregex command line tool.
//
// Settings come, lowest precedence first, from built-in defaults, the file
// rregex.yaml (current directory, then $HOME), a .env file and RREGEX_
// environment variables. Nested keys use _ in variable names, so
// logging.level is RREGEX_LOGGING_LEVEL.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/coregx/rregex"
)

// Sentinel validation errors.
var (
	ErrInvalidFormat    = errors.New("invalid output format")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrInvalidCacheSize = errors.New("cache size must be positive")
	ErrInvalidWorkers   = errors.New("batch workers must be positive")
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatProto = "proto"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatProto}

const (
	configName = "rregex"
	configType = "yaml"
	envPrefix  = "RREGEX"

	defaultCacheSize    = 256
	defaultBatchWorkers = 4
)

// Config holds all configuration of the tool.
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Syntax  SyntaxConfig  `mapstructure:"syntax"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig mirrors the tunable fields of rregex.Config.
type EngineConfig struct {
	EnableDFA            bool   `mapstructure:"enable_dfa"`
	EnablePrefilter      bool   `mapstructure:"enable_prefilter"`
	MaxDFAStates         uint32 `mapstructure:"max_dfa_states"`
	DeterminizationLimit int    `mapstructure:"determinization_limit"`
}

// SyntaxConfig controls how syntax trees are built.
type SyntaxConfig struct {
	// Unicode false prints ASCII-only classes in the byte model.
	Unicode bool `mapstructure:"unicode"`
}

// CacheConfig sizes the compiled pattern cache.
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

// BatchConfig controls the batch command.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// Load loads configuration. If path is non-empty it names the config file
// to read; otherwise rregex.yaml is searched for and may be missing.
func Load(path string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	engine := rregex.DefaultConfig()

	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.color", true)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetDefault("engine.enable_dfa", engine.EnableDFA)
	v.SetDefault("engine.enable_prefilter", engine.EnablePrefilter)
	v.SetDefault("engine.max_dfa_states", engine.MaxDFAStates)
	v.SetDefault("engine.determinization_limit", engine.DeterminizationLimit)

	v.SetDefault("syntax.unicode", true)

	v.SetDefault("cache.size", defaultCacheSize)
	v.SetDefault("batch.workers", defaultBatchWorkers)
}

// Validate checks the configuration for values the tool cannot run with.
// Engine limits are checked when a pattern is compiled.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}
	if _, ok := parseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, c.Cache.Size)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Batch.Workers)
	}
	return nil
}

// EngineConfig returns the engine configuration for compiling patterns.
func (c *Config) EngineConfig() rregex.Config {
	ec := rregex.DefaultConfig()
	ec.EnableDFA = c.Engine.EnableDFA
	ec.EnablePrefilter = c.Engine.EnablePrefilter
	ec.MaxDFAStates = c.Engine.MaxDFAStates
	ec.DeterminizationLimit = c.Engine.DeterminizationLimit
	return ec
}
