package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/jigsaw/internal/server"
	jerrors "github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
)

// Config is the merged configuration: flags over JIGSAW_* environment
// variables over the config file over defaults.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout"`
	Server ServerConfig `mapstructure:"server"`
}

// LayoutConfig holds layout options.
type LayoutConfig struct {
	Margin             float64 `mapstructure:"margin" toml:"margin"`
	IdealHeight        float64 `mapstructure:"ideal_height" toml:"ideal_height"`
	Objective          string  `mapstructure:"objective" toml:"objective"`
	Strategy           string  `mapstructure:"strategy" toml:"strategy"`
	Aggregation        string  `mapstructure:"aggregation" toml:"aggregation"`
	MaxExhaustiveItems int     `mapstructure:"max_exhaustive_items" toml:"max_exhaustive_items"`
	Concurrency        int     `mapstructure:"concurrency" toml:"concurrency,omitempty"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	MaxItems       int           `mapstructure:"max_items"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Options converts the layout section to pipeline options.
func (l LayoutConfig) Options() pipeline.Options {
	return pipeline.Options{
		Margin:             pipeline.Float(l.Margin),
		IdealHeight:        l.IdealHeight,
		Objective:          l.Objective,
		Strategy:           l.Strategy,
		Aggregation:        l.Aggregation,
		MaxExhaustiveItems: l.MaxExhaustiveItems,
		Concurrency:        l.Concurrency,
	}
}

// ServerConfig converts the server section, with layout defaults.
func (c Config) ServerConfig() server.Config {
	return server.Config{
		Addr:           c.Server.Addr,
		MaxItems:       c.Server.MaxItems,
		MaxBodyBytes:   c.Server.MaxBodyBytes,
		RequestTimeout: c.Server.RequestTimeout,
		Defaults:       c.Layout.Options(),
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("JIGSAW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("layout.margin", pipeline.DefaultMargin)
	v.SetDefault("layout.ideal_height", pipeline.DefaultIdealHeight)
	v.SetDefault("layout.objective", pipeline.DefaultObjective)
	v.SetDefault("layout.strategy", pipeline.DefaultStrategy)
	v.SetDefault("layout.aggregation", pipeline.DefaultAggregation)
	v.SetDefault("layout.max_exhaustive_items", pipeline.DefaultMaxExhaustiveItems)
	v.SetDefault("layout.concurrency", 0)

	v.SetDefault("server.addr", server.DefaultAddr)
	v.SetDefault("server.max_items", server.DefaultMaxItems)
	v.SetDefault("server.max_body_bytes", server.DefaultMaxBodyBytes)
	v.SetDefault("server.request_timeout", server.DefaultRequestTimeout)
}

// loadConfig reads cfgFile, or jigsaw.toml from the working directory or
// the user config directory. A missing default file is not an error.
func loadConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		if err := jerrors.ValidatePath(cfgFile); err != nil {
			return err
		}
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return jerrors.Wrap(jerrors.ErrCodeFileNotFound, err, "config file %s", cfgFile)
		}
		return jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "read config")
	}
	return nil
}

// configDir returns the config directory using XDG standard (~/.config/jigsaw/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// bindFlags binds command flags to config keys. Flags left at their
// default do not override the environment or the config file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// decodeConfig unmarshals the merged configuration.
func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, jerrors.Wrap(jerrors.ErrCodeInvalidFormat, err, "decode config")
	}
	return cfg, nil
}

// =============================================================================
// Layout flags shared by layout, verify and tune
// =============================================================================

var layoutFlagKeys = map[string]string{
	"margin":               "layout.margin",
	"ideal-height":         "layout.ideal_height",
	"objective":            "layout.objective",
	"strategy":             "layout.strategy",
	"aggregation":          "layout.aggregation",
	"max-exhaustive-items": "layout.max_exhaustive_items",
	"concurrency":          "layout.concurrency",
}

func addLayoutFlags(flags *pflag.FlagSet) {
	flags.Float64P("margin", "m", pipeline.DefaultMargin, "gap between photos, as a fraction of container width")
	flags.Float64("ideal-height", pipeline.DefaultIdealHeight, "target row height, as a fraction of container width")
	flags.String("objective", pipeline.DefaultObjective, "row cost: squared-error, penalize-small")
	flags.String("strategy", pipeline.DefaultStrategy, "search: dynamic, exhaustive")
	flags.String("aggregation", pipeline.DefaultAggregation, "row cost aggregation: mean, sum")
	flags.Int("max-exhaustive-items", pipeline.DefaultMaxExhaustiveItems, "largest gallery the exhaustive search accepts")
	flags.Int("concurrency", 0, "galleries laid out in parallel (default: GOMAXPROCS)")
}
