package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	pluginapi "github.com/tjjh89017/fxsandbox/pluginapi"
)

const Name = "config"

var Paths []string = []string{
	"/etc/fxsandbox",
	"$HOME/.fxsandbox",
	".",
}

var (
	ErrBindEnv         = errors.New("failed to bind env")
	ErrReadConfig      = errors.New("failed to read config")
	ErrUnmarshalConfig = errors.New("failed to unmarshal config")
	ErrInvalidConfig   = errors.New("invalid config")
)

var envs = map[string][]string{
	"log.level":              {"FXSANDBOX_LOG_LEVEL"},
	"preview.container":      {"FXSANDBOX_CONTAINER"},
	"preview.settle_delay":   {"FXSANDBOX_SETTLE_DELAY"},
	"preview.frame_rate":     {"FXSANDBOX_FRAME_RATE"},
	"preview.cycle_interval": {"FXSANDBOX_CYCLE_INTERVAL"},
	"metrics.listen":         {"FXSANDBOX_METRICS_LISTEN"},
}

var defaults = map[string]any{
	"log.level":              "info",
	"preview.container":      "sandbox",
	"preview.settle_delay":   "0s",
	"preview.frame_rate":     60,
	"preview.cycle_interval": "5s",
	"preview.compositions": [][]string{
		{"particle-drift"},
		{"magnetic-cursor", "glow-outline"},
		{"gradient-layers", "tilt-hover", "text-shimmer"},
		{"twinkle-stars", "scroll-parallax", "typewriter"},
		{},
	},
}

var levels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

type Preview struct {
	Container     string        `mapstructure:"container"`
	SettleDelay   time.Duration `mapstructure:"settle_delay"`
	FrameRate     int           `mapstructure:"frame_rate"`
	CycleInterval time.Duration `mapstructure:"cycle_interval"`
	Compositions  [][]string    `mapstructure:"compositions"`
}

// FrameInterval is the wall clock time between two animation frames.
func (p Preview) FrameInterval() time.Duration {
	return time.Second / time.Duration(p.FrameRate)
}

type Config struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Preview Preview `mapstructure:"preview"`
	Metrics struct {
		Listen string `mapstructure:"listen"`
	} `mapstructure:"metrics"`
	Plugins map[string]pluginapi.PluginDefinition `mapstructure:"plugins"`
}

func Load() (*Config, error) {
	viper.SetConfigName(Name)
	for _, path := range Paths {
		viper.AddConfigPath(path)
	}
	viper.AutomaticEnv()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	for envName, keys := range envs {
		binding := []string{envName}
		binding = append(binding, keys...)

		if err := viper.BindEnv(binding...); err != nil {
			return nil, errors.Join(ErrBindEnv, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Join(ErrReadConfig, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Join(ErrUnmarshalConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, ok := levels[c.Log.Level]; !ok && c.Log.Level != "" {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.Preview.Container == "" {
		return fmt.Errorf("preview.container must not be empty")
	}
	if c.Preview.SettleDelay < 0 {
		return fmt.Errorf("preview.settle_delay must not be negative, got %s", c.Preview.SettleDelay)
	}
	if c.Preview.FrameRate < 1 || c.Preview.FrameRate > 240 {
		return fmt.Errorf("preview.frame_rate must be between 1 and 240, got %d", c.Preview.FrameRate)
	}
	if c.Preview.CycleInterval <= 0 {
		return fmt.Errorf("preview.cycle_interval must be positive, got %s", c.Preview.CycleInterval)
	}

	for id, def := range c.Plugins {
		if def.Type == "" {
			return fmt.Errorf("plugin %s has no type", id)
		}
	}

	return nil
}
