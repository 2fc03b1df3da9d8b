// Package config loads the storage core's construction-time parameters
// (spec.md §6.3), grounded on the viper-backed YAML loader in
// _examples/tuannm99-novasql/internal/config.go.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the construction-time parameters of spec.md §6.3. MaxDegree
// of 0 means "unlimited" (bounded only by the frame-fit formula).
type Config struct {
	PageSize      int `mapstructure:"page_size"`
	PagesPerFrame int `mapstructure:"pages_per_frame"`
	PoolSize      int `mapstructure:"pool_size"`
	LRUK          int `mapstructure:"lru_k"`
	MaxDegree     int `mapstructure:"max_degree"`
}

// Default returns the spec.md §6.3 defaults.
func Default() Config {
	return Config{
		PageSize:      4096,
		PagesPerFrame: 1,
		PoolSize:      2500,
		LRUK:          20,
		MaxDegree:     0,
	}
}

// Load reads a YAML config file at path, falling back to Default() for any
// field left unset.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("page_size", def.PageSize)
	v.SetDefault("pages_per_frame", def.PagesPerFrame)
	v.SetDefault("pool_size", def.PoolSize)
	v.SetDefault("lru_k", def.LRUK)
	v.SetDefault("max_degree", def.MaxDegree)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

// FrameSize is PageSize * PagesPerFrame.
func (c Config) FrameSize() int { return c.PageSize * c.PagesPerFrame }
