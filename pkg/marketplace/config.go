package marketplace

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// SkillMeta holds per-skill marketplace metadata from configuration
type SkillMeta struct {
	Title    string   `mapstructure:"title"`
	Category string   `mapstructure:"category"`
	Tags     []string `mapstructure:"tags"`
}

// BundleDef defines a category bundle from configuration
type BundleDef struct {
	Title       string   `mapstructure:"title"`
	Description string   `mapstructure:"description"`
	Skills      []string `mapstructure:"skills"`
	Tags        []string `mapstructure:"tags"`
}

// Config holds marketplace configuration, loaded from the `marketplace`
// section of .skillstack.yaml
type Config struct {
	Name       string               `mapstructure:"name"`
	Owner      Owner                `mapstructure:"owner"`
	Metadata   MarketplaceMetadata  `mapstructure:"metadata"`
	Author     Author               `mapstructure:"author"`
	License    string               `mapstructure:"license"`
	Version    string               `mapstructure:"version"`
	Categories map[string]SkillMeta `mapstructure:"categories"`
	Bundles    map[string]BundleDef `mapstructure:"bundles"`
}

// DefaultConfig returns a Config with sensible defaults for an authoring repo
// without a .skillstack.yaml
func DefaultConfig() *Config {
	return &Config{
		Name:    "skillstack",
		License: "Apache-2.0",
		Version: "1.0.0",
		Metadata: MarketplaceMetadata{
			Version:    "1.0.0",
			PluginRoot: "./plugins",
		},
		Categories: map[string]SkillMeta{},
		Bundles:    map[string]BundleDef{},
	}
}

// LoadConfig reads marketplace configuration from viper, applying defaults
// for any unset field
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.UnmarshalKey("marketplace", cfg); err != nil {
		return nil, errors.Wrap(err, "invalid marketplace configuration")
	}

	if cfg.License == "" {
		cfg.License = "Apache-2.0"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
	}
	if cfg.Metadata.Version == "" {
		cfg.Metadata.Version = cfg.Version
	}
	if cfg.Metadata.PluginRoot == "" {
		cfg.Metadata.PluginRoot = "./plugins"
	}
	if cfg.Categories == nil {
		cfg.Categories = map[string]SkillMeta{}
	}
	if cfg.Bundles == nil {
		cfg.Bundles = map[string]BundleDef{}
	}

	return cfg, nil
}

// skillMeta returns metadata for a skill, falling back to a general category
// with the skill name as its only tag
func (c *Config) skillMeta(name string) SkillMeta {
	if m, ok := c.Categories[name]; ok {
		if m.Category == "" {
			m.Category = "general"
		}
		if len(m.Tags) == 0 {
			m.Tags = []string{name}
		}
		return m
	}
	return SkillMeta{Category: "general", Tags: []string{name}}
}
