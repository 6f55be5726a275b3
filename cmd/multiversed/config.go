package main

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/imazen/multiversed"
)

// Config mirrors the optional multiversed.hcl build-flag file:
//
//	disable = false
//	presets = ["v3", "v4-modern", "arm64", "simd128"]
//	arch    = "x86_64"
//
// The file establishes a build-wide flag set before any resolution begins;
// per-invocation flags override it.
type Config struct {
	Disable bool     `hcl:"disable,optional"`
	Presets []string `hcl:"presets,optional"`
	Arch    string   `hcl:"arch,optional"`
}

// LoadConfig reads and decodes a build-flag file.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if err := hclsimple.DecodeFile(path, nil, &c); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &c, nil
}

// BuildFlags converts the config into the resolver's flag set. Listing any
// preset replaces the default-active set; omitting the list keeps it.
func (c *Config) BuildFlags() (multiversed.BuildFlags, error) {
	flags := multiversed.DefaultBuildFlags()
	if len(c.Presets) > 0 {
		flags = multiversed.BuildFlags{}
		for _, name := range c.Presets {
			if err := flags.Set(name); err != nil {
				return multiversed.BuildFlags{}, err
			}
		}
	}
	if c.Disable {
		flags.Disable = true
	}
	return flags, nil
}
