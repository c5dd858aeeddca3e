// Package config loads the HCL simulation configuration used by the CLI:
// run defaults plus optional named query blocks.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete simulation configuration.
type Config struct {
	Trials  int           `hcl:"trials,optional"`
	Workers int           `hcl:"workers,optional"`
	Seed    int64         `hcl:"seed,optional"`
	Queries []QueryConfig `hcl:"query,block"`
}

// QueryConfig is one named, stored query.
type QueryConfig struct {
	Name string `hcl:"name,label"`
	PQL  string `hcl:"pql"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{}
}

// Load reads an HCL configuration file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}

	cfg := Default()
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", filename, diags.Error())
	}

	return cfg, nil
}

// Query finds a stored query by name.
func (c *Config) Query(name string) (QueryConfig, bool) {
	for _, q := range c.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return QueryConfig{}, false
}
