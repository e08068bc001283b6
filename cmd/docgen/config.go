package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".docgen.yaml"

// ProjectConfig holds the contents of .docgen.yaml. Every field mirrors a
// command-line flag; flags given on the command line win.
type ProjectConfig struct {
	Extensions  []string `yaml:"extensions"`
	Exclude     string   `yaml:"exclude"`
	Ignore      []string `yaml:"ignore"`
	Include     []string `yaml:"include"`
	Resolver    string   `yaml:"resolver"`
	Pretty      bool     `yaml:"pretty"`
	Out         string   `yaml:"out"`
	Watch       bool     `yaml:"watch"`
	NodeModules bool     `yaml:"node_modules"`
	Workers     int      `yaml:"workers"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
}

// loadProjectConfig reads the config file at path, or .docgen.yaml in the
// current directory when path is empty. A missing default file is not an
// error and returns nil.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// apply copies config values into opts for every flag not set on the
// command line.
func (c *ProjectConfig) apply(opts *rootOptions, cmd *cobra.Command) {
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f == nil || !f.Changed
	}

	if len(c.Extensions) > 0 && unset("extension") {
		opts.extensions = c.Extensions
	}
	if c.Exclude != "" && unset("exclude") {
		opts.exclude = c.Exclude
	}
	if len(c.Ignore) > 0 && unset("ignore") {
		opts.ignore = c.Ignore
	}
	if len(c.Include) > 0 && unset("include") {
		opts.include = c.Include
	}
	if c.Resolver != "" && unset("resolver") {
		opts.resolver = c.Resolver
	}
	if c.Pretty && unset("pretty") {
		opts.pretty = true
	}
	if c.Out != "" && unset("out") {
		opts.out = c.Out
	}
	if c.Watch && unset("watch") {
		opts.watch = true
	}
	if c.NodeModules && unset("node-modules") {
		opts.nodeModules = true
	}
	if c.Workers > 0 && unset("workers") {
		opts.workers = c.Workers
	}
	if c.LogLevel != "" && unset("log-level") {
		opts.logLevel = c.LogLevel
	}
	if c.LogFormat != "" && unset("log-format") {
		opts.logFormat = c.LogFormat
	}
}
