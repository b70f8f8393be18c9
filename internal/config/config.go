// Package config loads the kektorpath YAML configuration.
//
// Loading starts from Default, overlays the file (after expanding
// environment variables such as ${MAP_PATH}) and validates the result.
// Unknown keys are rejected.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sanonone/kektorpath/internal/logging"
	"github.com/sanonone/kektorpath/pkg/core/pather"
)

// Config is the root of the configuration file.
type Config struct {
	Map    MapConfig      `yaml:"map"`
	Solver SolverConfig   `yaml:"solver"`
	Server ServerConfig   `yaml:"server"`
	Log    logging.Config `yaml:"log"`
}

type MapConfig struct {
	Path      string `yaml:"path"` // empty: built-in dungeon
	DoorsOpen bool   `yaml:"doors_open"`
}

type SolverConfig struct {
	ExpectedNodes  int    `yaml:"expected_nodes"`
	BlockSize      int    `yaml:"block_size"`
	MaxNodes       int    `yaml:"max_nodes"`       // 0 = unlimited
	AdjacencyCache int    `yaml:"adjacency_cache"` // entries, 0 disables
	Frontier       string `yaml:"frontier"`        // "list", "btree"
}

type ServerConfig struct {
	HTTPAddr       string `yaml:"http_addr"`
	MCPEnabled     bool   `yaml:"mcp_enabled"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// Default returns a configuration that serves the built-in map on :9191.
func Default() Config {
	def := pather.DefaultOptions()
	return Config{
		Solver: SolverConfig{
			ExpectedNodes:  def.ExpectedNodes,
			BlockSize:      def.BlockSize,
			MaxNodes:       def.MaxNodes,
			AdjacencyCache: def.CacheCapacity,
			Frontier:       string(def.Frontier),
		},
		Server: ServerConfig{
			HTTPAddr:       ":9191",
			MCPEnabled:     true,
			MetricsEnabled: true,
		},
		Log: logging.Config{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Load reads the file at path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read configuration file '%s': %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config '%s': %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("YAML syntax error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	if err := c.Solver.PatherOptions().Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if c.Server.HTTPAddr == "" {
		return errors.New("server: http_addr must not be empty")
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	return nil
}

// PatherOptions converts the solver section. Logger and Observer are left
// for the caller to fill.
func (s SolverConfig) PatherOptions() pather.Options {
	opts := pather.DefaultOptions()
	opts.ExpectedNodes = s.ExpectedNodes
	opts.BlockSize = s.BlockSize
	opts.MaxNodes = s.MaxNodes
	opts.CacheCapacity = s.AdjacencyCache
	opts.Frontier = pather.FrontierKind(s.Frontier)
	return opts
}
