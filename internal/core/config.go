package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/han-yaeger/plotmill/internal/scene"
)

// CanvasConfig describes the frame canvas.
type CanvasConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Depth  int  `yaml:"depth"`
	ASCII  bool `yaml:"ascii"`
}

// SceneConfig selects a scene; all remaining keys are passed to its factory.
type SceneConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:",inline"`
}

// AssemblerConfig controls how the frames become a GIF.
type AssemblerConfig struct {
	// Mode is native, external, or auto (external when a converter is on
	// the path, native otherwise).
	Mode    string `yaml:"mode"`
	DelayCs int    `yaml:"delayCs"`
}

type Database struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

type ServiceConfig struct {
	Port      int             `yaml:"port"`
	Workdir   string          `yaml:"workdir"`
	Canvas    CanvasConfig    `yaml:"canvas"`
	Frames    int             `yaml:"frames"`
	Output    string          `yaml:"output"`
	LogFile   string          `yaml:"logFile"`
	PNGFrames bool            `yaml:"pngFrames"`
	Scene     SceneConfig     `yaml:"scene"`
	Assembler AssemblerConfig `yaml:"assembler"`
	Database  Database        `yaml:"database"`
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML over the defaults
	config := DefaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// DefaultConfig returns the configuration used when the file leaves fields
// unset.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		Workdir: ".",
		Canvas: CanvasConfig{
			Width:  500,
			Height: 500,
			Depth:  255,
		},
		Frames:  10,
		Output:  "img.gif",
		LogFile: "plotmill.log",
		Scene: SceneConfig{
			Name: "wireframe",
		},
		Assembler: AssemblerConfig{
			Mode:    "auto",
			DelayCs: 10,
		},
		Database: Database{
			Type:             "sqlite",
			ConnectionString: "plotmill.db",
		},
	}
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *ServiceConfig) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Depth < 1 || c.Canvas.Depth > 65535 {
		return fmt.Errorf("canvas depth must be between 1 and 65535, got %d", c.Canvas.Depth)
	}
	if c.Frames < 1 {
		return fmt.Errorf("frame count must be at least 1, got %d", c.Frames)
	}
	if c.Output == "" {
		return fmt.Errorf("output file name cannot be empty")
	}
	if !scene.DefaultRegistry.IsRegistered(c.Scene.Name) {
		return fmt.Errorf("unknown scene: %s (registered: %v)", c.Scene.Name, scene.DefaultRegistry.RegisteredNames())
	}
	switch c.Assembler.Mode {
	case "auto", "native", "external":
	default:
		return fmt.Errorf("assembler mode must be auto, native, or external, got %s", c.Assembler.Mode)
	}
	if c.Assembler.DelayCs < 0 {
		return fmt.Errorf("frame delay must not be negative, got %d", c.Assembler.DelayCs)
	}
	return nil
}
