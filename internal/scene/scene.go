package scene

import (
	"fmt"

	"github.com/han-yaeger/plotmill/internal/graphics"
)

// Scene draws the frames of an animation. RenderFrame is called once per
// frame with the zero-based frame index and the total frame count; it owns
// the whole canvas and is expected to clear it first.
type Scene interface {
	Name() string
	RenderFrame(img *graphics.Image, frame, total int) error
}

// Factory is a function type that creates a scene from configuration parameters
type Factory func(params map[string]any) (Scene, error)

// Registry manages the registration and creation of scenes
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a new scene registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a scene factory to the registry
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("scene name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("scene factory cannot be nil")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("scene %s is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates a scene by name with the given parameters
func (r *Registry) Create(name string, params map[string]any) (Scene, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}

	scene, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene %s: %w", name, err)
	}

	return scene, nil
}

// IsRegistered checks if a scene with the given name is registered
func (r *Registry) IsRegistered(name string) bool {
	_, exists := r.factories[name]
	return exists
}

// RegisteredNames returns a list of all registered scene names
func (r *Registry) RegisteredNames() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is a global registry instance with the built-in scenes
// registered through their init functions.
var DefaultRegistry = NewRegistry()
