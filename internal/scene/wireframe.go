package scene

import (
	"fmt"
	"image"
	"math"

	"github.com/han-yaeger/plotmill/internal/graphics"
)

// WireframeScene draws a regular polygon as an edge matrix and rotates it
// about the canvas center over the course of the animation, one full turn
// across all frames.
type WireframeScene struct {
	name         string
	sides        int
	radius       float64
	backdropPath string
	backdrop     image.Image
}

// NewWireframeScene creates a wireframe scene from configuration parameters
func NewWireframeScene(params map[string]any) (Scene, error) {
	sides := GetIntParam(params, "sides", 5)
	if sides < 3 {
		return nil, fmt.Errorf("wireframe needs at least 3 sides, got %d", sides)
	}

	radius := GetFloatParam(params, "radius", 0)
	if radius < 0 {
		return nil, fmt.Errorf("wireframe radius must not be negative, got %v", radius)
	}

	return &WireframeScene{
		name:         "wireframe",
		sides:        sides,
		radius:       radius,
		backdropPath: GetStringParam(params, "backdrop", ""),
	}, nil
}

// Name returns the scene name
func (s *WireframeScene) Name() string {
	return s.name
}

// RenderFrame draws one frame of the rotating polygon.
func (s *WireframeScene) RenderFrame(img *graphics.Image, frame, total int) error {
	if total < 1 {
		return fmt.Errorf("total frame count must be positive, got %d", total)
	}

	img.Clear()
	if err := s.paintBackdrop(img); err != nil {
		return err
	}

	radius := s.radius
	if radius == 0 {
		radius = 0.4 * float64(min(img.Width(), img.Height()))
	}

	// polygon around the origin, one edge per consecutive vertex pair
	edges := graphics.NewMatrix(0, 4, nil)
	for i := 0; i < s.sides; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(s.sides)
		a1 := 2 * math.Pi * float64(i+1) / float64(s.sides)
		edges.AppendPoint(radius*math.Cos(a0), radius*math.Sin(a0), 0)
		edges.AppendPoint(radius*math.Cos(a1), radius*math.Sin(a1), 0)
	}

	angle := 360 * float64(frame) / float64(total)
	cx := float64(img.Width()) / 2
	cy := float64(img.Height()) / 2
	transform := graphics.RotationZ(angle).Mul(graphics.Translation(cx, cy, 0))

	return img.DrawEdges(edges.Mul(transform))
}

func (s *WireframeScene) paintBackdrop(img *graphics.Image) error {
	if s.backdropPath == "" {
		return nil
	}
	if s.backdrop == nil {
		backdrop, err := LoadBackdrop(s.backdropPath, img.Width(), img.Height())
		if err != nil {
			return fmt.Errorf("failed to load backdrop: %w", err)
		}
		s.backdrop = backdrop
	}
	img.Fill(s.backdrop)
	return nil
}

func init() {
	// Register the scene in the default registry
	if err := DefaultRegistry.Register("wireframe", NewWireframeScene); err != nil {
		panic(fmt.Sprintf("failed to register wireframe scene: %v", err))
	}
}
