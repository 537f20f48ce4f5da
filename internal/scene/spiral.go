package scene

import (
	"fmt"
	"image"

	"github.com/han-yaeger/plotmill/internal/graphics"
)

// SpiralScene draws a square-spiral with a turtle. The turn angle drifts
// with the frame index, so the spiral appears to twist over the animation.
type SpiralScene struct {
	name         string
	step         float64
	turn         float64
	drift        float64
	segments     int
	backdropPath string
	backdrop     image.Image
}

// NewSpiralScene creates a spiral scene from configuration parameters
func NewSpiralScene(params map[string]any) (Scene, error) {
	step := GetFloatParam(params, "step", 3.5)
	if step <= 0 {
		return nil, fmt.Errorf("spiral step must be positive, got %v", step)
	}

	segments := GetIntParam(params, "segments", 160)
	if segments < 1 {
		return nil, fmt.Errorf("spiral needs at least 1 segment, got %d", segments)
	}

	return &SpiralScene{
		name:         "spiral",
		step:         step,
		turn:         GetFloatParam(params, "turn", 89),
		drift:        GetFloatParam(params, "drift", 0.5),
		segments:     segments,
		backdropPath: GetStringParam(params, "backdrop", ""),
	}, nil
}

// Name returns the scene name
func (s *SpiralScene) Name() string {
	return s.name
}

// RenderFrame draws one frame of the twisting spiral.
func (s *SpiralScene) RenderFrame(img *graphics.Image, frame, total int) error {
	if total < 1 {
		return fmt.Errorf("total frame count must be positive, got %d", total)
	}

	img.Clear()
	if s.backdropPath != "" {
		if s.backdrop == nil {
			backdrop, err := LoadBackdrop(s.backdropPath, img.Width(), img.Height())
			if err != nil {
				return fmt.Errorf("failed to load backdrop: %w", err)
			}
			s.backdrop = backdrop
		}
		img.Fill(s.backdrop)
	}

	turtle := img.NewTurtle(float64(img.Width())/2, float64(img.Height())/2)
	turtle.PenDown = true

	turn := s.turn + s.drift*float64(frame)
	length := s.step
	for i := 0; i < s.segments; i++ {
		turtle.Forward(length)
		turtle.Turn(turn)
		length += s.step
	}
	return nil
}

func init() {
	// Register the scene in the default registry
	if err := DefaultRegistry.Register("spiral", NewSpiralScene); err != nil {
		panic(fmt.Sprintf("failed to register spiral scene: %v", err))
	}
}
