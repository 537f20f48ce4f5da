package scene

import (
	"testing"

	"github.com/han-yaeger/plotmill/internal/graphics"
)

type nopScene struct{}

func (nopScene) Name() string                                             { return "nop" }
func (nopScene) RenderFrame(img *graphics.Image, frame, total int) error { return nil }

func TestRegistryRegisterAndCreate(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register("nop", func(params map[string]any) (Scene, error) {
		return nopScene{}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if !registry.IsRegistered("nop") {
		t.Error("Expected nop to be registered")
	}

	scene, err := registry.Create("nop", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if scene.Name() != "nop" {
		t.Errorf("Expected scene name nop, got %s", scene.Name())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	factory := func(params map[string]any) (Scene, error) { return nopScene{}, nil }

	if err := registry.Register("nop", factory); err != nil {
		t.Fatalf("First Register failed: %v", err)
	}
	if err := registry.Register("nop", factory); err == nil {
		t.Error("Expected error registering a duplicate name")
	}
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	registry := NewRegistry()
	err := registry.Register("", func(params map[string]any) (Scene, error) { return nopScene{}, nil })
	if err == nil {
		t.Error("Expected error registering an empty name")
	}
}

func TestRegistryUnknownScene(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Create("missing", nil); err == nil {
		t.Error("Expected error creating an unknown scene")
	}
}

func TestDefaultRegistryHasBuiltins(t *testing.T) {
	for _, name := range []string{"wireframe", "spiral"} {
		if !DefaultRegistry.IsRegistered(name) {
			t.Errorf("Expected built-in scene %s to be registered", name)
		}
	}
}

func countForeground(img *graphics.Image) int {
	n := 0
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			if img.At(x, y) == img.FG {
				n++
			}
		}
	}
	return n
}

func TestWireframeRenderFrame(t *testing.T) {
	s, err := DefaultRegistry.Create("wireframe", map[string]any{"sides": 4})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	img := graphics.New(64, 64, 255)
	if err := s.RenderFrame(img, 0, 10); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if countForeground(img) == 0 {
		t.Error("Expected the wireframe frame to draw something")
	}
}

func TestWireframeFramesDiffer(t *testing.T) {
	s, err := DefaultRegistry.Create("wireframe", map[string]any{"sides": 3})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	a := graphics.New(64, 64, 255)
	b := graphics.New(64, 64, 255)
	if err := s.RenderFrame(a, 0, 10); err != nil {
		t.Fatalf("RenderFrame(0) failed: %v", err)
	}
	if err := s.RenderFrame(b, 3, 10); err != nil {
		t.Fatalf("RenderFrame(3) failed: %v", err)
	}

	same := true
	for y := 0; y < 64 && same; y++ {
		for x := 0; x < 64; x++ {
			if a.At(x, y) != b.At(x, y) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Expected rotated frames to differ")
	}
}

func TestWireframeParamValidation(t *testing.T) {
	if _, err := NewWireframeScene(map[string]any{"sides": 2}); err == nil {
		t.Error("Expected error for fewer than 3 sides")
	}
	if _, err := NewWireframeScene(map[string]any{"radius": -1.0}); err == nil {
		t.Error("Expected error for negative radius")
	}
}

func TestSpiralRenderFrame(t *testing.T) {
	s, err := DefaultRegistry.Create("spiral", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	img := graphics.New(64, 64, 255)
	if err := s.RenderFrame(img, 2, 10); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if countForeground(img) == 0 {
		t.Error("Expected the spiral frame to draw something")
	}
}

func TestSpiralParamValidation(t *testing.T) {
	if _, err := NewSpiralScene(map[string]any{"step": 0.0}); err == nil {
		t.Error("Expected error for zero step")
	}
	if _, err := NewSpiralScene(map[string]any{"segments": 0}); err == nil {
		t.Error("Expected error for zero segments")
	}
}

func TestRenderFrameRejectsBadTotal(t *testing.T) {
	s, err := DefaultRegistry.Create("wireframe", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	img := graphics.New(8, 8, 255)
	if err := s.RenderFrame(img, 0, 0); err == nil {
		t.Error("Expected error for zero total frames")
	}
}
