package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/han-yaeger/plotmill/internal/assemble"
	"github.com/han-yaeger/plotmill/internal/graphics"
	"github.com/han-yaeger/plotmill/internal/pipeline"
	"github.com/han-yaeger/plotmill/internal/preview"
	"github.com/han-yaeger/plotmill/internal/scene"
	"github.com/han-yaeger/plotmill/internal/store"
)

// CoreService owns the pipeline state: the configured scene, the artifact
// store, and the task implementations the runner executes.
type CoreService struct {
	config *ServiceConfig
	store  store.Store
	scene  scene.Scene
}

func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	artifactStore, err := store.NewStore(config.Database.Type, config.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact store: %w", err)
	}
	slog.Info("artifact store initialized", "type", config.Database.Type)

	sceneInstance, err := scene.DefaultRegistry.Create(config.Scene.Name, config.Scene.Params)
	if err != nil {
		_ = artifactStore.Close()
		return nil, err
	}

	return &CoreService{
		config: config,
		store:  artifactStore,
		scene:  sceneInstance,
	}, nil
}

func (service *CoreService) Close() error {
	return service.store.Close()
}

// FramePath returns the file name of frame i: img0.ppm, img1.ppm, and so on
// under the workdir.
func (service *CoreService) FramePath(i int) string {
	return filepath.Join(service.config.Workdir, fmt.Sprintf("img%d.ppm", i))
}

func (service *CoreService) pngFramePath(i int) string {
	return filepath.Join(service.config.Workdir, fmt.Sprintf("img%d.png", i))
}

// OutputPath returns the location of the assembled GIF.
func (service *CoreService) OutputPath() string {
	return filepath.Join(service.config.Workdir, service.config.Output)
}

func (service *CoreService) framePaths() []string {
	paths := make([]string, service.config.Frames)
	for i := range paths {
		paths[i] = service.FramePath(i)
	}
	return paths
}

// TaskRegistry builds the standard task graph over this service.
func (service *CoreService) TaskRegistry() (*pipeline.Registry, error) {
	registry := pipeline.NewRegistry()

	register := func(task pipeline.Task, deps ...string) error {
		return registry.Register(task, deps...)
	}
	steps := []error{
		register(pipeline.NewTaskFunc("run", service.RenderFrames)),
		register(pipeline.NewTaskFunc("gen", service.AssembleGIF), "run"),
		register(pipeline.NewTaskFunc("display", service.Display), "gen"),
		register(pipeline.NewTaskFunc("check", service.Check)),
		register(pipeline.NewTaskFunc("all", func(ctx context.Context) error { return nil }), "check", "display"),
		register(pipeline.NewTaskFunc("clean", service.Clean)),
	}
	for _, err := range steps {
		if err != nil {
			return nil, fmt.Errorf("failed to build task graph: %w", err)
		}
	}
	return registry, nil
}

// RenderFrames renders every frame of the configured scene and writes the
// numbered PPM files, plus PNG copies when configured.
func (service *CoreService) RenderFrames(ctx context.Context) error {
	cfg := service.config

	runID, err := store.NewID()
	if err != nil {
		return fmt.Errorf("failed to generate run ID: %w", err)
	}

	img := graphics.New(cfg.Canvas.Width, cfg.Canvas.Height, uint16(cfg.Canvas.Depth))

	slog.Info("rendering frames",
		"scene", service.scene.Name(),
		"frame_count", cfg.Frames,
		"canvas", fmt.Sprintf("%dx%d", cfg.Canvas.Width, cfg.Canvas.Height))

	for i := 0; i < cfg.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("render cancelled at frame %d: %w", i, err)
		}

		if err := service.scene.RenderFrame(img, i, cfg.Frames); err != nil {
			return fmt.Errorf("scene %s failed on frame %d: %w", service.scene.Name(), i, err)
		}

		var buf bytes.Buffer
		if err := graphics.EncodePPM(&buf, img, cfg.Canvas.ASCII); err != nil {
			return fmt.Errorf("failed to encode frame %d: %w", i, err)
		}
		path := service.FramePath(i)
		if err := service.writeArtifact(runID, store.KindFrame, path, buf.Bytes()); err != nil {
			return err
		}
		slog.Debug("rendered frame", "index", i, "path", path, "size_bytes", buf.Len())

		if cfg.PNGFrames {
			var pngBuf bytes.Buffer
			if err := png.Encode(&pngBuf, img.RGBA()); err != nil {
				return fmt.Errorf("failed to encode PNG copy of frame %d: %w", i, err)
			}
			if err := service.writeArtifact(runID, store.KindPNG, service.pngFramePath(i), pngBuf.Bytes()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (service *CoreService) writeArtifact(runID, kind, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	if _, err := service.store.RecordArtifact(runID, kind, path, int64(len(data)), fmt.Sprintf("%x", sum)); err != nil {
		return fmt.Errorf("failed to record artifact %s: %w", path, err)
	}
	return nil
}

// AssembleGIF combines the rendered frames into the output GIF, natively or
// through the host converter depending on the configured mode.
func (service *CoreService) AssembleGIF(ctx context.Context) error {
	cfg := service.config
	outPath := service.OutputPath()
	framePaths := service.framePaths()

	mode := cfg.Assembler.Mode
	if mode == "auto" {
		if assemble.ConverterAvailable() {
			mode = "external"
		} else {
			mode = "native"
		}
		slog.Debug("assembler mode resolved", "mode", mode)
	}

	var err error
	switch mode {
	case "external":
		err = assemble.AssembleExternal(ctx, framePaths, outPath)
	case "native":
		err = assemble.AssembleNative(framePaths, outPath, cfg.Assembler.DelayCs)
	default:
		err = fmt.Errorf("unsupported assembler mode: %s", mode)
	}
	if err != nil {
		return fmt.Errorf("failed to assemble %s: %w", outPath, err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return fmt.Errorf("failed to read assembled output %s: %w", outPath, err)
	}
	runID, err := store.NewID()
	if err != nil {
		return fmt.Errorf("failed to generate run ID: %w", err)
	}
	sum := sha256.Sum256(data)
	if _, err := service.store.RecordArtifact(runID, store.KindGIF, outPath, int64(len(data)), fmt.Sprintf("%x", sum)); err != nil {
		return fmt.Errorf("failed to record artifact %s: %w", outPath, err)
	}

	slog.Info("assembled animation", "output", outPath, "mode", mode, "size_bytes", len(data))
	return nil
}

// Display opens the assembled GIF in the host viewer. Without a viewer on
// the path it falls back to serving the result over HTTP when a port is
// configured.
func (service *CoreService) Display(ctx context.Context) error {
	outPath := service.OutputPath()

	if assemble.ViewerAvailable() {
		return assemble.OpenViewer(ctx, outPath)
	}

	if service.config.Port > 0 {
		slog.Info("no image viewer on path, serving result instead", "port", service.config.Port)
		return service.Serve(ctx)
	}

	return fmt.Errorf("no image viewer on path and no preview port configured")
}

// Serve runs the preview server until the context is cancelled.
func (service *CoreService) Serve(ctx context.Context) error {
	registry, err := service.TaskRegistry()
	if err != nil {
		return err
	}
	previewService := preview.NewService(
		service.OutputPath(),
		service.FramePath,
		service.config.Frames,
		pipeline.NewRunner(registry),
	)
	return previewService.Serve(ctx, service.config.Port)
}

// Check validates the configuration and smoke-renders one small frame per
// registered scene, mirroring a serial test run.
func (service *CoreService) Check(ctx context.Context) error {
	if err := service.config.Validate(); err != nil {
		return err
	}

	for _, name := range scene.DefaultRegistry.RegisteredNames() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("check cancelled: %w", err)
		}

		params := map[string]any{}
		if name == service.config.Scene.Name {
			params = service.config.Scene.Params
		}
		probe, err := scene.DefaultRegistry.Create(name, params)
		if err != nil {
			return fmt.Errorf("check failed constructing scene %s: %w", name, err)
		}

		img := graphics.New(32, 32, 255)
		if err := probe.RenderFrame(img, 0, 2); err != nil {
			return fmt.Errorf("check failed rendering scene %s: %w", name, err)
		}
		slog.Info("scene check passed", "scene", name)
	}
	return nil
}

// Clean removes every recorded artifact plus stray frame files, PNG files,
// the log file, and the output GIF from the workdir. Missing files are not
// errors.
func (service *CoreService) Clean(ctx context.Context) error {
	cfg := service.config

	artifacts, err := service.store.AllArtifacts()
	if err != nil {
		return fmt.Errorf("failed to list artifacts: %w", err)
	}

	removed := 0
	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("clean cancelled: %w", err)
		}
		if err := removeIfPresent(artifact.Path); err != nil {
			return err
		}
		removed++
	}
	if err := service.store.Prune(); err != nil {
		return fmt.Errorf("failed to prune artifact store: %w", err)
	}

	// stray files from runs the store never saw
	patterns := []string{
		filepath.Join(cfg.Workdir, "img*.ppm"),
		filepath.Join(cfg.Workdir, "*.png"),
	}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("bad clean pattern %s: %w", pattern, err)
		}
		for _, match := range matches {
			if err := removeIfPresent(match); err != nil {
				return err
			}
			removed++
		}
	}
	if cfg.LogFile != "" {
		if err := removeIfPresent(filepath.Join(cfg.Workdir, cfg.LogFile)); err != nil {
			return err
		}
	}
	if err := removeIfPresent(service.OutputPath()); err != nil {
		return err
	}

	slog.Info("cleaned artifacts", "file_count", removed)
	return nil
}

func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
