package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// LookPathFunc resolves a binary name on the host search path. It matches
// exec.LookPath and is injectable for tests.
type LookPathFunc func(file string) (string, error)

// Converter and viewer names, preferred first. Selection mirrors the host
// setups this pipeline runs on: ImageMagick 7 installs `magick`, older
// installs only `convert`; ImageMagick's viewer is `imdisplay` on Windows
// and `display` elsewhere.
const (
	converterPreferred = "magick"
	converterFallback  = "convert"
	viewerPreferred    = "imdisplay"
	viewerFallback     = "display"
)

func resolveTool(lookPath LookPathFunc, preferred, fallback string) string {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(preferred); err == nil {
		return preferred
	}
	return fallback
}

// ResolveConverter picks the image converter: magick when present on the
// path, convert otherwise.
func ResolveConverter(lookPath LookPathFunc) string {
	return resolveTool(lookPath, converterPreferred, converterFallback)
}

// ResolveViewer picks the image viewer: imdisplay when present on the path,
// display otherwise.
func ResolveViewer(lookPath LookPathFunc) string {
	return resolveTool(lookPath, viewerPreferred, viewerFallback)
}

// ToolAvailable reports whether the named binary resolves on the path.
func ToolAvailable(lookPath LookPathFunc, name string) bool {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(name)
	return err == nil
}

// AssembleExternal combines the frame files into outPath by invoking the
// host image converter.
func AssembleExternal(ctx context.Context, framePaths []string, outPath string) error {
	tool := ResolveConverter(nil)
	if !ToolAvailable(nil, tool) {
		return fmt.Errorf("no image converter on path (tried %s, %s)", converterPreferred, converterFallback)
	}

	args := append(append([]string{}, framePaths...), outPath)
	slog.Info("invoking external converter", "tool", tool, "frame_count", len(framePaths), "output", outPath)

	cmd := exec.CommandContext(ctx, tool, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", tool, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// OpenViewer opens the file in the host image viewer and waits for it to
// exit.
func OpenViewer(ctx context.Context, path string) error {
	tool := ResolveViewer(nil)
	if !ToolAvailable(nil, tool) {
		return fmt.Errorf("no image viewer on path (tried %s, %s)", viewerPreferred, viewerFallback)
	}

	slog.Info("opening viewer", "tool", tool, "path", path)
	cmd := exec.CommandContext(ctx, tool, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", tool, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ViewerAvailable reports whether the resolved viewer exists on the path.
func ViewerAvailable() bool {
	return ToolAvailable(nil, ResolveViewer(nil))
}

// ConverterAvailable reports whether the resolved converter exists on the
// path.
func ConverterAvailable() bool {
	return ToolAvailable(nil, ResolveConverter(nil))
}
