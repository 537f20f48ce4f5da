package assemble

import (
	"fmt"
	"image/gif"
	"io"
	"log/slog"
	"os"

	"github.com/han-yaeger/plotmill/internal/graphics"
)

// WriteGIF encodes the frames as one animated GIF with the given per-frame
// delay in centiseconds, looping forever.
func WriteGIF(w io.Writer, frames []*graphics.Image, delayCs int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	if delayCs < 0 {
		return fmt.Errorf("frame delay must not be negative, got %d", delayCs)
	}

	anim := &gif.GIF{LoopCount: 0}
	for i, frame := range frames {
		paletted := toPaletted(frame)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delayCs)
		slog.Debug("quantized frame",
			"index", i,
			"palette_size", len(paletted.Palette))
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("failed to encode GIF: %w", err)
	}
	return nil
}

// AssembleNative decodes the PPM frame files and writes them to outPath as
// an animated GIF without any external tooling.
func AssembleNative(framePaths []string, outPath string, delayCs int) error {
	frames := make([]*graphics.Image, 0, len(framePaths))
	for _, path := range framePaths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open frame %s: %w", path, err)
		}
		frame, err := graphics.DecodePPM(f)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("failed to decode frame %s: %w", path, err)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close frame %s: %w", path, closeErr)
		}
		frames = append(frames, frame)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := WriteGIF(out, frames, delayCs); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
