package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"github.com/Faultbox/braidgen/internal/logger"
	"github.com/Faultbox/braidgen/pkg/mesh"
)

// ErrUnknownImageFormat is returned for unsupported preview extensions.
var ErrUnknownImageFormat = errors.New("unknown image format")

// FormatFromPath returns "png" or "webp" based on the file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownImageFormat, ext)
	}
}

// Encode writes img to w as PNG or lossless WebP.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownImageFormat, format)
	}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FileSink renders each consumed mesh to an image file.
type FileSink struct {
	Path   string
	Camera Camera
}

// Consume rasterizes m and writes the image to s.Path.
func (s FileSink) Consume(m mesh.Mesh) error {
	format, err := FormatFromPath(s.Path)
	if err != nil {
		return err
	}

	img, err := Rasterize(m, s.Camera)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	logger.Named("render").Info("preview written",
		zap.String("path", s.Path),
		zap.Int("size", img.Bounds().Dx()))
	return f.Close()
}
