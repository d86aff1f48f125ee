// Package render draws a static preview image of a finished mesh.
//
// The renderer is a small software rasterizer: orthographic projection,
// z-buffer, flat per-face shading. It exists to eyeball generated geometry
// without a GPU or window.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/braidgen/pkg/mesh"
)

// Camera describes the preview view and output size.
type Camera struct {
	Yaw         float64 // degrees around the braid (Z) axis
	Pitch       float64 // degrees of tilt toward the viewer
	Size        int     // output width and height in pixels
	Supersample int     // render at Size*Supersample, then downsample
	Margin      float64 // fraction of Size left empty on each side
	Color       color.NRGBA
	Background  color.NRGBA
}

// DefaultCamera returns an isometric view of a steel-blue mesh on white.
func DefaultCamera() Camera {
	return Camera{
		Yaw:         45,
		Pitch:       35.264,
		Size:        512,
		Supersample: 2,
		Margin:      0.05,
		Color:       color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff},
		Background:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// MaxRenderSize bounds the internal render target edge (Size * Supersample).
const MaxRenderSize = 8192

// ErrInvalidCamera is returned for cameras whose render target cannot be allocated.
var ErrInvalidCamera = errors.New("invalid camera")

// Validate reports negative sizes and render targets larger than MaxRenderSize.
func (c Camera) Validate() error {
	if c.Size < 0 || c.Supersample < 0 {
		return fmt.Errorf("%w: size %d, supersample %d", ErrInvalidCamera, c.Size, c.Supersample)
	}
	size, ss := c.Size, max(c.Supersample, 1)
	if size > MaxRenderSize || ss > MaxRenderSize/max(size, 1) {
		return fmt.Errorf("%w: %dx%d supersampled exceeds %d pixels per side",
			ErrInvalidCamera, size, ss, MaxRenderSize)
	}
	return nil
}

// Light direction in view space, toward the upper left front.
var lightDir = r3.Unit(r3.Vec{X: -0.4, Y: -0.7, Z: 0.6})

const (
	ambient = 0.35
	diffuse = 0.65
)

// frameBuffer holds the render target as flat slices for cache locality.
type frameBuffer struct {
	size  int
	color []uint8   // RGBA interleaved
	zbuf  []float64 // depth per pixel, larger is closer
}

func newFrameBuffer(size int, bg color.NRGBA) *frameBuffer {
	n := size * size
	fb := &frameBuffer{
		size:  size,
		color: make([]uint8, n*4),
		zbuf:  make([]float64, n),
	}
	for i := range fb.zbuf {
		fb.zbuf[i] = math.Inf(-1)
		fb.color[i*4] = bg.R
		fb.color[i*4+1] = bg.G
		fb.color[i*4+2] = bg.B
		fb.color[i*4+3] = bg.A
	}
	return fb
}

// Rasterize renders m with cam and returns the preview image.
// A zero Size falls back to the default camera size.
func Rasterize(m mesh.Mesh, cam Camera) (*image.NRGBA, error) {
	if cam.Size == 0 {
		cam.Size = DefaultCamera().Size
	}
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	ss := max(cam.Supersample, 1)
	size := cam.Size * ss

	fb := newFrameBuffer(size, cam.Background)
	if !m.IsEmpty() {
		screen := project(m, cam, size)
		for _, f := range m.Faces {
			for i := 1; i+1 < len(f); i++ {
				fb.triangle(screen[f[0]], screen[f[i]], screen[f[i+1]], cam.Color)
			}
		}
	}

	img := &image.NRGBA{
		Pix:    fb.color,
		Stride: size * 4,
		Rect:   image.Rect(0, 0, size, size),
	}
	if ss == 1 {
		return img, nil
	}
	return downsample(img, cam.Size), nil
}

// project rotates the mesh into view space and scales it to fill the frame.
// Screen X grows right, screen Y grows down and Z is depth toward the viewer.
func project(m mesh.Mesh, cam Camera, size int) []r3.Vec {
	center := m.Bounds().Center()
	yaw := r3.NewRotation(cam.Yaw*math.Pi/180, r3.Vec{Z: 1})
	pitch := r3.NewRotation(cam.Pitch*math.Pi/180, r3.Vec{X: 1})

	view := make([]r3.Vec, len(m.Vertices))
	var extent float64
	for i, v := range m.Vertices {
		p := pitch.Rotate(yaw.Rotate(r3.Sub(v, center)))
		// Viewer sits on -Y looking along +Y with Z up.
		view[i] = r3.Vec{X: p.X, Y: -p.Z, Z: -p.Y}
		extent = math.Max(extent, math.Max(math.Abs(view[i].X), math.Abs(view[i].Y)))
	}

	half := float64(size) / 2
	scale := 1.0
	if extent > 0 {
		scale = half * (1 - 2*cam.Margin) / extent
	}
	for i, p := range view {
		view[i] = r3.Vec{X: half + p.X*scale, Y: half + p.Y*scale, Z: p.Z}
	}
	return view
}

// triangle fills one triangle with flat lambert shading. Faces are lit from
// both sides so open tube ends and ribbons read correctly.
func (fb *frameBuffer) triangle(a, b, c r3.Vec, base color.NRGBA) {
	// Screen Y points down, so flip it back for a right-handed normal.
	e1 := r3.Vec{X: b.X - a.X, Y: a.Y - b.Y, Z: b.Z - a.Z}
	e2 := r3.Vec{X: c.X - a.X, Y: a.Y - c.Y, Z: c.Z - a.Z}
	n := r3.Cross(e1, e2)
	nl := r3.Norm(n)
	if nl < 1e-12 {
		return
	}
	n = r3.Scale(1/nl, n)
	shade := ambient + diffuse*math.Abs(r3.Dot(n, lightDir))

	r := clamp255(float64(base.R) * shade)
	g := clamp255(float64(base.G) * shade)
	bl := clamp255(float64(base.B) * shade)

	minX := max(int(math.Floor(math.Min(a.X, math.Min(b.X, c.X)))), 0)
	maxX := min(int(math.Ceil(math.Max(a.X, math.Max(b.X, c.X)))), fb.size-1)
	minY := max(int(math.Floor(math.Min(a.Y, math.Min(b.Y, c.Y)))), 0)
	maxY := min(int(math.Ceil(math.Max(a.Y, math.Max(b.Y, c.Y)))), fb.size-1)
	if minX > maxX || minY > maxY {
		return
	}

	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if math.Abs(det) < 1e-12 {
		return
	}
	inv := 1 / det

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		row := y * fb.size
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := ((b.Y-c.Y)*(px-c.X) + (c.X-b.X)*(py-c.Y)) * inv
			w1 := ((c.Y-a.Y)*(px-c.X) + (a.X-c.X)*(py-c.Y)) * inv
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			idx := row + x
			if z <= fb.zbuf[idx] {
				continue
			}
			fb.zbuf[idx] = z

			o := idx * 4
			fb.color[o] = r
			fb.color[o+1] = g
			fb.color[o+2] = bl
			fb.color[o+3] = base.A
		}
	}
}

// downsample scales img to size×size with a Catmull-Rom filter.
func downsample(img *image.NRGBA, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
