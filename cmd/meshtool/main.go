// meshtool is a CLI utility for inspecting and converting braid meshes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/braidgen/internal/render"
	"github.com/Faultbox/braidgen/pkg/formats"
	"github.com/Faultbox/braidgen/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "convert", "cv":
		err = cmdConvert(args)
	case "check":
		err = cmdCheck(args)
	case "preview", "pv":
		err = cmdPreview(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func usage(line string) error {
	fmt.Fprintln(os.Stderr, "Usage: meshtool "+line)
	return errUsage
}

func printUsage() {
	fmt.Println(`meshtool - braid mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info <mesh>                     Show vertex/face counts and bounds
  convert <in> <out>              Convert between OBJ and STL
  check <mesh>                    Validate face indices and degenerate faces
  preview [-size N] <mesh> <img>  Render a shaded preview (.png or .webp)

Examples:
  meshtool info braid.obj
  meshtool convert braid.obj braid.stl
  meshtool preview -size 1024 braid.stl braid.webp`)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return usage("info <mesh>")
	}

	m, err := formats.Load(args[0])
	if err != nil {
		return err
	}

	b := m.Bounds()
	size := b.Size()
	center := b.Center()

	fmt.Printf("Mesh:      %s (%s)\n", args[0], formats.Detect(args[0]))
	fmt.Printf("Vertices:  %d\n", m.VertexCount())
	fmt.Printf("Faces:     %d\n", m.FaceCount())
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	if !m.IsEmpty() {
		fmt.Printf("Bounds:    (%.4f, %.4f, %.4f) - (%.4f, %.4f, %.4f)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		fmt.Printf("Size:      %.4f x %.4f x %.4f\n", size.X, size.Y, size.Z)
		fmt.Printf("Center:    (%.4f, %.4f, %.4f)\n", center.X, center.Y, center.Z)
	}
	return nil
}

func cmdConvert(args []string) error {
	if len(args) < 2 {
		return usage("convert <in> <out>")
	}

	m, err := formats.Load(args[0])
	if err != nil {
		return err
	}
	if err := formats.Save(args[1], m); err != nil {
		return err
	}

	fmt.Printf("Converted %s -> %s (%d vertices, %d faces)\n",
		args[0], args[1], m.VertexCount(), m.FaceCount())
	return nil
}

func cmdCheck(args []string) error {
	if len(args) < 1 {
		return usage("check <mesh>")
	}

	m, err := formats.Load(args[0])
	if err != nil {
		return err
	}
	if err := checkMesh(m); err != nil {
		return err
	}

	fmt.Printf("%s: OK (%d faces)\n", args[0], m.FaceCount())
	return nil
}

// checkMesh validates indices and rejects faces whose normal vanishes.
func checkMesh(m mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	degenerate := 0
	for _, f := range m.Faces {
		if m.FaceNormal(f) == (r3.Vec{}) {
			degenerate++
		}
	}
	if degenerate > 0 {
		return fmt.Errorf("%w: %d zero-area faces", mesh.ErrDegenerateFace, degenerate)
	}
	return nil
}

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	size := fs.Int("size", 512, "Image size in pixels")
	ss := fs.Int("ss", 2, "Supersample factor")
	yaw := fs.Float64("yaw", 45, "Camera yaw in degrees")
	pitch := fs.Float64("pitch", 35.264, "Camera pitch in degrees")
	col := fs.String("color", "", "Surface color (#rrggbb)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return usage("preview [-size N] <mesh> <img>")
	}

	cam := render.DefaultCamera()
	cam.Size = *size
	cam.Supersample = *ss
	cam.Yaw = *yaw
	cam.Pitch = *pitch
	if *col != "" {
		c, err := render.ParseHexColor(*col)
		if err != nil {
			return err
		}
		cam.Color = c
	}
	if err := cam.Validate(); err != nil {
		return err
	}

	m, err := formats.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := (render.FileSink{Path: fs.Arg(1), Camera: cam}).Consume(m); err != nil {
		return err
	}
	fmt.Printf("Preview written to %s\n", fs.Arg(1))
	return nil
}
