// modelinfo is a CLI utility for inspecting Wavefront OBJ models.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/vitrine/pkg/obj"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "groups", "ls":
		cmdGroups(args)
	case "materials", "mtl":
		cmdMaterials(args)
	case "check", "lint":
		cmdCheck(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`modelinfo - Wavefront OBJ model inspector

Usage:
  modelinfo <command> [options]

Commands:
  info <file.obj>       Show model summary and bounding box
  groups <file.obj>     List triangle groups and their materials
  materials <file.obj>  List resolved materials
  check <file.obj>      Load the model and report warnings

Examples:
  modelinfo info gallery.obj
  modelinfo groups gallery.obj -n 20
  modelinfo check gallery.obj`)
}

func load(path string) *obj.Model {
	m, err := obj.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modelinfo info <file.obj>")
		os.Exit(1)
	}

	m := load(args[0])
	min, max := m.Bounds()

	fmt.Printf("Model:     %s\n", args[0])
	fmt.Printf("Groups:    %d\n", len(m.Groups))
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Vertices:  %d\n", m.VertexCount())
	fmt.Printf("Materials: %d\n", len(m.Materials))
	fmt.Println()
	fmt.Printf("Bounds min: %8.2f %8.2f %8.2f\n", min.X, min.Y, min.Z)
	fmt.Printf("Bounds max: %8.2f %8.2f %8.2f\n", max.X, max.Y, max.Z)
	fmt.Printf("Size:       %8.2f %8.2f %8.2f\n", max.X-min.X, max.Y-min.Y, max.Z-min.Z)

	if len(m.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "\n(%d warnings, run 'modelinfo check' for details)\n", len(m.Warnings))
	}
}

func cmdGroups(args []string) {
	fs := flag.NewFlagSet("groups", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N groups (0 = all)")
	bySize := fs.Bool("s", false, "Sort by triangle count, largest first")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modelinfo groups <file.obj>")
		os.Exit(1)
	}

	m := load(fs.Arg(0))

	groups := make([]obj.Group, len(m.Groups))
	copy(groups, m.Groups)
	if *bySize {
		sort.Slice(groups, func(i, j int) bool {
			return len(groups[i].Vertices) > len(groups[j].Vertices)
		})
	}

	for i, g := range groups {
		if *limit > 0 && i >= *limit {
			fmt.Fprintf(os.Stderr, "\n(showing first %d of %d groups)\n", *limit, len(groups))
			return
		}
		name := g.Name
		if name == "" {
			name = "(unnamed)"
		}
		material := g.Material
		if material == "" {
			material = "(none)"
		}
		fmt.Printf("%-30s %-20s %d triangles\n", name, material, len(g.Vertices)/3)
	}
}

func cmdMaterials(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modelinfo materials <file.obj>")
		os.Exit(1)
	}

	m := load(args[0])
	if len(m.Materials) == 0 {
		fmt.Fprintln(os.Stderr, "No materials")
		return
	}

	names := make([]string, 0, len(m.Materials))
	for name := range m.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mat := m.Materials[name]
		fmt.Printf("%-20s diffuse %.2f %.2f %.2f  opacity %.2f",
			name, mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2], mat.Opacity)
		if mat.DiffuseMap != "" {
			fmt.Printf("  map %s", mat.DiffuseMap)
		}
		fmt.Println()
	}
}

func cmdCheck(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modelinfo check <file.obj>")
		os.Exit(1)
	}

	m := load(args[0])

	problems := len(m.Warnings)
	for _, warn := range m.Warnings {
		fmt.Printf("warning: %s\n", warn)
	}

	// Groups that reference a material the libraries never defined render
	// with the fallback material; worth calling out.
	for _, g := range m.Groups {
		if g.Material == "" {
			continue
		}
		if _, ok := m.Materials[g.Material]; !ok {
			fmt.Printf("warning: group %q uses undefined material %q\n", g.Name, g.Material)
			problems++
		}
	}

	if problems == 0 {
		fmt.Printf("%s: OK (%d triangles)\n", args[0], m.TriangleCount())
	}
}
