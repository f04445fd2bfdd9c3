// texgen writes the procedural texture images used by the texturing exercise.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/solidlab/internal/engine/texture"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "all":
		cmdAll(args)
	case "render":
		cmdRender(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`texgen - procedural texture generator

Usage:
  texgen <command> [options]

Commands:
  all [-out dir]                           Write every texture image (default dir: media)
  render [-size n] <pattern> <file.bmp>    Render one pattern to a BMP file

Patterns:
  checkerboard, spiral, light-wood, dark-wood

Examples:
  texgen all -out media
  texgen render -size 256 spiral spiral.bmp`)
}

func cmdAll(args []string) {
	fs := flag.NewFlagSet("all", flag.ExitOnError)
	out := fs.String("out", "media", "output directory")
	_ = fs.Parse(args)

	written, err := texture.WriteArtifacts(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Println(path)
	}
	fmt.Printf("\n%d files written to %s\n", len(written), *out)
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	size := fs.Int("size", 512, "texture width and height")
	_ = fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: texgen render [-size n] <pattern> <file.bmp>")
		os.Exit(1)
	}

	pattern, err := texture.ParsePattern(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	buf, err := texture.Synthesize(pattern, *size, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path := fs.Arg(1)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := texture.SaveBMP(path, buf.RowImage()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %dx%d written to %s\n", pattern, *size, *size, path)
}
