// brickmesh is a CLI utility for converting brick assemblies into
// triangulated meshes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export", "x":
		cmdExport(args)
	case "info":
		cmdInfo(args)
	case "types", "ls":
		cmdTypes(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`brickmesh - brick assembly mesh exporter

Usage:
  brickmesh <command> [options]

Commands:
  export    Convert an assembly (or ad-hoc bricks) to OBJ/PLY/STL
  info      Show assembly statistics
  types     List known brick types

Examples:
  brickmesh export -brick-type 3001 -output brick_3001.obj
  brickmesh export -json metadata.json -output assembly.obj -only-final
  brickmesh export -types 3001,3001,3002 -positions "0,0,0;20,0,0;10,0,8" -output my.ply
  brickmesh export -json metadata.json -output out.stl -separate -with-colors
  brickmesh info -json metadata.json
  brickmesh types`)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
