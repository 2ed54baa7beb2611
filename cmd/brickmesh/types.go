package main

import (
	"flag"
	"fmt"

	"github.com/Faultbox/brickmesh/pkg/geometry"
)

func cmdTypes(args []string) {
	fs := flag.NewFlagSet("types", flag.ExitOnError)
	fs.Parse(args)

	fmt.Println("Known brick types:")
	for _, id := range geometry.Types() {
		dims, _ := geometry.Lookup(id)
		fmt.Printf("  %-6s %-14s %d x %d studs, %d plate(s), %d vertices / %d faces\n",
			id, dims.Name, dims.StudsX, dims.StudsY, dims.Plates,
			dims.VertexCount(), dims.FaceCount())
	}
}
