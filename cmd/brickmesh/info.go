package main

import (
	"flag"
	"fmt"

	"github.com/Faultbox/brickmesh/pkg/brick"
)

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	jsonPath := fs.String("json", "", "Path to assembly JSON document (required)")
	fs.Parse(args)

	if *jsonPath == "" {
		die("info requires -json")
	}

	asm, err := brick.Load(*jsonPath)
	if err != nil {
		die("%v", err)
	}

	fmt.Printf("Assembly: %s\n", *jsonPath)
	fmt.Printf("Steps: %d\n", len(asm.Steps))

	totalBricks := 0
	for _, step := range asm.Steps {
		leaves := step.LeafCount()
		totalBricks += leaves
		invalid := 0
		for _, e := range step.Entries {
			if e.Kind == brick.EntryInvalid {
				invalid++
			}
		}
		line := fmt.Sprintf("  step %-4d entries: %-4d bricks: %d", step.Index, len(step.Entries), leaves)
		if invalid > 0 {
			line += fmt.Sprintf("  (malformed entries: %d)", invalid)
		}
		fmt.Println(line)
	}
	fmt.Printf("Total bricks: %d\n", totalBricks)

	if final, ok := asm.FinalStep(); ok {
		fmt.Printf("Final step: %d (%d bricks)\n", final.Index, final.LeafCount())
	}
}
