// Package pipeline converts brick assemblies into triangulated meshes,
// step by step.
package pipeline

import (
	"slices"

	"github.com/Faultbox/brickmesh/pkg/brick"
	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// ColorMode selects how per-brick colors are assigned.
type ColorMode int

const (
	// ColorsFromInput keeps the colors carried by the assembly data.
	ColorsFromInput ColorMode = iota
	// ColorsNone strips colors; every brick uses the default material.
	ColorsNone
	// ColorsPalette assigns Options.Palette colors round-robin over the
	// flattened record order.
	ColorsPalette
)

// Options control one conversion request.
type Options struct {
	// OnlyFinal processes just the step with the greatest index.
	OnlyFinal bool
	// Merge accumulates each step into a single mesh instead of one mesh
	// per brick.
	Merge bool
	// Tolerant skips malformed composite entries instead of failing.
	Tolerant bool

	Colors  ColorMode
	Palette []brick.Color

	// Workers caps parallel per-brick meshing; zero means serial.
	Workers int
}

// StepResult is the materialized geometry for one assembly step.
type StepResult struct {
	Index  int
	Merged *mesh.Mesh   // set when Options.Merge
	Meshes []*mesh.Mesh // set otherwise, one per brick in record order
}

// Run walks the selected steps in ascending index order, building each
// step's geometry and handing it to fn. A conversion either runs to
// completion or fails atomically for the offending step; the walk itself
// is deterministic and side-effect-free, so re-running on the same
// assembly yields the same results.
func Run(asm *brick.Assembly, src mesh.Source, opts Options, fn func(StepResult) error) error {
	var steps []brick.Step
	if opts.OnlyFinal {
		if final, ok := asm.FinalStep(); ok {
			steps = []brick.Step{final}
		}
	} else {
		steps = slices.Clone(asm.Steps)
		slices.SortFunc(steps, func(a, b brick.Step) int { return a.Index - b.Index })
	}

	assembler := &mesh.Assembler{Source: src, Workers: opts.Workers}

	for _, step := range steps {
		records, err := brick.Flatten(step, opts.Tolerant)
		if err != nil {
			return err
		}
		applyColorMode(records, opts)

		result := StepResult{Index: step.Index}
		if opts.Merge {
			result.Merged, err = assembler.AssembleMerged(records)
		} else {
			result.Meshes, err = assembler.Assemble(records)
		}
		if err != nil {
			return err
		}
		if err := fn(result); err != nil {
			return err
		}
	}
	return nil
}

// Build runs the pipeline and collects every step's result.
func Build(asm *brick.Assembly, src mesh.Source, opts Options) ([]StepResult, error) {
	var out []StepResult
	err := Run(asm, src, opts, func(r StepResult) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyColorMode rewrites the effective colors on a freshly flattened
// record list. ColorsFromInput leaves the resolved colors alone.
func applyColorMode(records []brick.Placement, opts Options) {
	switch opts.Colors {
	case ColorsNone:
		for i := range records {
			records[i].Color = nil
		}
	case ColorsPalette:
		if len(opts.Palette) == 0 {
			return
		}
		for i := range records {
			c := opts.Palette[i%len(opts.Palette)]
			records[i].Color = &c
		}
	}
}
