package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/brickmesh/internal/config"
	"github.com/Faultbox/brickmesh/internal/logger"
	"github.com/Faultbox/brickmesh/pkg/brick"
	"github.com/Faultbox/brickmesh/pkg/export"
	"github.com/Faultbox/brickmesh/pkg/geometry"
	"github.com/Faultbox/brickmesh/pkg/pipeline"
)

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	jsonPath := fs.String("json", "", "Path to assembly JSON document")
	brickType := fs.String("brick-type", "", "Single brick type to export")
	typeList := fs.String("types", "", "Comma-separated brick types for an ad-hoc assembly")
	positionList := fs.String("positions", "", `Semicolon-separated positions, each "x,y,z"`)
	rotationList := fs.String("rotations", "", `Semicolon-separated quaternions, each "w,x,y,z" (default identity)`)
	output := fs.String("output", "", "Output file path (required)")
	formatName := fs.String("format", "", "Output format: obj, ply or stl (default: from output suffix)")
	separate := fs.Bool("separate", false, "Write one file per brick")
	onlyFinal := fs.Bool("only-final", false, "Export only the final step")
	withColors := fs.Bool("with-colors", false, "Keep colors from the input (ad-hoc bricks use the palette)")
	usePalette := fs.Bool("palette", false, "Color bricks round-robin from the configured palette")
	tolerant := fs.Bool("tolerant", false, "Skip malformed composite entries instead of failing")
	workers := fs.Int("workers", -1, "Parallel per-brick meshing (0 = serial, -1 = from config)")
	cfgPath := fs.String("config", "", "Path to config file")
	logLevel := fs.String("log-level", "", "Log level override")
	fs.Parse(args)

	if *output == "" {
		die("export requires -output")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		die("%v", err)
	}
	initLogging(cfg, *logLevel)
	defer logger.Sync()

	format, path := resolveFormat(*formatName, *output, cfg.Export.Format)

	asm, adhoc := buildAssembly(*jsonPath, *brickType, *typeList, *positionList, *rotationList)

	opts := pipeline.Options{
		OnlyFinal: *onlyFinal || cfg.Export.OnlyFinal,
		Merge:     !(*separate || cfg.Export.Separate),
		Tolerant:  *tolerant || cfg.Export.Tolerant,
		Colors:    pipeline.ColorsNone,
		Palette:   cfg.Palette.BrickColors(),
		Workers:   cfg.Export.Workers,
	}
	if *workers >= 0 {
		opts.Workers = *workers
	}
	switch {
	case *usePalette:
		opts.Colors = pipeline.ColorsPalette
	case *withColors && adhoc:
		opts.Colors = pipeline.ColorsPalette
	case *withColors:
		opts.Colors = pipeline.ColorsFromInput
	}

	results, err := pipeline.Build(asm, geometry.NewLibrary(), opts)
	if err != nil {
		die("%v", err)
	}

	multiStep := len(results) > 1
	written := 0
	for _, res := range results {
		stepPath := path
		if multiStep {
			stepPath = export.DeriveStepPath(path, res.Index)
		}
		if opts.Merge {
			if err := export.WriteMesh(res.Merged, stepPath, format); err != nil {
				die("%v", err)
			}
			written++
			logger.Info("exported mesh",
				zap.String("path", stepPath),
				zap.Int("step", res.Index),
				zap.Int("vertices", len(res.Merged.Vertices)),
				zap.Int("faces", len(res.Merged.Faces)))
			continue
		}
		brickPaths := export.DerivePaths(stepPath, len(res.Meshes))
		for i, m := range res.Meshes {
			brickPath := brickPaths[i]
			if err := export.WriteMesh(m, brickPath, format); err != nil {
				die("%v", err)
			}
			written++
			logger.Info("exported brick mesh",
				zap.String("path", brickPath),
				zap.Int("step", res.Index),
				zap.Int("vertices", len(m.Vertices)),
				zap.Int("faces", len(m.Faces)))
		}
	}
	fmt.Printf("Exported %d file(s)\n", written)
}

func initLogging(cfg *config.Config, levelOverride string) {
	opts := logger.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.File = cfg.Logging.LogFile
	if levelOverride != "" {
		opts.Level = levelOverride
	}
	if err := logger.Init(opts); err != nil {
		die("initializing logger: %v", err)
	}
}

// resolveFormat picks the output format from the flag, the path suffix or
// the configured default, appending the matching suffix when the path has
// none.
func resolveFormat(flagName, path, configured string) (export.Format, string) {
	if flagName != "" {
		f, err := export.ParseFormat(flagName)
		if err != nil {
			die("%v", err)
		}
		if _, pathErr := export.FormatFromPath(path); pathErr != nil {
			path = path + "." + string(f)
		}
		return f, path
	}
	if f, err := export.FormatFromPath(path); err == nil {
		return f, path
	}
	f, err := export.ParseFormat(configured)
	if err != nil {
		die("%v", err)
	}
	return f, path + "." + string(f)
}

// buildAssembly materializes the requested assembly. The second return is
// true for ad-hoc input (no assembly document involved).
func buildAssembly(jsonPath, brickType, typeList, positionList, rotationList string) (*brick.Assembly, bool) {
	switch {
	case jsonPath != "":
		asm, err := brick.Load(jsonPath)
		if err != nil {
			die("%v", err)
		}
		return asm, false

	case brickType != "":
		p, err := brick.NewPlacement(brickType, [3]float64{}, [4]float64{1, 0, 0, 0}, nil)
		if err != nil {
			die("%v", err)
		}
		return brick.SingleStep(p), true

	case typeList != "":
		placements, err := parseAdHoc(typeList, positionList, rotationList)
		if err != nil {
			die("%v", err)
		}
		return brick.SingleStep(placements...), true
	}

	die("export requires one of -json, -brick-type or -types")
	return nil, false
}

// parseAdHoc builds placements from the flag triplet: comma-separated
// types, semicolon-separated "x,y,z" positions and optional
// semicolon-separated "w,x,y,z" rotations.
func parseAdHoc(typeList, positionList, rotationList string) ([]brick.Placement, error) {
	types := strings.Split(typeList, ",")
	if positionList == "" {
		return nil, fmt.Errorf("-positions is required with -types")
	}
	positions := strings.Split(positionList, ";")
	if len(positions) != len(types) {
		return nil, fmt.Errorf("got %d types but %d positions", len(types), len(positions))
	}
	var rotations []string
	if rotationList != "" {
		rotations = strings.Split(rotationList, ";")
		if len(rotations) != len(types) {
			return nil, fmt.Errorf("got %d types but %d rotations", len(types), len(rotations))
		}
	}

	placements := make([]brick.Placement, 0, len(types))
	for i, typeID := range types {
		pos, err := parseFloats(positions[i], 3)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		rot := []float64{1, 0, 0, 0}
		if rotations != nil {
			rot, err = parseFloats(rotations[i], 4)
			if err != nil {
				return nil, fmt.Errorf("rotation %d: %w", i, err)
			}
		}
		p, err := brick.NewPlacement(strings.TrimSpace(typeID),
			[3]float64{pos[0], pos[1], pos[2]},
			[4]float64{rot[0], rot[1], rot[2], rot[3]}, nil)
		if err != nil {
			return nil, fmt.Errorf("brick %d: %w", i, err)
		}
		placements = append(placements, p)
	}
	return placements, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", part, err)
		}
		out[i] = f
	}
	return out, nil
}
