// Package export writes meshes to triangle-soup file formats (OBJ, PLY,
// STL).
package export

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/brickmesh/pkg/mesh"
)

// Export errors.
var (
	ErrUnknownFormat = errors.New("unknown mesh format")
	ErrNoSuffix      = errors.New("output path has no format suffix")
)

// Format identifies a supported output file format.
type Format string

const (
	FormatOBJ Format = "obj"
	FormatPLY Format = "ply"
	FormatSTL Format = "stl"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatOBJ:
		return FormatOBJ, nil
	case FormatPLY:
		return FormatPLY, nil
	case FormatSTL:
		return FormatSTL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath infers the format from a path's suffix.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q", ErrNoSuffix, path)
	}
	return ParseFormat(ext)
}

// WriteMesh serializes a mesh to path. An empty format is inferred from
// the path's suffix. Parent directories are created as needed.
func WriteMesh(m *mesh.Mesh, path string, format Format) error {
	if format == "" {
		inferred, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = inferred
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing mesh to %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	switch format {
	case FormatOBJ:
		err = writeOBJ(w, m)
	case FormatPLY:
		err = writePLY(w, m)
	case FormatSTL:
		err = writeSTL(w, m)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("writing mesh to %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing mesh to %s: %w", path, err)
	}
	return f.Close()
}

// DerivePaths numbers a base path for per-brick output: assembly.obj with
// n=2 yields assembly_000.obj and assembly_001.obj.
func DerivePaths(path string, n int) []string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s_%03d%s", base, i, ext)
	}
	return out
}

// DeriveStepPath names one step's output file: assembly.obj for step 2
// yields assembly_step_2.obj.
func DeriveStepPath(path string, step int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_step_%d%s", base, step, ext)
}
