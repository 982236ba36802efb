// Package export persists generated terrains: gzip-compressed
// heightfield snapshots, Wavefront OBJ meshes, and spawn origin tables.
package export

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/terraforge/pkg/heightfield"
	"github.com/Faultbox/terraforge/pkg/trimesh"
)

// Snapshot format errors.
var (
	ErrSnapshotMagic   = errors.New("invalid snapshot magic: expected 'TFHF'")
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
	ErrSnapshotShape   = errors.New("invalid snapshot shape")
)

const (
	snapshotMagic   = "TFHF"
	snapshotVersion = uint16(1)

	// maxSnapshotDim guards reads against absurd allocations.
	maxSnapshotDim = 1 << 20
)

// WriteFieldSnapshot writes a heightfield as a gzip-compressed binary
// snapshot: magic, version, shape, scales, then raw int16 samples,
// everything little-endian.
func WriteFieldSnapshot(path string, f *heightfield.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if err := writeSnapshot(gz, f); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	return file.Close()
}

func writeSnapshot(w io.Writer, f *heightfield.Field) error {
	if _, err := io.WriteString(w, snapshotMagic); err != nil {
		return err
	}
	for _, v := range []any{
		snapshotVersion,
		uint32(f.Rows),
		uint32(f.Cols),
		f.HorizontalScale,
		f.VerticalScale,
		f.Raw,
	} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadFieldSnapshot loads a heightfield snapshot written by
// WriteFieldSnapshot.
func ReadFieldSnapshot(path string) (*heightfield.Field, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	defer gz.Close()

	f, err := readSnapshot(gz)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return f, nil
}

func readSnapshot(r io.Reader) (*heightfield.Field, error) {
	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, err
	}
	if string(magic) != snapshotMagic {
		return nil, ErrSnapshotMagic
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, version)
	}

	var rows, cols uint32
	var hScale, vScale float64
	for _, v := range []any{&rows, &cols, &hScale, &vScale} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	if rows == 0 || cols == 0 || rows > maxSnapshotDim || cols > maxSnapshotDim {
		return nil, fmt.Errorf("%w: %dx%d", ErrSnapshotShape, rows, cols)
	}

	f := heightfield.NewField(int(rows), int(cols), hScale, vScale)
	if err := binary.Read(r, binary.LittleEndian, f.Raw); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteMeshOBJ writes a mesh as Wavefront OBJ, gzip-compressed when the
// path ends in ".gz".
func WriteMeshOBJ(path string, m *trimesh.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating mesh file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(file)
		if err := trimesh.WriteOBJ(gz, m); err != nil {
			return fmt.Errorf("writing mesh: %w", err)
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("flushing mesh: %w", err)
		}
	} else if err := trimesh.WriteOBJ(file, m); err != nil {
		return fmt.Errorf("writing mesh: %w", err)
	}
	return file.Close()
}

// originEntry is the YAML shape of one spawn origin.
type originEntry struct {
	Row int     `yaml:"row"`
	Col int     `yaml:"col"`
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
}

// WriteOrigins writes the per-cell spawn origins as a YAML list.
func WriteOrigins(path string, origins [][][3]float64) error {
	var entries []originEntry
	for row := range origins {
		for col := range origins[row] {
			o := origins[row][col]
			entries = append(entries, originEntry{Row: row, Col: col, X: o[0], Y: o[1], Z: o[2]})
		}
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding origins: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing origins: %w", err)
	}
	return nil
}
