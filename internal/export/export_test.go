package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/Faultbox/terraforge/pkg/heightfield"
	"github.com/Faultbox/terraforge/pkg/trimesh"
)

func testField() *heightfield.Field {
	f := heightfield.NewField(4, 6, 0.1, 0.005)
	for i := range f.Raw {
		f.Raw[i] = int16(i*7 - 20)
	}
	return f
}

func TestFieldSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.hf.gz")
	want := testField()

	if err := WriteFieldSnapshot(path, want); err != nil {
		t.Fatalf("WriteFieldSnapshot() error = %v", err)
	}
	got, err := ReadFieldSnapshot(path)
	if err != nil {
		t.Fatalf("ReadFieldSnapshot() error = %v", err)
	}

	if got.Rows != want.Rows || got.Cols != want.Cols {
		t.Errorf("shape = %dx%d, want %dx%d", got.Rows, got.Cols, want.Rows, want.Cols)
	}
	if got.HorizontalScale != want.HorizontalScale || got.VerticalScale != want.VerticalScale {
		t.Errorf("scales = (%g, %g), want (%g, %g)",
			got.HorizontalScale, got.VerticalScale, want.HorizontalScale, want.VerticalScale)
	}
	for i := range want.Raw {
		if got.Raw[i] != want.Raw[i] {
			t.Fatalf("Raw[%d] = %d, want %d", i, got.Raw[i], want.Raw[i])
		}
	}
}

func TestReadFieldSnapshotRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hf.gz")

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(file)
	if _, err := gz.Write([]byte("NOPE city")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFieldSnapshot(path); !errors.Is(err, ErrSnapshotMagic) {
		t.Errorf("ReadFieldSnapshot() error = %v, want ErrSnapshotMagic", err)
	}
}

func TestReadFieldSnapshotMissingFile(t *testing.T) {
	if _, err := ReadFieldSnapshot(filepath.Join(t.TempDir(), "absent.hf.gz")); err == nil {
		t.Error("ReadFieldSnapshot() expected error for missing file")
	}
}

func testMesh() *trimesh.Mesh {
	return &trimesh.Mesh{
		Vertices:  [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0.5}},
		Triangles: [][3]uint32{{0, 1, 2}},
	}
}

func TestWriteMeshOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.obj")
	if err := WriteMeshOBJ(path, testMesh()); err != nil {
		t.Fatalf("WriteMeshOBJ() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "v 0 0 0") {
		t.Errorf("missing vertex line in:\n%s", text)
	}
	if !strings.Contains(text, "f 1 2 3") {
		t.Errorf("missing face line in:\n%s", text)
	}
}

func TestWriteMeshOBJGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.obj.gz")
	if err := WriteMeshOBJ(path, testMesh()); err != nil {
		t.Fatalf("WriteMeshOBJ() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("output is not gzip: %v", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(gz); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "f 1 2 3") {
		t.Errorf("missing face line in decompressed output:\n%s", buf.String())
	}
}

func TestWriteOrigins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "origins.yaml")
	origins := [][][3]float64{
		{{4, 4, 0.5}, {4, 12, 0}},
		{{12, 4, 1.25}, {12, 12, 0}},
	}

	if err := WriteOrigins(path, origins); err != nil {
		t.Fatalf("WriteOrigins() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"row: 0", "col: 1", "z: 1.25"} {
		if !strings.Contains(text, want) {
			t.Errorf("origins yaml missing %q:\n%s", want, text)
		}
	}
}
