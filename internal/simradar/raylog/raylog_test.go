package raylog

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

func writeGarbage(path string) error {
	return os.WriteFile(path, []byte("not a ray log"), 0o644)
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.raylog")

	w, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{
		{SnapshotID: 1, RayIdx: 0, Hit: geom.Vec3{X: 1, Y: 2, Z: 3}, Direction: geom.Vec3{X: 0, Y: 0, Z: -1}, Reflections: 0},
		{SnapshotID: 1, RayIdx: 1, Hit: geom.Vec3{X: -4, Y: 5, Z: 0.5}, Direction: geom.Vec3{X: 1, Y: 0, Z: 0}, Reflections: 2},
	}
	for _, r := range want {
		if err := w.Append(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestNextReturnsEOFOnEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.raylog")
	w, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF for an empty log, got %v", err)
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notaraylog.bin")
	if err := writeGarbage(path); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("expected an error opening a file with a bad magic header")
	}
}
