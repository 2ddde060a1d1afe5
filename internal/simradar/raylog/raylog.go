// Package raylog implements the self-describing append-only binary ray
// log spec.md §6 operation 5 calls for: a leading header naming the
// record size and endianness, followed by fixed-size records of
// (snapshot_id, ray_idx, hit_xyz, direction, reflections).
package raylog

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/radarsim/internal/simradar/geom"
)

// magic identifies a ray-log file; the ASCII is arbitrary but fixed so a
// reader can reject a file that is not one of ours before trusting the
// rest of the header.
const magic uint32 = 0x52415932 // "RAY2"

// recordSize is the on-disk size in bytes of one Record, written into the
// header. Reader keeps the value it finds there but always decodes the
// fixed field layout below.
const recordSize = 8 + 8 + 8*3 + 8*3 + 4 + 4 // snapshot_id, ray_idx, hit xyz, dir xyz, reflections, pad

// Record is one logged ray: the snapshot it belongs to, its index within
// that snapshot's emission, where (if anywhere) it terminated, its
// direction at termination, and how many reflections it had undergone.
type Record struct {
	SnapshotID  uint64
	RayIdx      uint64
	Hit         geom.Vec3
	Direction   geom.Vec3
	Reflections int32
}

// Writer appends Records to a ray log, writing the header on first use.
type Writer struct {
	f           *os.File
	bw          *bufio.Writer
	wroteHeader bool
}

// Create opens path for writing, truncating any existing file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("raylog: create %s: %w", path, err)
	}
	return &Writer{f: f, bw: bufio.NewWriter(f)}, nil
}

func (w *Writer) writeHeader() error {
	if w.wroteHeader {
		return nil
	}
	if err := binary.Write(w.bw, binary.LittleEndian, magic); err != nil {
		return err
	}
	if err := binary.Write(w.bw, binary.LittleEndian, uint32(recordSize)); err != nil {
		return err
	}
	w.wroteHeader = true
	return nil
}

// Append writes r to the log, writing the header first if this is the
// log's first record.
func (w *Writer) Append(r Record) error {
	if err := w.writeHeader(); err != nil {
		return fmt.Errorf("raylog: write header: %w", err)
	}
	fields := []any{
		r.SnapshotID,
		r.RayIdx,
		float64(r.Hit.X), float64(r.Hit.Y), float64(r.Hit.Z),
		float64(r.Direction.X), float64(r.Direction.Y), float64(r.Direction.Z),
		r.Reflections,
		int32(0), // pad to recordSize
	}
	for _, f := range fields {
		if err := binary.Write(w.bw, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("raylog: write record: %w", err)
		}
	}
	return nil
}

// Close writes the header if no record was appended (so an empty log is
// still readable), flushes buffered writes and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.writeHeader(); err != nil {
		return fmt.Errorf("raylog: write header: %w", err)
	}
	if err := w.bw.Flush(); err != nil {
		return err
	}
	return w.f.Close()
}

// Reader sequentially reads Records from a ray log previously produced
// by Writer.
type Reader struct {
	f          *os.File
	br         *bufio.Reader
	recordSize uint32
}

// Open opens path for reading and validates its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raylog: open %s: %w", path, err)
	}
	br := bufio.NewReader(f)

	var gotMagic, gotSize uint32
	if err := binary.Read(br, binary.LittleEndian, &gotMagic); err != nil {
		f.Close()
		return nil, fmt.Errorf("raylog: read magic: %w", err)
	}
	if gotMagic != magic {
		f.Close()
		return nil, fmt.Errorf("raylog: %s is not a ray log (bad magic %x)", path, gotMagic)
	}
	if err := binary.Read(br, binary.LittleEndian, &gotSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("raylog: read record size: %w", err)
	}
	return &Reader{f: f, br: br, recordSize: gotSize}, nil
}

// Next reads the next Record, returning io.EOF once the log is exhausted.
func (r *Reader) Next() (Record, error) {
	var rec Record
	var hitX, hitY, hitZ, dirX, dirY, dirZ float64
	var pad int32

	fields := []any{
		&rec.SnapshotID,
		&rec.RayIdx,
		&hitX, &hitY, &hitZ,
		&dirX, &dirY, &dirZ,
		&rec.Reflections,
		&pad,
	}
	for i, f := range fields {
		if err := binary.Read(r.br, binary.LittleEndian, f); err != nil {
			if err == io.EOF && i == 0 {
				return Record{}, io.EOF
			}
			return Record{}, fmt.Errorf("raylog: read record field %d: %w", i, err)
		}
	}
	rec.Hit = geom.Vec3{X: geom.Real(hitX), Y: geom.Real(hitY), Z: geom.Real(hitZ)}
	rec.Direction = geom.Vec3{X: geom.Real(dirX), Y: geom.Real(dirY), Z: geom.Real(dirZ)}
	return rec, nil
}

// ReadAll reads every remaining record in the log.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error { return r.f.Close() }
