package grpcsvc

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// RayRecord is the wire message for one raylog.Record, hand-encoded
// against raylog.proto's field numbers via protowire rather than through
// generated message code (see codec.go).
type RayRecord struct {
	SnapshotID  uint64
	RayIdx      uint64
	HitX        float64
	HitY        float64
	HitZ        float64
	DirX        float64
	DirY        float64
	DirZ        float64
	Reflections int32
}

// StreamRequest names the on-disk log a client wants replayed.
type StreamRequest struct {
	LogPath string
}

const (
	fieldSnapshotID  = 1
	fieldRayIdx      = 2
	fieldHitX        = 3
	fieldHitY        = 4
	fieldHitZ        = 5
	fieldDirX        = 6
	fieldDirY        = 7
	fieldDirZ        = 8
	fieldReflections = 9

	fieldLogPath = 1
)

// Marshal encodes r per raylog.proto's RayRecord field layout.
func (r *RayRecord) Marshal() ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, fieldSnapshotID, protowire.VarintType)
	b = protowire.AppendVarint(b, r.SnapshotID)
	b = protowire.AppendTag(b, fieldRayIdx, protowire.VarintType)
	b = protowire.AppendVarint(b, r.RayIdx)
	b = protowire.AppendTag(b, fieldHitX, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.HitX))
	b = protowire.AppendTag(b, fieldHitY, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.HitY))
	b = protowire.AppendTag(b, fieldHitZ, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.HitZ))
	b = protowire.AppendTag(b, fieldDirX, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.DirX))
	b = protowire.AppendTag(b, fieldDirY, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.DirY))
	b = protowire.AppendTag(b, fieldDirZ, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.DirZ))
	b = protowire.AppendTag(b, fieldReflections, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(uint32(r.Reflections)))
	return b, nil
}

// Unmarshal decodes b into r, ignoring unknown fields (forward-compatible
// with a future raylog.proto revision that adds fields).
func (r *RayRecord) Unmarshal(b []byte) error {
	*r = RayRecord{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("grpcsvc: RayRecord: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("grpcsvc: RayRecord: bad varint: %w", protowire.ParseError(n))
			}
			b = b[n:]
			switch num {
			case fieldSnapshotID:
				r.SnapshotID = v
			case fieldRayIdx:
				r.RayIdx = v
			case fieldReflections:
				r.Reflections = int32(uint32(v))
			}
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return fmt.Errorf("grpcsvc: RayRecord: bad fixed64: %w", protowire.ParseError(n))
			}
			b = b[n:]
			f := math.Float64frombits(v)
			switch num {
			case fieldHitX:
				r.HitX = f
			case fieldHitY:
				r.HitY = f
			case fieldHitZ:
				r.HitZ = f
			case fieldDirX:
				r.DirX = f
			case fieldDirY:
				r.DirY = f
			case fieldDirZ:
				r.DirZ = f
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("grpcsvc: RayRecord: bad field value: %w", protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}

// Marshal encodes req per raylog.proto's StreamRequest field layout.
func (req *StreamRequest) Marshal() ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, fieldLogPath, protowire.BytesType)
	b = protowire.AppendString(b, req.LogPath)
	return b, nil
}

// Unmarshal decodes b into req.
func (req *StreamRequest) Unmarshal(b []byte) error {
	*req = StreamRequest{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("grpcsvc: StreamRequest: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		if typ == protowire.BytesType && num == fieldLogPath {
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return fmt.Errorf("grpcsvc: StreamRequest: bad string: %w", protowire.ParseError(n))
			}
			req.LogPath = s
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return fmt.Errorf("grpcsvc: StreamRequest: bad field value: %w", protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}
