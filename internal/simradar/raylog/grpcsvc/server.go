package grpcsvc

import (
	"fmt"
	"io"

	"github.com/banshee-data/radarsim/internal/simradar/raylog"
)

// Server implements RayLogServiceServer by replaying an on-disk ray log
// file, identified by the path the client sends in StreamRequest.
type Server struct{}

// NewServer returns a ready-to-register Server.
func NewServer() *Server { return &Server{} }

// StreamRecords opens req.LogPath and sends every record in order.
func (s *Server) StreamRecords(req *StreamRequest, stream RayLogService_StreamRecordsServer) error {
	r, err := raylog.Open(req.LogPath)
	if err != nil {
		return fmt.Errorf("grpcsvc: open %s: %w", req.LogPath, err)
	}
	defer r.Close()

	for {
		rec, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("grpcsvc: read %s: %w", req.LogPath, err)
		}
		msg := &RayRecord{
			SnapshotID:  rec.SnapshotID,
			RayIdx:      rec.RayIdx,
			HitX:        float64(rec.Hit.X),
			HitY:        float64(rec.Hit.Y),
			HitZ:        float64(rec.Hit.Z),
			DirX:        float64(rec.Direction.X),
			DirY:        float64(rec.Direction.Y),
			DirZ:        float64(rec.Direction.Z),
			Reflections: rec.Reflections,
		}
		if err := stream.Send(msg); err != nil {
			return err
		}
	}
}
