package simradar

import (
	"github.com/banshee-data/radarsim/internal/simradar/raylog"
	"github.com/banshee-data/radarsim/internal/simradar/simerr"
)

// ReadRayLog opens the ray log at path and returns every record it holds,
// per spec.md §6 operation 5's direct read-only access requirement — no
// sim_radar run needs to be in flight, and no Engine state is touched.
func ReadRayLog(path string) ([]raylog.Record, error) {
	const op = "read_ray_log"
	r, err := raylog.Open(path)
	if err != nil {
		return nil, simerr.New(op, simerr.InvalidInput, err)
	}
	defer r.Close()

	records, err := r.ReadAll()
	if err != nil {
		return nil, simerr.New(op, simerr.Internal, err)
	}
	return records, nil
}
