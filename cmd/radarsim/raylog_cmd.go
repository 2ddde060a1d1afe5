package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/banshee-data/radarsim/internal/simradar"
)

// runRayLog dumps every record from a ray log written by a prior
// "sim-radar -log-path" run, per spec.md §6 operation 5's direct
// read-only access.
func runRayLog(args []string) {
	fs := flag.NewFlagSet("ray-log", flag.ExitOnError)
	path := fs.String("path", "", "ray log file to read")
	limit := fs.Int("limit", 0, "print at most this many records (0 prints all)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("ray-log: %v", err)
	}
	if *path == "" {
		log.Fatalf("ray-log: -path is required")
	}

	records, err := simradar.ReadRayLog(*path)
	if err != nil {
		log.Fatalf("ray-log: %v", err)
	}

	fmt.Printf("ray-log: %d record(s) in %s\n", len(records), *path)
	n := len(records)
	if *limit > 0 && *limit < n {
		n = *limit
	}
	for i := 0; i < n; i++ {
		r := records[i]
		fmt.Printf("  [%d] snapshot=%d ray=%d hit=%+v dir=%+v reflections=%d\n",
			i, r.SnapshotID, r.RayIdx, r.Hit, r.Direction, r.Reflections)
	}
	if n < len(records) {
		fmt.Printf("  ... %d more record(s) omitted\n", len(records)-n)
	}
}
