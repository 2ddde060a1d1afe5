package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/banshee-data/radarsim/internal/simradar"
	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/lidarsim"
	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
)

// runSimLidar scans the demo plate target with a fan of beams spanning
// +/- spanDeg degrees of azimuth at a single elevation, reporting which
// beams hit and their range.
func runSimLidar(args []string) {
	fs := flag.NewFlagSet("sim-lidar", flag.ExitOnError)
	beams := fs.Int("beams", 9, "number of beams in the azimuth fan")
	spanDeg := fs.Float64("span-deg", 10, "azimuth fan half-span, degrees")
	plateRange := fs.Float64("range", 10, "range to the plate target, meters")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("sim-lidar: %v", err)
	}
	if *beams < 1 {
		log.Fatalf("sim-lidar: -beams must be at least 1")
	}

	target, err := demoPlateTarget(*plateRange, 0)
	if err != nil {
		log.Fatalf("sim-lidar: building demo target: %v", err)
	}

	n := *beams
	phi := make([]float64, n)
	theta := make([]float64, n)
	for i := 0; i < n; i++ {
		frac := 0.5
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		deg := -*spanDeg + frac*2*(*spanDeg)
		phi[i] = deg * math.Pi / 180
	}

	e := simradar.New(*simconfig.DefaultConfig(), nil)
	out, err := e.SimLidar(simradar.SimLidarInput{
		Sensor: lidarsim.Sensor{
			Position: geom.Vec3{},
			Phi:      phi,
			Theta:    theta,
		},
		Targets: []simradar.Target{target},
	})
	if err != nil {
		log.Fatalf("sim-lidar: %v", err)
	}

	fmt.Printf("sim-lidar: %d beam(s) scanning a plate at range %.2fm\n", n, *plateRange)
	hits := 0
	for i, ray := range out {
		if ray.Hit {
			hits++
			rng := ray.HitPoint.Sub(ray.Origin).Len()
			fmt.Printf("  beam %2d (az=%6.2f deg): hit at range %.4fm, point=%+v\n", i, phi[i]*180/math.Pi, rng, ray.HitPoint)
		} else {
			fmt.Printf("  beam %2d (az=%6.2f deg): miss\n", i, phi[i]*180/math.Pi)
		}
	}
	fmt.Printf("  %d/%d beams hit\n", hits, n)
}
