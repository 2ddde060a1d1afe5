package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/banshee-data/radarsim/internal/simradar"
	"github.com/banshee-data/radarsim/internal/simradar/geom"
	"github.com/banshee-data/radarsim/internal/simradar/rcs"
	"github.com/banshee-data/radarsim/internal/simradar/simconfig"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// runPlot renders one PNG diagnostic for a demo scenario: either the
// baseband magnitude of a sim-radar run's first channel (kind=baseband)
// or an RCS-vs-angle sweep (kind=rcs).
func runPlot(args []string) {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	kind := fs.String("kind", "rcs", `diagnostic to render: "rcs" or "baseband"`)
	out := fs.String("out", "radarsim_plot.png", "output PNG path")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("plot: %v", err)
	}

	switch *kind {
	case "rcs":
		if err := plotRCSSweep(*out); err != nil {
			log.Fatalf("plot: %v", err)
		}
	case "baseband":
		if err := plotBasebandMagnitude(*out); err != nil {
			log.Fatalf("plot: %v", err)
		}
	default:
		log.Fatalf("plot: unknown -kind %q (want \"rcs\" or \"baseband\")", *kind)
	}
	fmt.Printf("plot: wrote %s\n", *out)
}

func plotRCSSweep(out string) error {
	target, err := demoPlateTarget(10, 0)
	if err != nil {
		return err
	}
	rcsTargets := []rcs.Target{{Mesh: target.Mesh, Material: target.Material}}

	const n = 25
	incDir := make([]geom.Vec3, n)
	obsDir := make([]geom.Vec3, n)
	incPol := make([]geom.Vec3C, n)
	obsPol := make([]geom.Vec3C, n)
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		deg := -60 + float64(i)*120/float64(n-1)
		rad := deg * math.Pi / 180
		dir := geom.Vec3{X: geom.Real(-math.Cos(rad)), Y: geom.Real(math.Sin(rad))}
		incDir[i], obsDir[i] = dir, dir
		incPol[i] = geom.Vec3C{Z: 1}
		obsPol[i] = geom.Vec3C{Z: 1}
		pts[i].X = deg
	}

	e := simradar.New(*simconfig.DefaultConfig(), nil)
	sigmas, err := e.SimRCS(simradar.SimRCSInput{
		Targets: rcsTargets,
		Freq:    demoCenterFreq,
		IncDir:  incDir,
		ObsDir:  obsDir,
		IncPol:  incPol,
		ObsPol:  obsPol,
		Density: 1,
	})
	if err != nil {
		return err
	}
	for i, sigma := range sigmas {
		pts[i].Y = 10 * math.Log10(sigma)
	}

	p := plot.New()
	p.Title.Text = "Monostatic RCS vs Incidence Angle"
	p.X.Label.Text = "Angle (deg)"
	p.Y.Label.Text = "RCS (dBsm)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1.5)
	p.Add(line)

	return p.Save(10*vg.Inch, 5*vg.Inch, out)
}

func plotBasebandMagnitude(out string) error {
	radar, err := demoRadar(8, 512)
	if err != nil {
		return err
	}
	plate, err := demoPlateTarget(10, 5)
	if err != nil {
		return err
	}

	e := simradar.New(*simconfig.DefaultConfig(), nil)
	result, err := e.SimRadar(simradar.SimRadarInput{
		Radar:          radar,
		Targets:        []simradar.Target{plate},
		FrameStartTime: []float64{0},
	})
	if err != nil {
		return err
	}

	shape := result.Baseband.Shape
	pts := make(plotter.XYs, 0, shape.Pulses*shape.Samples)
	for pulse := 0; pulse < shape.Pulses; pulse++ {
		for s := 0; s < shape.Samples; s++ {
			v := result.Baseband.At(0, pulse, s)
			idx := pulse*shape.Samples + s
			pts = append(pts, plotter.XY{X: float64(idx), Y: math.Hypot(real(v), imag(v))})
		}
	}

	p := plot.New()
	p.Title.Text = "Baseband Magnitude, Channel 0"
	p.X.Label.Text = "Sample Index"
	p.Y.Label.Text = "|I/Q|"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	return p.Save(14*vg.Inch, 6*vg.Inch, out)
}
